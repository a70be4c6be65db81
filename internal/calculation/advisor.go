package calculation

import (
	"fmt"

	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	priceChangeThreshold     = decimal.NewFromInt(5)
	inventoryChangeThreshold = decimal.NewFromInt(20)
)

// GenerateGuidance returns rule-based recommendations and risks for the parameters,
// in parameter order. Parameters outside the price, inventory and markdown rules, or
// below their thresholds, contribute nothing.
func GenerateGuidance(params []domain.ScenarioParameter) (recommendations, risks []string) {
	recommendations = []string{}
	risks = []string{}

	for _, p := range params {
		changePct, err := p.ChangePercent()
		if err != nil {
			continue
		}
		pct := formatPercent(changePct)

		switch p.Name {
		case domain.ParamPriceAdjustment:
			if changePct.GreaterThan(priceChangeThreshold) {
				risks = append(risks, fmt.Sprintf(
					"A %s price increase may reduce unit demand and sell-through", pct))
				recommendations = append(recommendations, fmt.Sprintf(
					"Roll out the %s price increase in phases and monitor weekly unit sales", pct))
			} else if changePct.LessThan(priceChangeThreshold.Neg()) {
				risks = append(risks, fmt.Sprintf(
					"A %s price reduction will compress gross margin unless volume rises to offset it", pct))
			}

		case domain.ParamInventoryLevel:
			if changePct.GreaterThan(inventoryChangeThreshold) {
				risks = append(risks, fmt.Sprintf(
					"Raising inventory %s increases carrying cost and end-of-season markdown exposure", pct))
				recommendations = append(recommendations,
					"Verify sales velocity supports the additional inventory before committing receipts")
			} else if changePct.LessThan(inventoryChangeThreshold.Neg()) {
				risks = append(risks, fmt.Sprintf(
					"Cutting inventory %s raises the risk of stockouts on key items", pct))
			}

		case domain.ParamMarkdownTiming:
			if changePct.IsNegative() {
				risks = append(risks,
					"Taking markdowns earlier trades gross margin for faster sell-through")
				recommendations = append(recommendations,
					"Target early markdowns at slow-moving items rather than the whole assortment")
			}
		}
	}

	return recommendations, risks
}

func formatPercent(pct decimal.Decimal) string {
	return pct.Abs().StringFixed(1) + "%"
}
