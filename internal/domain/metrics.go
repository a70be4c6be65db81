package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Metric identifies one of the business metrics tracked by a MetricSet
type Metric string

const (
	MetricRevenue         Metric = "revenue"
	MetricGrossMargin     Metric = "grossMargin"
	MetricSellThrough     Metric = "sellThrough"
	MetricInventoryTurn   Metric = "inventoryTurn"
	MetricWeeksOfSupply   Metric = "weeksOfSupply"
	MetricMarkdownRate    Metric = "markdownRate"
	MetricStockOutRate    Metric = "stockOutRate"
	MetricUnitsSold       Metric = "unitsSold"
	MetricAvgSellingPrice Metric = "avgSellingPrice"
	MetricTotalCost       Metric = "totalCost"
)

var metricLabels = map[Metric]string{
	MetricRevenue:         "Revenue",
	MetricGrossMargin:     "Gross Margin",
	MetricSellThrough:     "Sell-Through",
	MetricInventoryTurn:   "Inventory Turn",
	MetricWeeksOfSupply:   "Weeks of Supply",
	MetricMarkdownRate:    "Markdown Rate",
	MetricStockOutRate:    "Stock-Out Rate",
	MetricUnitsSold:       "Units Sold",
	MetricAvgSellingPrice: "Avg Selling Price",
	MetricTotalCost:       "Total Cost",
}

// AllMetrics returns every metric in canonical order
func AllMetrics() []Metric {
	return []Metric{
		MetricRevenue,
		MetricGrossMargin,
		MetricSellThrough,
		MetricInventoryTurn,
		MetricWeeksOfSupply,
		MetricMarkdownRate,
		MetricStockOutRate,
		MetricUnitsSold,
		MetricAvgSellingPrice,
		MetricTotalCost,
	}
}

// Label returns the display name of the metric
func (m Metric) Label() string {
	if label, ok := metricLabels[m]; ok {
		return label
	}
	return string(m)
}

// Valid reports whether m names a known metric
func (m Metric) Valid() bool {
	_, ok := metricLabels[m]
	return ok
}

// LowerIsBetter reports whether a decrease in the metric is an improvement
func (m Metric) LowerIsBetter() bool {
	return m == MetricStockOutRate
}

// Format renders a value of this metric for display. Currency totals and unit counts
// are whole numbers; rates and ratios keep two decimals.
func (m Metric) Format(v decimal.Decimal) string {
	switch m {
	case MetricRevenue, MetricTotalCost, MetricUnitsSold:
		return v.StringFixed(0)
	default:
		return v.StringFixed(2)
	}
}

// ParseMetric converts a string into a known Metric
func ParseMetric(s string) (Metric, error) {
	m := Metric(s)
	if !m.Valid() {
		return "", fmt.Errorf("unknown metric: %s", s)
	}
	return m, nil
}

// MetricSet is a snapshot of the ten tracked business metrics.
// It is a value type: With returns a modified copy and never mutates the receiver.
type MetricSet struct {
	Revenue         decimal.Decimal `yaml:"revenue" json:"revenue"`
	GrossMargin     decimal.Decimal `yaml:"gross_margin" json:"grossMargin"`
	SellThrough     decimal.Decimal `yaml:"sell_through" json:"sellThrough"`
	InventoryTurn   decimal.Decimal `yaml:"inventory_turn" json:"inventoryTurn"`
	WeeksOfSupply   decimal.Decimal `yaml:"weeks_of_supply" json:"weeksOfSupply"`
	MarkdownRate    decimal.Decimal `yaml:"markdown_rate" json:"markdownRate"`
	StockOutRate    decimal.Decimal `yaml:"stock_out_rate" json:"stockOutRate"`
	UnitsSold       decimal.Decimal `yaml:"units_sold" json:"unitsSold"`
	AvgSellingPrice decimal.Decimal `yaml:"avg_selling_price" json:"avgSellingPrice"`
	TotalCost       decimal.Decimal `yaml:"total_cost" json:"totalCost"`
}

// DefaultBaseline returns the reference snapshot used when a caller supplies no baseline
func DefaultBaseline() MetricSet {
	return MetricSet{
		Revenue:         decimal.NewFromInt(1500000),
		GrossMargin:     decimal.NewFromFloat(52.3),
		SellThrough:     decimal.NewFromFloat(68.5),
		InventoryTurn:   decimal.NewFromFloat(4.2),
		WeeksOfSupply:   decimal.NewFromFloat(8.5),
		MarkdownRate:    decimal.NewFromFloat(18.5),
		StockOutRate:    decimal.NewFromFloat(3.2),
		UnitsSold:       decimal.NewFromInt(45000),
		AvgSellingPrice: decimal.NewFromFloat(33.33),
		TotalCost:       decimal.NewFromInt(715500),
	}
}

// Get returns the value of a metric, or zero for an unknown metric
func (ms MetricSet) Get(m Metric) decimal.Decimal {
	switch m {
	case MetricRevenue:
		return ms.Revenue
	case MetricGrossMargin:
		return ms.GrossMargin
	case MetricSellThrough:
		return ms.SellThrough
	case MetricInventoryTurn:
		return ms.InventoryTurn
	case MetricWeeksOfSupply:
		return ms.WeeksOfSupply
	case MetricMarkdownRate:
		return ms.MarkdownRate
	case MetricStockOutRate:
		return ms.StockOutRate
	case MetricUnitsSold:
		return ms.UnitsSold
	case MetricAvgSellingPrice:
		return ms.AvgSellingPrice
	case MetricTotalCost:
		return ms.TotalCost
	default:
		return decimal.Zero
	}
}

// With returns a copy of the set with one metric replaced
func (ms MetricSet) With(m Metric, value decimal.Decimal) MetricSet {
	switch m {
	case MetricRevenue:
		ms.Revenue = value
	case MetricGrossMargin:
		ms.GrossMargin = value
	case MetricSellThrough:
		ms.SellThrough = value
	case MetricInventoryTurn:
		ms.InventoryTurn = value
	case MetricWeeksOfSupply:
		ms.WeeksOfSupply = value
	case MetricMarkdownRate:
		ms.MarkdownRate = value
	case MetricStockOutRate:
		ms.StockOutRate = value
	case MetricUnitsSold:
		ms.UnitsSold = value
	case MetricAvgSellingPrice:
		ms.AvgSellingPrice = value
	case MetricTotalCost:
		ms.TotalCost = value
	}
	return ms
}

// Equal reports whether every metric in both sets is numerically equal
func (ms MetricSet) Equal(other MetricSet) bool {
	for _, m := range AllMetrics() {
		if !ms.Get(m).Equal(other.Get(m)) {
			return false
		}
	}
	return true
}

// IsZero reports whether no metric has been populated
func (ms MetricSet) IsZero() bool {
	for _, m := range AllMetrics() {
		if !ms.Get(m).IsZero() {
			return false
		}
	}
	return true
}
