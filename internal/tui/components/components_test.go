package components

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/whatif/internal/domain"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestParameterSlider_Clamping(t *testing.T) {
	s := NewParameterSlider(domain.ParamPriceAdjustment, "Price", d(100), d(90), d(110), d(5))
	assert.False(t, s.Changed())

	s.Increment()
	assert.True(t, s.Value.Equal(d(105)))
	s.Increment()
	s.Increment()
	assert.True(t, s.Value.Equal(d(110)), "increment stops at max")

	s.SetValue(d(10))
	assert.True(t, s.Value.Equal(d(90)), "set clamps to min")
	assert.InDelta(t, 0.0, s.Percentage(), 1e-9)

	s.Reset()
	assert.True(t, s.Value.Equal(d(100)))
	assert.InDelta(t, 0.5, s.Percentage(), 1e-9)
}

func TestParameterSlider_Parameter(t *testing.T) {
	s := NewParameterSlider(domain.ParamMarkdownTiming, "Markdown Timing", d(4), d(1), d(10), d(1)).WithUnit(" wks")
	s.Decrement()

	p := s.Parameter()
	assert.Equal(t, domain.ParamMarkdownTiming, p.Name)
	assert.True(t, p.BaseValue.Equal(d(4)))
	assert.True(t, p.NewValue.Equal(d(3)))

	out := s.Render()
	assert.Contains(t, out, "Markdown Timing")
	assert.Contains(t, out, "3 wks")
	assert.Contains(t, out, "-25.0%")
	assert.Contains(t, s.RenderCompact(), "Markdown Timing")
}

func TestParameterSlider_ZeroRange(t *testing.T) {
	s := NewParameterSlider("x", "X", d(5), d(5), d(5), d(1))
	assert.Zero(t, s.Percentage())
	assert.NotEmpty(t, s.Render())
}

func TestNewImpactCard_LowerIsBetter(t *testing.T) {
	impact := domain.ScenarioImpact{
		Metric:         domain.MetricStockOutRate,
		Label:          domain.MetricStockOutRate.Label(),
		BaseValue:      decimal.NewFromFloat(8),
		ProjectedValue: decimal.NewFromFloat(6),
		ChangePercent:  d(-25),
		Significance:   domain.SignificanceHigh,
		Direction:      domain.DirectionNegative,
	}

	card := NewImpactCard(impact)
	require.NotNil(t, card.Trend)
	assert.False(t, card.Trend.Up)
	assert.True(t, card.Trend.Improved, "a falling stock-out rate is an improvement")
	assert.Equal(t, "-25.0%", card.Trend.Change)
	assert.Contains(t, card.Render(), "Stock-Out")
}

func TestMetricGrid(t *testing.T) {
	assert.Empty(t, MetricGrid(nil, 3))

	cards := []*MetricCard{
		NewMetricCard("Revenue", "$1"),
		NewMetricCard("Margin", "40%").WithTrend(true, true, "+1%"),
		NewMetricCard("Units", "10"),
	}
	grid := MetricGrid(cards, 2)
	for _, want := range []string{"Revenue", "Margin", "Units", "+1%"} {
		assert.Contains(t, grid, want)
	}
}

func TestSweepChart(t *testing.T) {
	assert.Contains(t, NewSweepChart("Empty", nil).Render(), "No data to display")

	sweep := &domain.SweepResult{
		Points: []domain.SweepPoint{
			{NewValue: d(90), Score: d(40)},
			{NewValue: d(100), Score: d(50)},
			{NewValue: d(110), Score: d(45)},
		},
		BestIndex: 1,
	}
	out := NewSweepChart("Score vs Price", sweep).WithWidth(20).Render()
	assert.Contains(t, out, "Score vs Price")

	var best string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "*") {
			best = line
		}
	}
	assert.Contains(t, best, "100.00")
	assert.Equal(t, 20, strings.Count(best, "█"), "best score gets the full width")
}
