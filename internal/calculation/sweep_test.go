package calculation

import (
	"context"
	"errors"
	"testing"

	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func priceSweep() domain.SweepSpec {
	return domain.SweepSpec{
		Parameter:   domain.ParamPriceAdjustment,
		Label:       "Price",
		BaseValue:   dec("1"),
		MinValue:    dec("0.9"),
		MaxValue:    dec("1.1"),
		Steps:       5,
		Concurrency: 2,
	}
}

func TestSensitivityAnalyzer_Sweep(t *testing.T) {
	engine := NewSimulationEngine()
	analyzer := NewSensitivityAnalyzer(engine)
	fixed := []domain.ScenarioParameter{
		param(domain.ParamInventoryLevel, "100", "110"),
		param(domain.ParamPriceAdjustment, "1", "2"),
	}

	result, err := analyzer.Sweep(context.Background(), priceSweep(), fixed, nil)
	require.NoError(t, err)
	require.Len(t, result.Points, 5)

	for i, point := range result.Points {
		direct, err := engine.Run([]domain.ScenarioParameter{
			fixed[0],
			{Name: domain.ParamPriceAdjustment, Label: "Price", BaseValue: dec("1"), NewValue: point.NewValue},
		}, nil)
		require.NoError(t, err)
		assert.True(t, point.Score.Equal(direct.Score), "point %d score %s, direct %s", i, point.Score, direct.Score)
		assert.True(t, point.Projected.Equal(direct.Scenario.Projected), "point %d projected", i)
		assert.Equal(t, direct.ConfidenceLevel, point.ConfidenceLevel)
	}

	assert.True(t, result.Points[0].NewValue.Equal(dec("0.9")))
	assert.True(t, result.Points[2].ChangePercent.IsZero())
	assert.True(t, result.Points[4].ChangePercent.Equal(dec("10")))

	best, ok := result.Best()
	require.True(t, ok)
	for _, point := range result.Points {
		assert.False(t, point.Score.GreaterThan(best.Score))
	}
	assert.Len(t, result.Summary, 2)
	assert.Contains(t, result.Summary[0], "Best score")
}

func TestSensitivityAnalyzer_SweepErrors(t *testing.T) {
	analyzer := NewSensitivityAnalyzer(nil)

	spec := priceSweep()
	spec.BaseValue = dec("0")
	_, err := analyzer.Sweep(context.Background(), spec, nil, nil)
	var ipe *InvalidParameterError
	assert.True(t, errors.As(err, &ipe))

	spec = priceSweep()
	spec.MaxValue = dec("0.5")
	_, err = analyzer.Sweep(context.Background(), spec, nil, nil)
	assert.ErrorContains(t, err, "below min value")

	spec = priceSweep()
	spec.Parameter = ""
	_, err = analyzer.Sweep(context.Background(), spec, nil, nil)
	assert.Error(t, err)

	_, err = analyzer.Sweep(context.Background(), priceSweep(), []domain.ScenarioParameter{
		param(domain.ParamBuyQuantity, "0", "10"),
	}, nil)
	assert.True(t, errors.As(err, &ipe))
	assert.Equal(t, domain.ParamBuyQuantity, ipe.Parameter)
}

func TestSensitivityAnalyzer_SweepCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewSensitivityAnalyzer(nil).Sweep(ctx, priceSweep(), nil, nil)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSensitivityAnalyzer_UnknownParameterIsFlat(t *testing.T) {
	spec := priceSweep()
	spec.Parameter = "shelfSpace"

	result, err := NewSensitivityAnalyzer(nil).Sweep(context.Background(), spec, nil, nil)
	require.NoError(t, err)
	assert.True(t, result.ScoreRange.IsZero())
	assert.Equal(t, 0, result.BestIndex, "First point wins ties")
	assert.Contains(t, result.Summary[1], "insensitive")
}
