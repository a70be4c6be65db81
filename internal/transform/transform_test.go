package transform

import (
	"errors"
	"testing"

	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseParams() []domain.ScenarioParameter {
	return []domain.ScenarioParameter{
		{Name: domain.ParamPriceAdjustment, BaseValue: decimal.NewFromInt(100), NewValue: decimal.NewFromInt(110)},
		{Name: domain.ParamInventoryLevel, BaseValue: decimal.NewFromInt(100), NewValue: decimal.NewFromInt(90)},
	}
}

func TestApplyTransforms_Sequence(t *testing.T) {
	params := baseParams()

	result, err := ApplyTransforms(params, []ParameterTransform{
		&ScaleChange{Parameter: domain.ParamPriceAdjustment, Factor: decimal.NewFromFloat(0.5)},
		&SetParameter{Parameter: domain.ScenarioParameter{Name: domain.ParamCategoryMix, BaseValue: decimal.NewFromInt(100), NewValue: decimal.NewFromInt(105)}},
		&RemoveParameter{Parameter: domain.ParamInventoryLevel},
	})
	require.NoError(t, err)

	require.Len(t, result, 2)
	assert.Equal(t, domain.ParamPriceAdjustment, result[0].Name)
	assert.True(t, result[0].NewValue.Equal(decimal.NewFromInt(105)), "got %s", result[0].NewValue)
	assert.Equal(t, domain.ParamCategoryMix, result[1].Name)

	// Input untouched
	assert.True(t, params[0].NewValue.Equal(decimal.NewFromInt(110)))
	assert.Len(t, params, 2)
}

func TestApplyTransforms_Empty(t *testing.T) {
	params := baseParams()
	result, err := ApplyTransforms(params, nil)
	require.NoError(t, err)

	result[0].Name = "changed"
	assert.Equal(t, domain.ParamPriceAdjustment, params[0].Name, "Should return a copy")
}

func TestApplyTransforms_Errors(t *testing.T) {
	_, err := ApplyTransforms(baseParams(), []ParameterTransform{nil})
	assert.ErrorContains(t, err, "index 0 is nil")

	_, err = ApplyTransforms(baseParams(), []ParameterTransform{&RemoveParameter{Parameter: "shelfSpace"}})
	assert.ErrorContains(t, err, "validation failed")

	_, err = ApplyTransforms(nil, []ParameterTransform{
		&SetParameter{Parameter: domain.ScenarioParameter{Name: domain.ParamBuyQuantity, NewValue: decimal.NewFromInt(1)}},
	})
	var te *TransformError
	require.True(t, errors.As(err, &te))
	assert.True(t, errors.Is(err, domain.ErrZeroBaseValue))
}

func TestSetParameter_Replaces(t *testing.T) {
	set := &SetParameter{Parameter: domain.ScenarioParameter{
		Name: domain.ParamPriceAdjustment, Label: "Price", BaseValue: decimal.NewFromInt(100), NewValue: decimal.NewFromInt(95),
	}}

	result, err := set.Apply(baseParams())
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Price", result[0].Label)
	assert.Contains(t, set.Description(), "Set Price from 100 to 95")
}
