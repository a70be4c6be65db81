package transform

import (
	"testing"

	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransformRegistry_List(t *testing.T) {
	assert.Equal(t, []string{"remove", "scale", "set"}, NewTransformRegistry().List())
}

func TestTransformRegistry_ParseTransformSpec(t *testing.T) {
	registry := NewTransformRegistry()

	tests := []struct {
		name    string
		spec    string
		want    string
		wantErr string
	}{
		{"scale", "scale:parameter=priceAdjustment,factor=0.5", "scale", ""},
		{"set", "set:parameter=categoryMix,base=100,new=110,label=Mix", "set", ""},
		{"remove", "remove:parameter=inventoryLevel", "remove", ""},
		{"no colon", "scale", "", "expected 'name:params'"},
		{"bad pair", "scale:parameter", "", "expected 'key=value'"},
		{"unknown", "rotate:parameter=x", "", "unknown transform"},
		{"missing factor", "scale:parameter=priceAdjustment", "", "missing required parameter: factor"},
		{"bad factor", "scale:parameter=priceAdjustment,factor=half", "", "invalid factor"},
		{"set missing base", "set:parameter=categoryMix,new=110", "", "missing required parameter: base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transform, err := registry.ParseTransformSpec(tt.spec)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, transform.Name())
		})
	}
}

func TestParseParameterSpec(t *testing.T) {
	p, err := ParseParameterSpec("priceAdjustment:100:108")
	require.NoError(t, err)
	assert.Equal(t, domain.ParamPriceAdjustment, p.Name)
	assert.True(t, p.BaseValue.Equal(decimal.NewFromInt(100)))
	assert.True(t, p.NewValue.Equal(decimal.NewFromInt(108)))
	assert.Empty(t, p.Label)

	p, err = ParseParameterSpec("markdownTiming: 4 : 3.5 :Markdown Week")
	require.NoError(t, err)
	assert.Equal(t, "Markdown Week", p.Label)
	assert.True(t, p.NewValue.Equal(decimal.RequireFromString("3.5")))

	for _, bad := range []string{"priceAdjustment:100", ":1:2", "price:abc:2", "price:1:xyz"} {
		_, err := ParseParameterSpec(bad)
		assert.Error(t, err, bad)
	}
}
