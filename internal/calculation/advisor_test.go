package calculation

import (
	"testing"

	"github.com/rgehrsitz/whatif/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGuidance(t *testing.T) {
	tests := []struct {
		name     string
		param    domain.ScenarioParameter
		recs     int
		risks    int
		contains string
	}{
		{"price increase", param(domain.ParamPriceAdjustment, "100", "110"), 1, 1, "reduce unit demand"},
		{"price at threshold", param(domain.ParamPriceAdjustment, "100", "105"), 0, 0, ""},
		{"price cut", param(domain.ParamPriceAdjustment, "100", "90"), 0, 1, "compress gross margin"},
		{"inventory build", param(domain.ParamInventoryLevel, "100", "125"), 1, 1, "carrying cost"},
		{"inventory at threshold", param(domain.ParamInventoryLevel, "100", "120"), 0, 0, ""},
		{"inventory cut", param(domain.ParamInventoryLevel, "100", "75"), 0, 1, "stockouts"},
		{"earlier markdowns", param(domain.ParamMarkdownTiming, "4", "3"), 1, 1, "trades gross margin"},
		{"later markdowns", param(domain.ParamMarkdownTiming, "4", "5"), 0, 0, ""},
		{"no rule for category mix", param(domain.ParamCategoryMix, "100", "200"), 0, 0, ""},
		{"zero base skipped", param(domain.ParamPriceAdjustment, "0", "10"), 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recs, risks := GenerateGuidance([]domain.ScenarioParameter{tt.param})
			require.NotNil(t, recs)
			require.NotNil(t, risks)
			assert.Len(t, recs, tt.recs)
			assert.Len(t, risks, tt.risks)
			if tt.contains != "" {
				assert.Contains(t, risks[0], tt.contains)
			}
		})
	}
}

func TestGenerateGuidance_FormatsPercentAndKeepsOrder(t *testing.T) {
	recs, risks := GenerateGuidance([]domain.ScenarioParameter{
		param(domain.ParamInventoryLevel, "100", "70"),
		param(domain.ParamPriceAdjustment, "100", "112.5"),
	})

	require.Len(t, risks, 2)
	assert.Contains(t, risks[0], "30.0%")
	assert.Contains(t, risks[1], "12.5%")
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "phases")
}
