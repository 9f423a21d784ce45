package output

import (
	"testing"

	"github.com/rpgo/household-montecarlo/internal/calculation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAnalyzeOutcome(t *testing.T) {
	percentiles := []calculation.PercentileScenario{
		{Percent: 10, Label: "Worst Case", Depleted: true, YearOfDepletion: 2049},
		{Percent: 25, Label: "Below Market", Depleted: true, YearOfDepletion: 2058},
		{Percent: 50, Label: "Most Likely"},
		{Percent: 75, Label: "Best Case"},
	}

	tests := []struct {
		name        string
		rate        string
		percentiles []calculation.PercentileScenario
		verdict     string
		label       string
		year        int
	}{
		{"all succeed", "1", nil, VerdictOnTrack, "", 0},
		{"exactly ninety", "0.90", percentiles[2:], VerdictOnTrack, "", 0},
		{"borderline", "0.80", percentiles, VerdictBorderline, "Below Market", 2058},
		{"at risk", "0.40", percentiles, VerdictAtRisk, "Below Market", 2058},
		{"only worst depletes", "0.85", append([]calculation.PercentileScenario{percentiles[0]}, percentiles[2:]...), VerdictBorderline, "Worst Case", 2049},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &Report{
				Summary:     calculation.BatchSummary{SuccessRate: decimal.RequireFromString(tt.rate)},
				Percentiles: tt.percentiles,
			}
			a := AnalyzeOutcome(report)
			assert.Equal(t, tt.verdict, a.Verdict)
			assert.Equal(t, tt.label, a.ShortfallLabel)
			assert.Equal(t, tt.year, a.ShortfallYear)
		})
	}
}
