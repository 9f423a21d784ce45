package output

import (
	"github.com/shopspring/decimal"
)

// Verdicts assigned by AnalyzeOutcome.
const (
	VerdictOnTrack    = "On track"
	VerdictBorderline = "Borderline"
	VerdictAtRisk     = "At risk"
)

var (
	onTrackRate    = decimal.RequireFromString("0.90")
	borderlineRate = decimal.RequireFromString("0.75")
)

// Assessment is the headline reading of a report.
type Assessment struct {
	Verdict     string
	SuccessRate decimal.Decimal
	// ShortfallLabel names the best percentile trajectory that still
	// depletes, empty when none of them do.
	ShortfallLabel string
	ShortfallYear  int
}

// AnalyzeOutcome grades the batch success rate and finds how far up the
// percentile ladder depletion reaches.
func AnalyzeOutcome(report *Report) Assessment {
	a := Assessment{SuccessRate: report.Summary.SuccessRate}
	switch {
	case a.SuccessRate.GreaterThanOrEqual(onTrackRate):
		a.Verdict = VerdictOnTrack
	case a.SuccessRate.GreaterThanOrEqual(borderlineRate):
		a.Verdict = VerdictBorderline
	default:
		a.Verdict = VerdictAtRisk
	}

	best := -1
	for _, ps := range report.Percentiles {
		if ps.Depleted && ps.Percent > best {
			best = ps.Percent
			a.ShortfallLabel = ps.Label
			a.ShortfallYear = ps.YearOfDepletion
		}
	}
	return a
}
