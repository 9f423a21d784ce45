package calculation

import (
	"sort"

	"github.com/rpgo/household-montecarlo/internal/domain"
)

// worseThan orders trajectories worst first: an earlier depletion year is
// always worse, and a lower final balance breaks ties.
func worseThan(a, b domain.SimulationResult) bool {
	if a.YearOfDepletion != b.YearOfDepletion {
		return a.YearOfDepletion < b.YearOfDepletion
	}
	return a.FinalBalance.LessThan(b.FinalBalance)
}

// RankTrajectories sorts results in place from worst to best outcome.
// The sort is stable, so equal outcomes keep their relative order.
func RankTrajectories(results []domain.SimulationResult) {
	sort.SliceStable(results, func(i, j int) bool { return worseThan(results[i], results[j]) })
}

// IsRanked reports whether results are already in worst-to-best order.
func IsRanked(results []domain.SimulationResult) bool {
	return sort.SliceIsSorted(results, func(i, j int) bool { return worseThan(results[i], results[j]) })
}
