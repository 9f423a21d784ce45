package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rpgo/household-montecarlo/internal/calculation"
	"github.com/rpgo/household-montecarlo/internal/config"
)

// Prints the per-person 401(k) contributions of a household config for
// every working year, next to the escalated employee limit.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: print_contributions <config> [start-year]")
		os.Exit(2)
	}
	cfg, err := config.NewInputParser().LoadFromFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	startYear := cfg.StartYear
	if len(os.Args) > 2 {
		if startYear, err = strconv.Atoi(os.Args[2]); err != nil {
			fmt.Fprintf(os.Stderr, "invalid start year %q\n", os.Args[2])
			os.Exit(2)
		}
	}
	if startYear == 0 {
		startYear = time.Now().Year()
	}

	cc := calculation.NewContributionCalculator(cfg, startYear)
	limits := calculation.EscalatedLimits(startYear, cfg.COLARate, cfg.HorizonYears())
	fmt.Printf("Base limits %d: %s + %s catch-up\n", calculation.LimitsFor(startYear).Year,
		limits[0].Limit.StringFixed(2), limits[0].CatchUp.StringFixed(2))
	fmt.Printf("%-6s %-7s %12s %12s %12s %12s\n", "Year", "Ages", "Limit", "Self", "Partner", "Total")
	for y, l := range limits {
		c := cc.Yearly(y)
		if c.Total().IsZero() && cfg.Self.IsRetired(cfg.Self.CurrentAge+y) && cfg.Partner.IsRetired(cfg.Partner.CurrentAge+y) {
			break
		}
		fmt.Printf("%-6d %-7s %12s %12s %12s %12s\n", l.Year,
			fmt.Sprintf("%d/%d", cfg.Self.CurrentAge+y, cfg.Partner.CurrentAge+y),
			l.Limit.StringFixed(2), c.Self.StringFixed(2), c.Partner.StringFixed(2), c.Total().StringFixed(2))
	}
}
