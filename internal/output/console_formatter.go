package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rpgo/household-montecarlo/pkg/money"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6B50FF"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#858392"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	verdictStyles = map[string]lipgloss.Style{
		VerdictOnTrack:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFB2")),
		VerdictBorderline: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD300")),
		VerdictAtRisk:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#E94090")),
	}
)

// ConsoleFormatter renders a styled console summary of the run.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(report *Report) ([]byte, error) {
	assessment := AnalyzeOutcome(report)
	s := report.Summary

	header := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("HOUSEHOLD MONTE CARLO SOLVENCY REPORT"),
		fmt.Sprintf("%s %s", labelStyle.Render("Run:"), report.RunID),
		fmt.Sprintf("%s %d   %s %s   %s %d-%d",
			labelStyle.Render("Simulations:"), s.Simulations,
			labelStyle.Render("Model:"), report.ReturnModel.Label(),
			labelStyle.Render("Years:"), report.StartYear, report.StartYear+report.Horizon-1),
	)

	outcome := []string{
		fmt.Sprintf("%s %s  (%s)", labelStyle.Render("Success rate:"), FormatPercentage(s.SuccessRate), verdictStyle(assessment.Verdict).Render(assessment.Verdict)),
		fmt.Sprintf("%s %d succeeded, %d depleted", labelStyle.Render("Outcomes:"), s.SuccessCount, s.FailureCount),
		fmt.Sprintf("%s %s", labelStyle.Render("Mean final balance:"), FormatCurrency(s.MeanFinalBalance)),
		fmt.Sprintf("%s P10 %s | P50 %s | P90 %s", labelStyle.Render("Final balance:"),
			FormatCurrency(s.FinalBalance.P10), FormatCurrency(s.FinalBalance.P50), FormatCurrency(s.FinalBalance.P90)),
	}
	if s.EarliestDepletion > 0 {
		outcome = append(outcome, fmt.Sprintf("%s earliest %d, median %d", labelStyle.Render("Depletion:"), s.EarliestDepletion, s.MedianDepletion))
	}
	if assessment.ShortfallLabel != "" {
		outcome = append(outcome, fmt.Sprintf("%s the %s trajectory runs out of money in %d", labelStyle.Render("Shortfall:"), assessment.ShortfallLabel, assessment.ShortfallYear))
	}

	var b strings.Builder
	b.WriteString(panelStyle.Render(header))
	b.WriteString("\n\n")
	b.WriteString(sectionStyle.Render("OUTCOME"))
	b.WriteString("\n")
	b.WriteString(strings.Join(outcome, "\n"))
	b.WriteString("\n\n")
	b.WriteString(sectionStyle.Render("PERCENTILE TRAJECTORIES"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%-14s %16s %16s %10s %10s %10s\n", "Scenario", "Ending", "In Today's $", "Depletes", "Mean Ret", "Geo Ret")
	for _, ps := range report.Percentiles {
		fmt.Fprintf(&b, "%-14s %16s %16s %10s %10s %10s\n",
			ps.Label,
			money.FormatCurrency(ps.EndingBalance),
			money.FormatCurrency(ps.EndingBalanceToday),
			ps.DepletionLabel(),
			FormatRateFloat(ps.MeanReturnRate),
			FormatRateFloat(ps.GeometricReturnRate),
		)
	}
	if len(report.Percentiles) == 0 {
		b.WriteString("(too few simulations for percentile trajectories)\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("KEY ASSUMPTIONS"))
	b.WriteString("\n")
	for _, a := range report.Assumptions {
		fmt.Fprintf(&b, "• %s\n", a)
	}
	return []byte(b.String()), nil
}

func verdictStyle(verdict string) lipgloss.Style {
	if st, ok := verdictStyles[verdict]; ok {
		return st
	}
	return lipgloss.NewStyle()
}
