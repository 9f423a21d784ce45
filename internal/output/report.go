package output

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rpgo/household-montecarlo/internal/calculation"
	"github.com/rpgo/household-montecarlo/internal/domain"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned when no formatter matches a requested name.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Report is the presentation view of one batch run: the inputs, the
// aggregate outcome and the representative percentile trajectories.
type Report struct {
	GeneratedAt time.Time                        `json:"generated_at"`
	RunID       string                           `json:"run_id"`
	Seed        int64                            `json:"seed"`
	ReturnModel domain.ReturnModel               `json:"return_model"`
	StartYear   int                              `json:"start_year"`
	Horizon     int                              `json:"horizon_years"`
	Summary     calculation.BatchSummary         `json:"summary"`
	Percentiles []calculation.PercentileScenario `json:"percentiles"`
	Assumptions []string                         `json:"assumptions"`
	Config      *domain.SimulationConfig         `json:"config"`
}

// nowFunc is overridden in tests to pin report timestamps.
var nowFunc = time.Now

// NewReport builds the report for a finished batch. The batch trajectories
// must already be ranked, as MonteCarloSimulator.Run leaves them.
func NewReport(cfg *domain.SimulationConfig, batch *domain.BatchResult) (*Report, error) {
	if cfg == nil || batch == nil {
		return nil, fmt.Errorf("report requires a configuration and a batch result")
	}
	if !calculation.IsRanked(batch.Trajectories) {
		return nil, fmt.Errorf("batch %s trajectories are not ranked", batch.RunID)
	}
	return &Report{
		GeneratedAt: nowFunc(),
		RunID:       batch.RunID,
		Seed:        batch.Seed,
		ReturnModel: batch.ReturnModel,
		StartYear:   batch.StartYear,
		Horizon:     batch.HorizonYears,
		Summary:     calculation.SummarizeBatch(batch),
		Percentiles: calculation.ExtractPercentiles(batch.Trajectories, cfg.InflationMean),
		Assumptions: GenerateAssumptions(cfg),
		Config:      cfg,
	}, nil
}

// GenerateReport renders the report with the named formatter (or "all")
// into outputDir and returns the written file paths.
func GenerateReport(report *Report, format, outputDir string) ([]string, error) {
	if NormalizeFormatName(format) == "all" {
		var paths []string
		for _, name := range []string{"console", "detailed-csv", "json"} {
			path, err := WriteFormatted(GetFormatterByName(name), report, outputDir)
			if err != nil {
				return paths, err
			}
			paths = append(paths, path)
		}
		return paths, nil
	}

	f := GetFormatterByName(format)
	if f == nil {
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	path, err := WriteFormatted(f, report, outputDir)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// SaveRunConfiguration writes the configuration a report was produced from
// into outputDir, with the seed, start year and trajectory count pinned so
// the run can be reproduced from the file alone.
func SaveRunConfiguration(report *Report, outputDir string) (string, error) {
	if report == nil || report.Config == nil {
		return "", fmt.Errorf("report has no configuration")
	}
	resolved := *report.Config
	resolved.Seed = report.Seed
	resolved.StartYear = report.StartYear
	resolved.Simulations = report.Summary.Simulations

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	path := filepath.Join(outputDir, fmt.Sprintf("montecarlo_config_%s.yaml", report.GeneratedAt.Format("20060102_150405")))
	if err := SaveConfiguration(&resolved, path); err != nil {
		return "", err
	}
	return path, nil
}

// SaveConfiguration writes a household configuration as YAML.
func SaveConfiguration(config *domain.SimulationConfig, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
