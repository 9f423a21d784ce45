package calculation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rpgo/household-montecarlo/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers bounds the number of trajectories simulated concurrently.
const DefaultWorkers = 10

// MonteCarloConfig holds run-level overrides for a batch
type MonteCarloConfig struct {
	NumSimulations int       // overrides SimulationConfig.Simulations when > 0
	Seed           int64     // overrides SimulationConfig.Seed when non-zero
	StartYear      int       // overrides SimulationConfig.StartYear when non-zero
	Workers        int       // concurrent trajectories, DefaultWorkers when <= 0
	Waterfall      Waterfall // withdrawal order, DefaultWaterfall when empty
}

// MonteCarloSimulator repeats the trajectory driver and ranks the outcomes
type MonteCarloSimulator struct {
	Config         *domain.SimulationConfig
	History        *HistoricalReturns
	NumSimulations int
	Seed           int64
	StartYear      int
	Workers        int
	Waterfall      Waterfall

	logger Logger
}

// NewMonteCarloSimulator creates a new Monte Carlo simulator
func NewMonteCarloSimulator(cfg *domain.SimulationConfig, history *HistoricalReturns, mc MonteCarloConfig) *MonteCarloSimulator {
	sim := &MonteCarloSimulator{
		Config:         cfg,
		History:        history,
		NumSimulations: mc.NumSimulations,
		Seed:           mc.Seed,
		StartYear:      mc.StartYear,
		Workers:        mc.Workers,
		Waterfall:      mc.Waterfall,
		logger:         NopLogger{},
	}
	if cfg != nil {
		if sim.NumSimulations <= 0 {
			sim.NumSimulations = cfg.Simulations
		}
		if sim.Seed == 0 {
			sim.Seed = cfg.Seed
		}
		if sim.StartYear == 0 {
			sim.StartYear = cfg.StartYear
		}
	}
	if sim.Seed == 0 {
		sim.Seed = seedFunc()
	}
	if sim.StartYear == 0 {
		sim.StartYear = nowFunc().Year()
	}
	if sim.Workers <= 0 {
		sim.Workers = DefaultWorkers
	}
	if len(sim.Waterfall) == 0 {
		sim.Waterfall = DefaultWaterfall
	}
	return sim
}

// SetLogger sets the logger for the simulator
func (mcs *MonteCarloSimulator) SetLogger(l Logger) {
	if l == nil {
		mcs.logger = NopLogger{}
		return
	}
	mcs.logger = l
}

// Run executes every trajectory and returns the tallies and the ranked
// trajectories. Each trajectory draws from its own stream keyed by
// (seed, trajectory id), so results do not depend on worker count.
func (mcs *MonteCarloSimulator) Run(ctx context.Context) (*domain.BatchResult, error) {
	if mcs.Config == nil {
		return nil, fmt.Errorf("simulation config is required")
	}
	if mcs.History == nil {
		history, err := DefaultHistoricalReturns()
		if err != nil {
			return nil, fmt.Errorf("failed to load historical returns: %w", err)
		}
		mcs.History = history
	}
	if mcs.NumSimulations <= 0 {
		return nil, fmt.Errorf("number of simulations must be positive, got %d", mcs.NumSimulations)
	}

	provider, err := NewReturnModelProvider(mcs.Config.ReturnModel, mcs.Config.Returns, mcs.History)
	if err != nil {
		return nil, fmt.Errorf("failed to create return model: %w", err)
	}
	driver, err := NewTrajectoryDriver(mcs.Config, mcs.StartYear, provider, mcs.Waterfall)
	if err != nil {
		return nil, fmt.Errorf("failed to create trajectory driver: %w", err)
	}
	driver.SetLogger(mcs.logger)

	runID := uuid.New().String()
	mcs.logger.Infof("run %s: %d trajectories, %d years, model %s, seed %d, workers %d",
		runID, mcs.NumSimulations, driver.Horizon(), mcs.Config.ReturnModel.Label(), mcs.Seed, mcs.Workers)

	results := make([]domain.SimulationResult, mcs.NumSimulations)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(mcs.Workers)

	for i := 0; i < mcs.NumSimulations; i++ {
		simIndex := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := driver.Run(simIndex, NewTrajectoryRand(mcs.Seed, simIndex))
			if err != nil {
				return err
			}
			results[simIndex] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		mcs.logger.Errorf("run %s failed: %v", runID, err)
		return nil, err
	}

	success, failure := TallyOutcomes(results)
	RankTrajectories(results)
	mcs.logger.Infof("run %s complete: %d succeeded, %d failed", runID, success, failure)

	return &domain.BatchResult{
		RunID:        runID,
		Seed:         mcs.Seed,
		ReturnModel:  mcs.Config.ReturnModel,
		StartYear:    mcs.StartYear,
		HorizonYears: driver.Horizon(),
		SuccessCount: success,
		FailureCount: failure,
		Trajectories: results,
	}, nil
}

// TallyOutcomes counts successful and failed trajectories.
func TallyOutcomes(results []domain.SimulationResult) (success, failure int) {
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failure++
		}
	}
	return success, failure
}
