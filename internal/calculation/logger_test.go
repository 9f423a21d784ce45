package calculation

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZerologLoggerTagsComponent(t *testing.T) {
	var buf bytes.Buffer
	l := NewZerologLogger(zerolog.New(&buf))
	l.Infof("ran %d trajectories", 3)

	assert.Contains(t, buf.String(), `"component":"simulation"`)
	assert.Contains(t, buf.String(), `"message":"ran 3 trajectories"`)
}

func TestSimulatorLogsRun(t *testing.T) {
	var buf bytes.Buffer
	cfg := stochasticConfig()
	cfg.Simulations = 3

	sim := NewMonteCarloSimulator(cfg, nil, MonteCarloConfig{})
	sim.SetLogger(NewZerologLogger(zerolog.New(&buf).Level(zerolog.InfoLevel)))
	batch, err := sim.Run(context.Background())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), batch.RunID)
	assert.Contains(t, buf.String(), "complete")

	sim.SetLogger(nil)
	_, err = sim.Run(context.Background())
	require.NoError(t, err)
}
