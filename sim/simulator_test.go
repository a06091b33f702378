package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jimmympnguyen/vast-mining-simulator/sim/trace"
)

func TestSimulator_Run_SingleTruckDay(t *testing.T) {
	// GIVEN one truck with a 23-tick cycle over 24 hours
	s := NewSimulator(scenarioConfig(1, 1, 1), FixedMiningDuration(25))

	// WHEN the simulation runs to its horizon
	res, err := s.Run(context.Background())

	// THEN every tick ran and twelve loads were deposited
	require.NoError(t, err)
	assert.Equal(t, 288, res.Summary.Ticks)
	assert.Equal(t, 24*60, res.Summary.ElapsedMinutes)
	assert.Equal(t, 12, res.Summary.UnitsDeposited)
	require.Len(t, res.Trucks, 1)
	assert.Equal(t, 12, res.Trucks[0].UnitsMined)
	assert.Nil(t, res.Trace)
}

func TestSimulator_Run_ClockStopsAtHorizon(t *testing.T) {
	// GIVEN a horizon that is not a whole number of steps
	cfg := scenarioConfig(2, 2, 1)
	cfg.StepMinutes = 7
	s := NewSimulator(cfg, FixedMiningDuration(21))

	_, err := s.Run(context.Background())

	// THEN the run overshoots by less than one step
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s.Coordinator.Clock(), s.Horizon)
	assert.Less(t, s.Coordinator.Clock(), s.Horizon+7)
}

func TestSimulator_Run_ZeroDurationRunsNoTicks(t *testing.T) {
	cfg := scenarioConfig(1, 1, 1)
	cfg.SimDurationHours = 0
	res, err := NewSimulator(cfg, FixedMiningDuration(25)).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, res.Summary.Ticks)
}

func TestSimulator_Run_CancelledContext(t *testing.T) {
	// GIVEN a context cancelled before the run starts
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewSimulator(scenarioConfig(1, 1, 1), FixedMiningDuration(25))

	// WHEN the simulation runs
	res, err := s.Run(ctx)

	// THEN it stops on a tick boundary and still reports what it did
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Equal(t, 0, res.Summary.Ticks)
}

func TestSimulator_Run_TwicePanics(t *testing.T) {
	s := NewSimulator(scenarioConfig(1, 1, 1), FixedMiningDuration(25))
	_, err := s.Run(context.Background())
	require.NoError(t, err)

	assert.Panics(t, func() { _, _ = s.Run(context.Background()) })
}

func TestSimulator_Run_Deterministic(t *testing.T) {
	// GIVEN two simulators with the same seed and random load times
	cfg := DefaultSimulationConfig()
	a := NewSimulator(cfg, nil)
	b := NewSimulator(cfg, nil)

	resA, errA := a.Run(context.Background())
	resB, errB := b.Run(context.Background())

	// THEN the results are identical
	require.NoError(t, errA)
	require.NoError(t, errB)
	assert.Equal(t, resA, resB)
}

func TestSimulator_Result_IncludesTraceSummary(t *testing.T) {
	// GIVEN a traced run with more trucks than mines
	s := NewSimulator(scenarioConfig(2, 1, 1), FixedMiningDuration(25))
	s.Coordinator.SetTrace(trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelDecisions}))

	res, err := s.Run(context.Background())

	// THEN the result carries decision statistics
	require.NoError(t, err)
	require.NotNil(t, res.Trace)
	assert.Positive(t, res.Trace.RejectedCount)
	assert.Equal(t, res.Summary.UnitsDeposited, res.Trace.StationAssignments-pendingArrivals(s.Coordinator))
}

func TestStatistics_SortedByOutputThenID(t *testing.T) {
	// GIVEN a coordinator with hand-set counters
	c := newTestCoordinator(3, 3, 2, 25)
	c.Trucks()[0].UnitsMined = 1
	c.Trucks()[1].UnitsMined = 4
	c.Trucks()[2].UnitsMined = 1
	c.Stations()[1].UnitsDeposited = 6
	c.Mines()[2].LoadsCompleted = 2

	// THEN the busiest come first and ties keep id order
	trucks := c.StatisticsForTrucks()
	assert.Equal(t, []int{1, 0, 2}, []int{trucks[0].ID, trucks[1].ID, trucks[2].ID})
	stations := c.StatisticsForStations()
	assert.Equal(t, []int{1, 0}, []int{stations[0].ID, stations[1].ID})
	mines := c.StatisticsForMines()
	assert.Equal(t, []int{2, 0, 1}, []int{mines[0].ID, mines[1].ID, mines[2].ID})

	summary := c.Summary()
	assert.Equal(t, 6, summary.UnitsDeposited)
	assert.Equal(t, RunSummary{Trucks: 3, Mines: 3, Stations: 2, UnitsDeposited: 6}, summary)
}

// pendingArrivals counts trucks queued at a station that have not deposited yet.
func pendingArrivals(c *Coordinator) int {
	n := 0
	for _, s := range c.Stations() {
		n += s.QueueLen()
	}
	return n
}
