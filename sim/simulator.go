// sim/simulator.go
package sim

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/jimmympnguyen/vast-mining-simulator/sim/trace"
)

// Result is the read-only snapshot a run hands to reporting sinks.
type Result struct {
	Summary  RunSummary          `json:"summary" yaml:"summary"`
	Trucks   []TruckStats        `json:"trucks" yaml:"trucks"`
	Stations []StationStats      `json:"stations" yaml:"stations"`
	Mines    []MineStats         `json:"mines" yaml:"mines"`
	Trace    *trace.TraceSummary `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// Simulator drives a Coordinator until the configured elapsed-time budget is spent.
type Simulator struct {
	Coordinator *Coordinator
	// Horizon is the elapsed-time budget in simulated minutes.
	Horizon int
	hasRun  bool
}

// NewSimulator creates a Simulator for config. duration may be nil, see NewCoordinator.
func NewSimulator(config SimulationConfig, duration MiningDurationPolicy) *Simulator {
	return &Simulator{
		Coordinator: NewCoordinator(config, duration),
		Horizon:     config.HorizonMinutes(),
	}
}

// Run ticks the coordinator while the clock is below Horizon.
// ctx is checked between ticks only, so a cancelled run stops on a tick boundary;
// the returned Result then covers the completed ticks and the error is ctx.Err().
// Panics if called more than once.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if s.hasRun {
		panic("Simulator.Run() called more than once")
	}
	s.hasRun = true

	c := s.Coordinator
	logrus.Infof("Starting simulation: %d trucks, %d mines, %d stations, horizon=%dmin, step=%dmin",
		len(c.Trucks()), len(c.Mines()), len(c.Stations()), s.Horizon, c.Config().StepMinutes)

	var runErr error
	for c.Clock() < s.Horizon {
		if err := ctx.Err(); err != nil {
			logrus.Warnf("[t=%05d] Simulation cancelled: %v", c.Clock(), err)
			runErr = err
			break
		}
		logrus.Tracef("[t=%05d] Executing tick %d", c.Clock(), c.Ticks())
		c.Tick()
	}

	logrus.Infof("[t=%05d] Simulation ended after %d ticks", c.Clock(), c.Ticks())
	return s.Result(), runErr
}

// Result snapshots the current statistics.
func (s *Simulator) Result() *Result {
	c := s.Coordinator
	res := &Result{
		Summary:  c.Summary(),
		Trucks:   c.StatisticsForTrucks(),
		Stations: c.StatisticsForStations(),
		Mines:    c.StatisticsForMines(),
	}
	if c.Trace().Enabled() {
		res.Trace = trace.Summarize(c.Trace())
	}
	return res
}
