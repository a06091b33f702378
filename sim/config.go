package sim

// SimulationConfig is the validated, immutable input to NewCoordinator and NewSimulator.
// Loading and validation happen outside this package (see cmd/config.go); the core
// assumes every range here already holds (e.g. MinMineTimeHours <= MaxMineTimeHours).
type SimulationConfig struct {
	StepMinutes       int   `json:"step_minutes" yaml:"step_minutes"`               // size of one tick (must be > 0)
	TravelTimeMinutes int   `json:"travel_time_minutes" yaml:"travel_time_minutes"` // mine <-> station travel duration
	UnloadTimeMinutes int   `json:"unload_time_minutes" yaml:"unload_time_minutes"` // time to unload at a station
	MinMineTimeHours  int   `json:"min_mine_time_hours" yaml:"min_mine_time_hours"` // shortest load at a mine
	MaxMineTimeHours  int   `json:"max_mine_time_hours" yaml:"max_mine_time_hours"` // longest load at a mine
	NumTrucks         int   `json:"num_trucks" yaml:"num_trucks"`                   // fleet size (must be > 0)
	NumStations       int   `json:"num_stations" yaml:"num_stations"`               // unload stations (must be > 0)
	NumMines          int   `json:"num_mines" yaml:"num_mines"`                     // mine sites; 0 means one per truck
	SimDurationHours  int   `json:"sim_duration_hours" yaml:"sim_duration_hours"`   // elapsed-time budget for Simulator.Run
	Seed              int64 `json:"seed" yaml:"seed"`                               // master seed for mining durations
}

// MineCount returns the number of mine sites to create.
func (c SimulationConfig) MineCount() int {
	if c.NumMines > 0 {
		return c.NumMines
	}
	return c.NumTrucks
}

// HorizonMinutes returns the elapsed-time budget in minutes.
func (c SimulationConfig) HorizonMinutes() int {
	return c.SimDurationHours * 60
}

// MineMinutesRange returns the configured load duration bounds in minutes.
func (c SimulationConfig) MineMinutesRange() (minMinutes, maxMinutes int) {
	return c.MinMineTimeHours * 60, c.MaxMineTimeHours * 60
}

// DefaultSimulationConfig returns the parameters the simulator ships with:
// 5-minute ticks, 30-minute trips, 5-minute unloads, 1-5 hour loads over 72 hours.
func DefaultSimulationConfig() SimulationConfig {
	return SimulationConfig{
		StepMinutes:       5,
		TravelTimeMinutes: 30,
		UnloadTimeMinutes: 5,
		MinMineTimeHours:  1,
		MaxMineTimeHours:  5,
		NumTrucks:         10,
		NumStations:       2,
		SimDurationHours:  72,
		Seed:              42,
	}
}
