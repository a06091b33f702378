// Read-only statistics snapshots handed to reporting sinks at the end of a run.

package sim

import "sort"

// TruckStats summarizes one truck's run.
type TruckStats struct {
	ID               int `json:"id" yaml:"id"`
	UnitsMined       int `json:"units_mined" yaml:"units_mined"`
	MiningMinutes    int `json:"mining_minutes" yaml:"mining_minutes"`
	TravelingMinutes int `json:"traveling_minutes" yaml:"traveling_minutes"`
	UnloadingMinutes int `json:"unloading_minutes" yaml:"unloading_minutes"`
	WaitingMinutes   int `json:"waiting_minutes" yaml:"waiting_minutes"`
	IdleMinutes      int `json:"idle_minutes" yaml:"idle_minutes"`
}

// StationStats summarizes one unload station's run.
type StationStats struct {
	ID               int `json:"id" yaml:"id"`
	UnitsDeposited   int `json:"units_deposited" yaml:"units_deposited"`
	TotalWaitMinutes int `json:"total_wait_minutes" yaml:"total_wait_minutes"`
}

// MineStats summarizes one mine site's run.
type MineStats struct {
	ID             int `json:"id" yaml:"id"`
	LoadsCompleted int `json:"loads_completed" yaml:"loads_completed"`
}

// RunSummary carries fleet-wide totals.
type RunSummary struct {
	Ticks          int `json:"ticks" yaml:"ticks"`
	ElapsedMinutes int `json:"elapsed_minutes" yaml:"elapsed_minutes"`
	UnitsDeposited int `json:"units_deposited" yaml:"units_deposited"`
	Trucks         int `json:"trucks" yaml:"trucks"`
	Mines          int `json:"mines" yaml:"mines"`
	Stations       int `json:"stations" yaml:"stations"`
}

// StatisticsForTrucks returns one entry per truck, most units mined first.
// Ties keep id order.
func (c *Coordinator) StatisticsForTrucks() []TruckStats {
	stats := make([]TruckStats, len(c.trucks))
	for i, t := range c.trucks {
		stats[i] = TruckStats{
			ID:               t.ID,
			UnitsMined:       t.UnitsMined,
			MiningMinutes:    t.Minutes.Mining,
			TravelingMinutes: t.Minutes.Traveling,
			UnloadingMinutes: t.Minutes.Unloading,
			WaitingMinutes:   t.Minutes.Waiting,
			IdleMinutes:      t.Minutes.Idle,
		}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].UnitsMined > stats[j].UnitsMined
	})
	return stats
}

// StatisticsForStations returns one entry per station, most units deposited first.
// Ties keep id order.
func (c *Coordinator) StatisticsForStations() []StationStats {
	stats := make([]StationStats, len(c.stations))
	for i, s := range c.stations {
		stats[i] = StationStats{
			ID:               s.ID,
			UnitsDeposited:   s.UnitsDeposited,
			TotalWaitMinutes: s.TotalWaitTime,
		}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].UnitsDeposited > stats[j].UnitsDeposited
	})
	return stats
}

// StatisticsForMines returns one entry per mine, most loads completed first.
// Ties keep id order.
func (c *Coordinator) StatisticsForMines() []MineStats {
	stats := make([]MineStats, len(c.mines))
	for i, m := range c.mines {
		stats[i] = MineStats{ID: m.ID, LoadsCompleted: m.LoadsCompleted}
	}
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].LoadsCompleted > stats[j].LoadsCompleted
	})
	return stats
}

// Summary returns fleet-wide totals for the run so far.
func (c *Coordinator) Summary() RunSummary {
	deposited := 0
	for _, s := range c.stations {
		deposited += s.UnitsDeposited
	}
	return RunSummary{
		Ticks:          c.ticks,
		ElapsedMinutes: c.clock,
		UnitsDeposited: deposited,
		Trucks:         len(c.trucks),
		Mines:          len(c.mines),
		Stations:       len(c.stations),
	}
}
