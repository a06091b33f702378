package sim

// scenarioConfig returns a small, fully deterministic configuration:
// 5-minute ticks, 30-minute trips and 20-minute unloads.
func scenarioConfig(trucks, mines, stations int) SimulationConfig {
	return SimulationConfig{
		StepMinutes:       5,
		TravelTimeMinutes: 30,
		UnloadTimeMinutes: 20,
		MinMineTimeHours:  1,
		MaxMineTimeHours:  1,
		NumTrucks:         trucks,
		NumMines:          mines,
		NumStations:       stations,
		SimDurationHours:  24,
		Seed:              42,
	}
}

// newTestCoordinator builds a coordinator whose mines always load for mineMinutes.
func newTestCoordinator(trucks, mines, stations, mineMinutes int) *Coordinator {
	return NewCoordinator(scenarioConfig(trucks, mines, stations), FixedMiningDuration(mineMinutes))
}

// checkInvariants checks the structural invariants that must hold at every tick boundary.
// It returns a description of the first violation, or "".
func checkInvariants(c *Coordinator) string {
	for _, m := range c.Mines() {
		if m.QueueLen() > 1 {
			return "mine queue longer than one"
		}
	}
	for _, s := range c.Stations() {
		for i, t := range s.Queue() {
			if t.Activity == Unloading && i != 0 {
				return "unloading truck behind the head"
			}
			if i > 0 && t.Activity != Waiting {
				return "non-head truck not waiting"
			}
		}
	}
	for _, t := range c.Trucks() {
		if t.Timer < 0 {
			return "negative timer"
		}
	}
	return ""
}
