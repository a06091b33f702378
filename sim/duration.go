package sim

// MiningDurationPolicy decides how many minutes a truck spends loading at a mine.
// Implementations receive the mine's id so they can keep per-mine random streams.
type MiningDurationPolicy interface {
	Duration(mineID int) int
}

// FixedMiningDuration loads every truck for the same number of minutes.
type FixedMiningDuration int

// Duration implements MiningDurationPolicy for FixedMiningDuration.
func (f FixedMiningDuration) Duration(mineID int) int {
	return int(f)
}

// UniformMiningDuration draws a duration uniformly from [MinMinutes, MaxMinutes],
// both inclusive, restricted to multiples of StepMinutes above MinMinutes so that
// the simulation step always divides the remaining time.
type UniformMiningDuration struct {
	MinMinutes  int
	MaxMinutes  int
	StepMinutes int
	rng         *PartitionedRNG
}

// NewUniformMiningDuration creates a uniform policy drawing from rng's per-mine subsystems.
func NewUniformMiningDuration(minMinutes, maxMinutes, stepMinutes int, rng *PartitionedRNG) *UniformMiningDuration {
	if rng == nil {
		panic("NewUniformMiningDuration: rng must not be nil")
	}
	return &UniformMiningDuration{
		MinMinutes:  minMinutes,
		MaxMinutes:  maxMinutes,
		StepMinutes: stepMinutes,
		rng:         rng,
	}
}

// Duration implements MiningDurationPolicy for UniformMiningDuration.
func (u *UniformMiningDuration) Duration(mineID int) int {
	if u.MaxMinutes <= u.MinMinutes || u.StepMinutes <= 0 {
		return u.MinMinutes
	}
	choices := (u.MaxMinutes-u.MinMinutes)/u.StepMinutes + 1
	return u.MinMinutes + u.StepMinutes*u.rng.ForSubsystem(SubsystemMine(mineID)).Intn(choices)
}
