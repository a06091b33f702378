package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/jimmympnguyen/vast-mining-simulator/sim/trace"
)

// Coordinator owns every truck, mine site and unload station and advances them
// together, one tick at a time.
//
// Tick order is fixed and is the only ordering guarantee the simulation relies on:
//  1. mines release finished loads
//  2. stations release finished unloads and promote waiters
//  3. trucks arriving at the unload side are queued at the least-waited station
//  4. trucks arriving at the mine side try the least-occupied mine
//  5. every truck advances by one step
//
// Steps 3 and 4 see the fleet as it was before step 5 moved anyone.
//
// Thread-safety: NOT thread-safe. Must be driven from a single goroutine.
type Coordinator struct {
	config   SimulationConfig
	trucks   []*Truck
	mines    []*MineSite
	stations []*UnloadStation

	truckIDs   *IDGenerator
	mineIDs    *IDGenerator
	stationIDs *IDGenerator

	clock int // simulated minutes elapsed before the current tick
	ticks int

	trace *trace.SimulationTrace // nil when tracing is disabled
}

// NewCoordinator builds the fleet described by config. Mine load times come from
// duration; when duration is nil a seeded UniformMiningDuration is used.
// Panics on a non-positive step, an empty fleet, or no stations: those are
// rejected by configuration validation long before this point.
func NewCoordinator(config SimulationConfig, duration MiningDurationPolicy) *Coordinator {
	if config.StepMinutes <= 0 {
		panic(fmt.Sprintf("NewCoordinator: StepMinutes must be > 0, got %d", config.StepMinutes))
	}
	if config.NumTrucks < 1 || config.NumStations < 1 || config.MineCount() < 1 {
		panic(fmt.Sprintf("NewCoordinator: need at least one truck, mine and station, got %d/%d/%d",
			config.NumTrucks, config.MineCount(), config.NumStations))
	}
	if duration == nil {
		minMinutes, maxMinutes := config.MineMinutesRange()
		duration = NewUniformMiningDuration(minMinutes, maxMinutes, config.StepMinutes,
			NewPartitionedRNG(NewSimulationKey(config.Seed)))
	}

	c := &Coordinator{
		config:     config,
		truckIDs:   NewIDGenerator(0),
		mineIDs:    NewIDGenerator(0),
		stationIDs: NewIDGenerator(0),
	}
	c.stations = make([]*UnloadStation, config.NumStations)
	for i := range c.stations {
		c.stations[i] = NewUnloadStation(c.stationIDs.Next(), config.UnloadTimeMinutes, config.StepMinutes)
	}
	c.trucks = make([]*Truck, config.NumTrucks)
	for i := range c.trucks {
		c.trucks[i] = NewTruck(c.truckIDs.Next(), config.TravelTimeMinutes)
	}
	c.mines = make([]*MineSite, config.MineCount())
	for i := range c.mines {
		c.mines[i] = NewMineSite(c.mineIDs.Next(), duration)
	}
	return c
}

// SetTrace attaches a decision trace. Pass nil to disable tracing.
func (c *Coordinator) SetTrace(st *trace.SimulationTrace) {
	c.trace = st
}

// Trace returns the attached decision trace, or nil.
func (c *Coordinator) Trace() *trace.SimulationTrace {
	return c.trace
}

// Config returns the configuration the coordinator was built from.
func (c *Coordinator) Config() SimulationConfig {
	return c.config
}

// Clock returns the simulated minutes elapsed so far.
func (c *Coordinator) Clock() int {
	return c.clock
}

// Ticks returns the number of completed ticks.
func (c *Coordinator) Ticks() int {
	return c.ticks
}

// Trucks returns the fleet in id order. Callers MUST NOT modify the slice.
func (c *Coordinator) Trucks() []*Truck { return c.trucks }

// Mines returns the mine sites in id order. Callers MUST NOT modify the slice.
func (c *Coordinator) Mines() []*MineSite { return c.mines }

// Stations returns the unload stations in id order. Callers MUST NOT modify the slice.
func (c *Coordinator) Stations() []*UnloadStation { return c.stations }

// Tick advances the whole simulation by one step.
func (c *Coordinator) Tick() {
	c.releaseFinished()
	c.assignToStations()
	c.assignToMines()
	for _, t := range c.trucks {
		t.Advance(c.config.StepMinutes)
	}
	c.clock += c.config.StepMinutes
	c.ticks++
}

func (c *Coordinator) releaseFinished() {
	for _, m := range c.mines {
		occupant := m.Occupant()
		before := m.LoadsCompleted
		m.ManageQueue()
		if m.LoadsCompleted != before && c.trace.Enabled() {
			c.trace.RecordCompletion(trace.CompletionRecord{
				Clock: c.clock, TruckID: occupant.ID, Kind: trace.TargetMine, TargetID: m.ID,
			})
		}
	}
	for _, s := range c.stations {
		var head *Truck
		if s.QueueLen() > 0 {
			head = s.Queue()[0]
		}
		before := s.UnitsDeposited
		s.ManageQueue()
		if s.UnitsDeposited != before && c.trace.Enabled() {
			c.trace.RecordCompletion(trace.CompletionRecord{
				Clock: c.clock, TruckID: head.ID, Kind: trace.TargetStation, TargetID: s.ID,
			})
		}
	}
}

func (c *Coordinator) assignToStations() {
	for _, t := range c.trucks {
		if t.Activity != TravelToUnload || t.Timer != 0 {
			continue
		}
		decision := decide("station", StationSnapshots(c.stations))
		c.stations[c.stationIndex(decision.TargetID)].Enqueue(t)
		logrus.Debugf("[t=%05d] truck %d -> station %d: %s", c.clock, t.ID, decision.TargetID, decision.Reason)
		c.record(t, trace.TargetStation, decision, true)
	}
}

func (c *Coordinator) assignToMines() {
	for _, t := range c.trucks {
		if t.Activity != TravelToMine || t.Timer != 0 {
			continue
		}
		decision := decide("mine", MineSnapshots(c.mines))
		accepted := c.mines[c.mineIndex(decision.TargetID)].TryEnqueue(t)
		if !accepted {
			logrus.Debugf("[t=%05d] truck %d could not enter mine %d; retrying next tick", c.clock, t.ID, decision.TargetID)
		}
		c.record(t, trace.TargetMine, decision, accepted)
	}
}

func (c *Coordinator) record(t *Truck, kind trace.TargetKind, d AssignmentDecision, accepted bool) {
	if !c.trace.Enabled() {
		return
	}
	candidates := make([]trace.CandidateLoad, len(d.Candidates))
	for i, snap := range d.Candidates {
		candidates[i] = trace.CandidateLoad{ID: snap.ID, Load: snap.Load}
	}
	c.trace.RecordAssignment(trace.AssignmentRecord{
		Clock:      c.clock,
		TruckID:    t.ID,
		Kind:       kind,
		TargetID:   d.TargetID,
		Accepted:   accepted,
		Reason:     d.Reason,
		Candidates: candidates,
	})
}

// mineIndex maps a mine id back to its slot. Ids are handed out in slice order.
func (c *Coordinator) mineIndex(id int) int {
	for i, m := range c.mines {
		if m.ID == id {
			return i
		}
	}
	panic(fmt.Sprintf("Coordinator: unknown mine %d", id))
}

func (c *Coordinator) stationIndex(id int) int {
	for i, s := range c.stations {
		if s.ID == id {
			return i
		}
	}
	panic(fmt.Sprintf("Coordinator: unknown station %d", id))
}
