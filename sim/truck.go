// Defines the Truck that models a single haul truck in the simulation.
// Tracks the current activity, the minutes left in it, and how long the truck
// has spent in each activity over the run.

package sim

import (
	"fmt"
)

// ActivityMinutes holds cumulative minutes a truck spent per activity.
// Every field only ever grows.
type ActivityMinutes struct {
	Mining    int
	Traveling int
	Unloading int
	Waiting   int
	Idle      int // arrived at a mine or station but not yet admitted
}

// Truck models one haul truck's lifecycle in the simulation.
//
// Activity and Timer are written by the truck itself in Advance and by the
// MineSite/UnloadStation that admits it. Everything else is written only by
// the truck (counters) or by the station it deposits at (UnitsMined).
type Truck struct {
	ID int // Stable for the truck's lifetime

	Activity Activity // Current phase
	Timer    int      // Minutes left in the current phase, never negative

	Minutes    ActivityMinutes // Cumulative minutes per activity
	UnitsMined int             // Completed unload cycles

	travelMinutes int // Fixed mine <-> station travel duration
}

// NewTruck creates a truck that starts heading to a mine with nothing left to travel,
// so the coordinator assigns it a mine on the first tick.
func NewTruck(id int, travelMinutes int) *Truck {
	return &Truck{
		ID:            id,
		Activity:      TravelToMine,
		Timer:         0,
		travelMinutes: travelMinutes,
	}
}

// AwaitingAssignment reports whether the truck has arrived and needs a mine or station.
func (t *Truck) AwaitingAssignment() bool {
	return t.Activity.IsTravel() && t.Timer == 0
}

// Advance moves the truck forward by one step of stepMinutes.
//
// The counter for the activity held on entry is charged first, then the timer
// logic runs. At timer zero only Mining and Unloading transition on their own;
// arrivals and promotions are decided by the mine or station.
func (t *Truck) Advance(stepMinutes int) {
	t.chargeMinutes(stepMinutes)

	if t.Timer > 0 {
		// A waiting truck holds its unload duration until it reaches the head.
		if t.Activity != Waiting {
			t.Timer = max(t.Timer-stepMinutes, 0)
		}
		return
	}

	switch t.Activity {
	case Mining:
		t.Activity = TravelToUnload
		t.Timer = t.travelMinutes
	case Unloading:
		t.Activity = TravelToMine
		t.Timer = t.travelMinutes
	case TravelToMine, TravelToUnload, Waiting:
		// Admission and promotion are external.
	default:
		panic(fmt.Sprintf("Truck.Advance: unknown %v", t.Activity))
	}
}

func (t *Truck) chargeMinutes(stepMinutes int) {
	switch t.Activity {
	case TravelToMine, TravelToUnload:
		if t.Timer == 0 {
			t.Minutes.Idle += stepMinutes
		} else {
			t.Minutes.Traveling += stepMinutes
		}
	case Mining:
		t.Minutes.Mining += stepMinutes
	case Waiting:
		t.Minutes.Waiting += stepMinutes
	case Unloading:
		t.Minutes.Unloading += stepMinutes
	default:
		panic(fmt.Sprintf("Truck.chargeMinutes: unknown %v", t.Activity))
	}
}

// String returns a human-readable representation of the truck.
func (t *Truck) String() string {
	return fmt.Sprintf("Truck: (ID: %d, Activity: %s, Timer: %d, UnitsMined: %d)", t.ID, t.Activity, t.Timer, t.UnitsMined)
}
