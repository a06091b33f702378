package sim

import "fmt"

// Activity is the phase a truck is currently in.
// The set is closed: every switch over Activity lists all five values.
type Activity int

const (
	TravelToMine Activity = iota
	Mining
	TravelToUnload
	Waiting
	Unloading
)

// String returns the human-readable activity name used in logs and reports.
func (a Activity) String() string {
	switch a {
	case TravelToMine:
		return "travel-to-mine"
	case Mining:
		return "mining"
	case TravelToUnload:
		return "travel-to-unload"
	case Waiting:
		return "waiting"
	case Unloading:
		return "unloading"
	default:
		return fmt.Sprintf("activity(%d)", int(a))
	}
}

// IsTravel reports whether the activity moves the truck between a mine and a station.
func (a Activity) IsTravel() bool {
	switch a {
	case TravelToMine, TravelToUnload:
		return true
	case Mining, Waiting, Unloading:
		return false
	default:
		panic(fmt.Sprintf("IsTravel: unknown %v", a))
	}
}
