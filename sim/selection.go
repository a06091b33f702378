package sim

import "fmt"

// LoadSnapshot is an immutable view of one mine or station for assignment decisions.
// Load is the queue length for mines and CurrentWaitTime for stations.
type LoadSnapshot struct {
	ID   int
	Load int
}

// AssignmentDecision describes where a truck was sent and what the alternatives looked like.
type AssignmentDecision struct {
	TargetID   int            // ID of the chosen mine or station
	Reason     string         // Human-readable explanation
	Candidates []LoadSnapshot // Snapshot every candidate was judged on
}

// lessLoaded orders snapshots by Load, then by ID.
func lessLoaded(a, b LoadSnapshot) bool {
	if a.Load != b.Load {
		return a.Load < b.Load
	}
	return a.ID < b.ID
}

// SelectLeastLoaded returns the snapshot with minimum Load.
// Ties are broken by lowest ID, independent of slice order.
// Panics on empty input: the coordinator always has at least one mine and station.
func SelectLeastLoaded(snapshots []LoadSnapshot) LoadSnapshot {
	if len(snapshots) == 0 {
		panic("SelectLeastLoaded: empty snapshots")
	}
	best := snapshots[0]
	for _, snap := range snapshots[1:] {
		if lessLoaded(snap, best) {
			best = snap
		}
	}
	return best
}

// MineSnapshots projects each mine onto its queue length.
func MineSnapshots(mines []*MineSite) []LoadSnapshot {
	snaps := make([]LoadSnapshot, len(mines))
	for i, m := range mines {
		snaps[i] = LoadSnapshot{ID: m.ID, Load: m.QueueLen()}
	}
	return snaps
}

// StationSnapshots projects each station onto its current wait time.
func StationSnapshots(stations []*UnloadStation) []LoadSnapshot {
	snaps := make([]LoadSnapshot, len(stations))
	for i, s := range stations {
		snaps[i] = LoadSnapshot{ID: s.ID, Load: s.CurrentWaitTime}
	}
	return snaps
}

// decide runs SelectLeastLoaded and packages the result for tracing.
func decide(kind string, snapshots []LoadSnapshot) AssignmentDecision {
	best := SelectLeastLoaded(snapshots)
	return AssignmentDecision{
		TargetID:   best.ID,
		Reason:     fmt.Sprintf("least-loaded %s (load=%d)", kind, best.Load),
		Candidates: snapshots,
	}
}
