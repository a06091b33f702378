package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// UnloadStation unloads trucks in arrival order.
// Only the head of the queue is ever Unloading; everyone behind it is Waiting.
type UnloadStation struct {
	ID int

	queue         TruckQueue
	unloadMinutes int
	stepMinutes   int

	// CurrentWaitTime is the sum of the timers of every queued truck.
	// It is a selection heuristic, not an ETA.
	CurrentWaitTime int
	// TotalWaitTime accumulates minutes spent waiting by all trucks behind the head.
	TotalWaitTime int
	// UnitsDeposited counts trucks that finished unloading here.
	UnitsDeposited int
}

// NewUnloadStation creates an empty station.
func NewUnloadStation(id int, unloadMinutes int, stepMinutes int) *UnloadStation {
	return &UnloadStation{
		ID:            id,
		unloadMinutes: unloadMinutes,
		stepMinutes:   stepMinutes,
	}
}

// QueueLen returns the number of trucks at the station, including the one unloading.
func (s *UnloadStation) QueueLen() int {
	return s.queue.Len()
}

// Queue returns the trucks at the station, head first. Callers MUST NOT modify it.
func (s *UnloadStation) Queue() []*Truck {
	return s.queue.Items()
}

// Enqueue appends t to the line. It starts unloading immediately when the line is
// empty and waits otherwise; either way it is handed the full unload duration.
func (s *UnloadStation) Enqueue(t *Truck) {
	if s.queue.Len() > 0 {
		t.Activity = Waiting
	} else {
		t.Activity = Unloading
	}
	s.queue.Enqueue(t)
	t.Timer = s.unloadMinutes
	s.CurrentWaitTime = s.queue.SumTimers()
	logrus.Debugf("truck %d queued at station %d as %s (queue=%d, wait=%d)",
		t.ID, s.ID, t.Activity, s.queue.Len(), s.CurrentWaitTime)
}

// ManageQueue charges this step's waiting time, releases a finished head and
// promotes the next truck in line.
func (s *UnloadStation) ManageQueue() {
	if s.queue.Len() == 0 {
		return
	}
	s.TotalWaitTime += (s.queue.Len() - 1) * s.stepMinutes

	if head := s.queue.Peek(); head.Timer == 0 {
		s.queue.Dequeue()
		head.UnitsMined++
		s.UnitsDeposited++
		logrus.Debugf("truck %d has completed unloading at station %d", head.ID, s.ID)
	}

	if next := s.queue.Peek(); next != nil && next.Activity == Waiting {
		next.Activity = Unloading
		logrus.Debugf("truck %d has moved to the front of station %d", next.ID, s.ID)
	}
	s.CurrentWaitTime = s.queue.SumTimers()
}

func (s *UnloadStation) String() string {
	return fmt.Sprintf("UnloadStation %d %s (wait=%d)", s.ID, s.queue.String(), s.CurrentWaitTime)
}
