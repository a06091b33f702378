package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// MineSite loads one truck at a time.
// Its queue never holds more than one truck: TryEnqueue refuses while occupied.
type MineSite struct {
	ID int

	queue    TruckQueue
	duration MiningDurationPolicy

	// LoadsCompleted counts trucks released after finishing a load.
	LoadsCompleted int
}

// NewMineSite creates an empty mine whose load times come from duration.
func NewMineSite(id int, duration MiningDurationPolicy) *MineSite {
	if duration == nil {
		panic("NewMineSite: duration policy must not be nil")
	}
	return &MineSite{ID: id, duration: duration}
}

// QueueLen returns the number of trucks at the mine (0 or 1).
func (m *MineSite) QueueLen() int {
	return m.queue.Len()
}

// Occupant returns the truck being loaded, or nil.
func (m *MineSite) Occupant() *Truck {
	return m.queue.Peek()
}

// TryEnqueue admits t if the slot is free, switching it to Mining with a fresh
// load duration. Returns false without touching t when the slot is taken.
func (m *MineSite) TryEnqueue(t *Truck) bool {
	if m.queue.Len() > 0 {
		return false
	}
	m.queue.Enqueue(t)
	t.Activity = Mining
	t.Timer = m.duration.Duration(m.ID)
	logrus.Debugf("truck %d is now mining at mine %d for %d minutes", t.ID, m.ID, t.Timer)
	return true
}

// ManageQueue releases the occupant once its load timer has run out.
// The released truck's own Advance moves it on to TravelToUnload.
func (m *MineSite) ManageQueue() {
	head := m.queue.Peek()
	if head == nil || head.Timer != 0 {
		return
	}
	m.queue.Dequeue()
	m.LoadsCompleted++
	logrus.Debugf("truck %d has completed mining at mine %d", head.ID, m.ID)
}

func (m *MineSite) String() string {
	return fmt.Sprintf("MineSite %d %s", m.ID, m.queue.String())
}
