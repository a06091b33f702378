// Implements the TruckQueue, the FIFO line of trucks held by a mine or station.
// Trucks are appended on admission and popped from the head when done.

package sim

import (
	"fmt"
	"strings"
)

// TruckQueue represents a FIFO queue of trucks at a mine site or unload station.
// The queue holds references only; the coordinator owns the trucks.
type TruckQueue struct {
	queue []*Truck
}

// Enqueue adds a truck to the back of the queue.
func (tq *TruckQueue) Enqueue(t *Truck) {
	if t == nil {
		panic("Enqueue: truck must not be nil")
	}
	tq.queue = append(tq.queue, t)
}

func (tq *TruckQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, t := range tq.queue {
		sb.WriteString(fmt.Sprintf("%d:%s", t.ID, t.Activity))
		if i < len(tq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of trucks in the queue.
func (tq *TruckQueue) Len() int {
	return len(tq.queue)
}

// Peek returns the truck at the head without removing it, or nil when empty.
func (tq *TruckQueue) Peek() *Truck {
	if len(tq.queue) == 0 {
		return nil
	}
	return tq.queue[0]
}

// Dequeue removes and returns the head truck, or nil when empty.
func (tq *TruckQueue) Dequeue() *Truck {
	if len(tq.queue) == 0 {
		return nil
	}
	head := tq.queue[0]
	tq.queue[0] = nil
	tq.queue = tq.queue[1:]
	return head
}

// Items returns the queue contents, head first.
// The returned slice is the queue's internal storage: callers MUST NOT modify it.
func (tq *TruckQueue) Items() []*Truck {
	return tq.queue
}

// SumTimers folds the remaining timers of every queued truck.
func (tq *TruckQueue) SumTimers() int {
	total := 0
	for _, t := range tq.queue {
		total += t.Timer
	}
	return total
}
