package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnloadStation_Enqueue_EmptyStationUnloads(t *testing.T) {
	// GIVEN an empty station with 20-minute unloads
	station := NewUnloadStation(0, 20, 5)
	truck := NewTruck(0, 30)

	// WHEN a truck arrives
	station.Enqueue(truck)

	// THEN it unloads immediately
	assert.Equal(t, Unloading, truck.Activity)
	assert.Equal(t, 20, truck.Timer)
	assert.Equal(t, 20, station.CurrentWaitTime)
}

func TestUnloadStation_Enqueue_BusyStationQueues(t *testing.T) {
	// GIVEN a station already unloading one truck
	station := NewUnloadStation(0, 20, 5)
	first := NewTruck(0, 30)
	station.Enqueue(first)

	// WHEN a second truck arrives
	second := NewTruck(1, 30)
	station.Enqueue(second)

	// THEN it waits with the full unload duration and the wait heuristic sums both
	assert.Equal(t, Waiting, second.Activity)
	assert.Equal(t, 20, second.Timer)
	assert.Equal(t, 40, station.CurrentWaitTime)
	assert.Equal(t, []*Truck{first, second}, station.Queue())
}

func TestUnloadStation_ManageQueue_ReleasesAndPromotes(t *testing.T) {
	// GIVEN a station with a finished head and one waiter
	station := NewUnloadStation(0, 20, 5)
	first := NewTruck(0, 30)
	second := NewTruck(1, 30)
	station.Enqueue(first)
	station.Enqueue(second)
	first.Timer = 0

	// WHEN the station manages its queue
	station.ManageQueue()

	// THEN the head deposits, the waiter is promoted and one step of waiting is charged
	assert.Equal(t, 1, first.UnitsMined)
	assert.Equal(t, 1, station.UnitsDeposited)
	assert.Equal(t, Unloading, second.Activity)
	assert.Equal(t, 20, second.Timer)
	assert.Equal(t, 5, station.TotalWaitTime)
	assert.Equal(t, 20, station.CurrentWaitTime)
	require.Equal(t, 1, station.QueueLen())
	assert.Same(t, second, station.Queue()[0])
}

func TestUnloadStation_ManageQueue_WaitAccounting(t *testing.T) {
	// GIVEN two trucks queued
	station := NewUnloadStation(0, 20, 5)
	first := NewTruck(0, 30)
	station.Enqueue(first)
	station.Enqueue(NewTruck(1, 30))

	// WHEN the head is still unloading
	station.ManageQueue()
	// THEN the waiter is charged one step
	assert.Equal(t, 5, station.TotalWaitTime)

	// WHEN the head finishes
	first.Timer = 0
	station.ManageQueue()
	// THEN the waiter is charged before the head leaves
	assert.Equal(t, 10, station.TotalWaitTime)

	// WHEN only one truck remains
	station.ManageQueue()
	// THEN nothing more is charged
	assert.Equal(t, 10, station.TotalWaitTime)
}

func TestUnloadStation_ManageQueue_EmptyIsNoop(t *testing.T) {
	station := NewUnloadStation(0, 20, 5)
	station.ManageQueue()

	assert.Equal(t, 0, station.TotalWaitTime)
	assert.Equal(t, 0, station.UnitsDeposited)
	assert.Equal(t, 0, station.CurrentWaitTime)
}

func TestUnloadStation_OnlyHeadUnloads(t *testing.T) {
	// GIVEN four trucks arriving at one station
	station := NewUnloadStation(0, 20, 5)
	trucks := make([]*Truck, 4)
	for i := range trucks {
		trucks[i] = NewTruck(i, 30)
		station.Enqueue(trucks[i])
	}

	// WHEN trucks advance and the station manages its queue for many steps
	for step := 0; step < 40; step++ {
		station.ManageQueue()
		for _, tr := range station.Queue() {
			tr.Advance(5)
		}

		// THEN at most the head is unloading and everyone else waits
		for i, tr := range station.Queue() {
			if i == 0 {
				assert.Contains(t, []Activity{Unloading, Waiting}, tr.Activity)
			} else {
				assert.Equal(t, Waiting, tr.Activity, "step %d position %d", step, i)
			}
		}
	}

	// AND every truck got through in arrival order
	assert.Equal(t, 4, station.UnitsDeposited)
	for _, tr := range trucks {
		assert.Equal(t, 1, tr.UnitsMined)
	}
}

func TestUnloadStation_String(t *testing.T) {
	station := NewUnloadStation(1, 20, 5)
	station.Enqueue(NewTruck(0, 30))
	assert.Equal(t, "UnloadStation 1 [0:unloading] (wait=20)", station.String())
}
