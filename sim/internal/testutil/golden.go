// Package testutil provides shared test infrastructure for the mining simulator.
// It holds the golden dataset types and assertion helpers used by sim/ tests.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase represents a single deterministic run from the golden dataset.
// Mining durations are fixed so results do not depend on the random stream.
type GoldenTestCase struct {
	Name          string `json:"name"`
	Trucks        int    `json:"trucks"`
	Mines         int    `json:"mines"`
	Stations      int    `json:"stations"`
	StepMinutes   int    `json:"step_minutes"`
	TravelMinutes int    `json:"travel_minutes"`
	UnloadMinutes int    `json:"unload_minutes"`
	MiningMinutes int    `json:"mining_minutes"`
	DurationHours int    `json:"duration_hours"`
	Seed          int64  `json:"seed"`

	Metrics GoldenMetrics `json:"metrics"`
}

// GoldenMetrics represents the expected statistics of a golden test case.
type GoldenMetrics struct {
	// Exact match metrics (integers)
	Ticks              int `json:"ticks"`
	UnitsDeposited     int `json:"units_deposited"`
	StationWaitMinutes int `json:"station_wait_minutes"`
	LoadsCompleted     int `json:"loads_completed"`

	// Derived
	UnitsPerTruck float64 `json:"units_per_truck"`

	Trucks []GoldenTruck `json:"trucks"`
}

// GoldenTruck is one truck's expected counters, in statistics order.
type GoldenTruck struct {
	ID               int `json:"id"`
	UnitsMined       int `json:"units_mined"`
	MiningMinutes    int `json:"mining_minutes"`
	TravelingMinutes int `json:"traveling_minutes"`
	UnloadingMinutes int `json:"unloading_minutes"`
	WaitingMinutes   int `json:"waiting_minutes"`
	IdleMinutes      int `json:"idle_minutes"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
