// Package sim provides the time-stepped simulation engine for a mining haul fleet.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - truck.go: Truck lifecycle (travel → mining → travel → waiting/unloading) and state machine
//   - station.go, mine.go: the two kinds of resource a truck queues at
//   - coordinator.go: the five-phase tick that moves every actor forward together
//
// # Architecture
//
// The sim package owns all simulation state; supporting packages hold pure data:
//   - sim/trace/: assignment decision recording and JSONL export
//   - sim/report/: sinks that format, archive or export a finished run's Result
//
// Configuration loading and the CLI live in cmd/. The engine consumes a validated
// SimulationConfig and never reads files, the environment, or writes output itself
// beyond debug logging.
//
// # Key Interfaces
//
//   - MiningDurationPolicy: how long a truck loads at a mine (uniform seeded, or fixed)
//   - SelectLeastLoaded: the single selection rule for mines and stations
package sim
