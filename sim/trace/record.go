// Package trace provides decision-trace recording for fleet assignment analysis.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// TargetKind names the kind of resource a truck was assigned to.
type TargetKind string

const (
	TargetMine    TargetKind = "mine"
	TargetStation TargetKind = "station"
)

// CandidateLoad captures one mine or station as the coordinator saw it when deciding.
type CandidateLoad struct {
	ID   int `json:"id" yaml:"id"`
	Load int `json:"load" yaml:"load"`
}

// AssignmentRecord captures a single assignment decision for one truck.
type AssignmentRecord struct {
	Clock      int             `json:"clock" yaml:"clock"` // simulated minutes at the start of the tick
	TruckID    int             `json:"truck_id" yaml:"truck_id"`
	Kind       TargetKind      `json:"kind" yaml:"kind"`
	TargetID   int             `json:"target_id" yaml:"target_id"`
	Accepted   bool            `json:"accepted" yaml:"accepted"` // false when the mine slot was taken
	Reason     string          `json:"reason" yaml:"reason"`
	Candidates []CandidateLoad `json:"candidates,omitempty" yaml:"candidates,omitempty"`
}

// CompletionRecord captures a truck leaving a mine or station after finishing its work there.
type CompletionRecord struct {
	Clock    int        `json:"clock" yaml:"clock"`
	TruckID  int        `json:"truck_id" yaml:"truck_id"`
	Kind     TargetKind `json:"kind" yaml:"kind"`
	TargetID int        `json:"target_id" yaml:"target_id"`
}
