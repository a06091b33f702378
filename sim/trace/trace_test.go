package trace

import (
	"testing"
)

func TestSimulationTrace_RecordAssignment_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for decisions
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN an assignment record is recorded
	st.RecordAssignment(AssignmentRecord{
		Clock:    10,
		TruckID:  3,
		Kind:     TargetMine,
		TargetID: 1,
		Accepted: true,
		Reason:   "least-loaded mine (load=0)",
	})

	// THEN the trace contains one assignment record with correct data
	if len(st.Assignments) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(st.Assignments))
	}
	if st.Assignments[0].TruckID != 3 {
		t.Errorf("expected truck 3, got %d", st.Assignments[0].TruckID)
	}
	if !st.Assignments[0].Accepted {
		t.Error("expected accepted=true")
	}
}

func TestSimulationTrace_RecordAssignment_DropsCandidatesUnlessKept(t *testing.T) {
	candidates := []CandidateLoad{{ID: 0, Load: 1}, {ID: 1, Load: 0}}

	// GIVEN one trace that keeps candidates and one that does not
	lean := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	full := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions, KeepCandidates: true})

	// WHEN the same record is stored in both
	rec := AssignmentRecord{TruckID: 0, Kind: TargetMine, TargetID: 1, Candidates: candidates}
	lean.RecordAssignment(rec)
	full.RecordAssignment(rec)

	// THEN only the full trace retains them
	if lean.Assignments[0].Candidates != nil {
		t.Errorf("expected candidates dropped, got %v", lean.Assignments[0].Candidates)
	}
	if len(full.Assignments[0].Candidates) != 2 {
		t.Errorf("expected 2 candidates, got %d", len(full.Assignments[0].Candidates))
	}
}

func TestSimulationTrace_RecordCompletion_OnlyAtFullLevel(t *testing.T) {
	// GIVEN a decisions trace and a full trace
	decisions := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})
	full := NewSimulationTrace(TraceConfig{Level: TraceLevelFull})

	// WHEN a completion is recorded on both
	rec := CompletionRecord{Clock: 60, TruckID: 2, Kind: TargetStation, TargetID: 0}
	decisions.RecordCompletion(rec)
	full.RecordCompletion(rec)

	// THEN only the full trace stores it
	if len(decisions.Completions) != 0 {
		t.Errorf("decisions level stored %d completions, want 0", len(decisions.Completions))
	}
	if len(full.Completions) != 1 {
		t.Errorf("full level stored %d completions, want 1", len(full.Completions))
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions})

	// WHEN multiple records are added
	st.RecordAssignment(AssignmentRecord{Clock: 0, TruckID: 0, Kind: TargetMine, Accepted: true})
	st.RecordAssignment(AssignmentRecord{Clock: 0, TruckID: 1, Kind: TargetMine, Accepted: false})
	st.RecordAssignment(AssignmentRecord{Clock: 5, TruckID: 1, Kind: TargetMine, Accepted: true})

	// THEN records are in insertion order
	if len(st.Assignments) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(st.Assignments))
	}
	if st.Assignments[1].Accepted || st.Assignments[2].Clock != 5 {
		t.Errorf("unexpected order: %+v", st.Assignments)
	}
}

func TestSimulationTrace_Enabled(t *testing.T) {
	var nilTrace *SimulationTrace
	if nilTrace.Enabled() {
		t.Error("nil trace must not be enabled")
	}
	if NewSimulationTrace(TraceConfig{Level: TraceLevelNone}).Enabled() {
		t.Error("none level must not be enabled")
	}
	if !NewSimulationTrace(TraceConfig{Level: TraceLevelDecisions}).Enabled() {
		t.Error("decisions level must be enabled")
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"", true},
		{"none", true},
		{"decisions", true},
		{"full", true},
		{"verbose", false},
		{"DECISIONS", false},
	}
	for _, tt := range tests {
		if got := IsValidTraceLevel(tt.level); got != tt.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tt.level, got, tt.valid)
		}
	}
}
