package trace

// TraceLevel controls the verbosity of decision tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures every mine and station assignment decision.
	TraceLevelDecisions TraceLevel = "decisions"
	// TraceLevelFull additionally captures completed loads and unloads.
	TraceLevelFull TraceLevel = "full"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	TraceLevelFull:      true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
	// KeepCandidates stores the full candidate list on every assignment record.
	KeepCandidates bool
}

// SimulationTrace collects decision records during a simulation.
type SimulationTrace struct {
	Config      TraceConfig
	Assignments []AssignmentRecord
	Completions []CompletionRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:      config,
		Assignments: make([]AssignmentRecord, 0),
		Completions: make([]CompletionRecord, 0),
	}
}

// Enabled reports whether st records anything. Safe on a nil trace.
func (st *SimulationTrace) Enabled() bool {
	return st != nil && st.Config.Level != TraceLevelNone && st.Config.Level != ""
}

// RecordAssignment appends an assignment decision record.
func (st *SimulationTrace) RecordAssignment(record AssignmentRecord) {
	if !st.Config.KeepCandidates {
		record.Candidates = nil
	}
	st.Assignments = append(st.Assignments, record)
}

// RecordCompletion appends a completion record when the level is full.
func (st *SimulationTrace) RecordCompletion(record CompletionRecord) {
	if st.Config.Level != TraceLevelFull {
		return
	}
	st.Completions = append(st.Completions, record)
}
