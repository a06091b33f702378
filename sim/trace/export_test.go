package trace

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTrace() *SimulationTrace {
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelFull, KeepCandidates: true})
	st.RecordAssignment(AssignmentRecord{
		Clock: 0, TruckID: 0, Kind: TargetMine, TargetID: 0, Accepted: true,
		Reason: "least-loaded mine (load=0)", Candidates: []CandidateLoad{{ID: 0, Load: 0}},
	})
	st.RecordAssignment(AssignmentRecord{Clock: 0, TruckID: 1, Kind: TargetMine, TargetID: 0, Accepted: false})
	st.RecordCompletion(CompletionRecord{Clock: 60, TruckID: 0, Kind: TargetMine, TargetID: 0})
	return st
}

func TestEncode_OneLinePerRecord(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, sampleTrace()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], `"type":"assignment"`)
	assert.Contains(t, lines[2], `"type":"completion"`)
}

func TestEncode_NilTrace_WritesNothing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestWriteJSONL_RoundTripsPlainAndCompressed(t *testing.T) {
	for _, name := range []string{"trace.jsonl", "trace.jsonl.zst"} {
		t.Run(name, func(t *testing.T) {
			// GIVEN a populated trace
			want := sampleTrace()
			path := filepath.Join(t.TempDir(), name)

			// WHEN it is written and read back
			require.NoError(t, WriteJSONL(path, want))
			got, err := ReadJSONL(path)

			// THEN the records survive unchanged
			require.NoError(t, err)
			assert.Equal(t, want.Assignments, got.Assignments)
			assert.Equal(t, want.Completions, got.Completions)
		})
	}
}
