package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// exportLine is one JSONL row. Exactly one of Assignment/Completion is set.
type exportLine struct {
	Type       string            `json:"type"`
	Assignment *AssignmentRecord `json:"assignment,omitempty"`
	Completion *CompletionRecord `json:"completion,omitempty"`
}

// WriteJSONL writes every record of st to path, one JSON object per line,
// assignments first. Paths ending in ".zst" are zstd-compressed.
func WriteJSONL(path string, st *SimulationTrace) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating trace file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing trace file: %w", closeErr)
		}
	}()

	var out io.Writer = f
	if strings.HasSuffix(path, ".zst") {
		enc, encErr := zstd.NewWriter(f)
		if encErr != nil {
			return fmt.Errorf("creating zstd encoder: %w", encErr)
		}
		defer func() {
			if closeErr := enc.Close(); closeErr != nil && err == nil {
				err = fmt.Errorf("closing zstd encoder: %w", closeErr)
			}
		}()
		out = enc
	}
	return Encode(out, st)
}

// Encode writes st as JSONL to w.
func Encode(w io.Writer, st *SimulationTrace) error {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	if st != nil {
		for i := range st.Assignments {
			if err := enc.Encode(exportLine{Type: "assignment", Assignment: &st.Assignments[i]}); err != nil {
				return fmt.Errorf("encoding assignment %d: %w", i, err)
			}
		}
		for i := range st.Completions {
			if err := enc.Encode(exportLine{Type: "completion", Completion: &st.Completions[i]}); err != nil {
				return fmt.Errorf("encoding completion %d: %w", i, err)
			}
		}
	}
	return bw.Flush()
}

// ReadJSONL loads a trace written by WriteJSONL, decompressing ".zst" paths.
func ReadJSONL(path string) (*SimulationTrace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening trace file: %w", err)
	}
	defer f.Close()

	var in io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("creating zstd decoder: %w", err)
		}
		defer dec.Close()
		in = dec
	}

	st := NewSimulationTrace(TraceConfig{Level: TraceLevelFull, KeepCandidates: true})
	dec := json.NewDecoder(in)
	for {
		var line exportLine
		if err := dec.Decode(&line); err == io.EOF {
			break
		} else if err != nil {
			return nil, fmt.Errorf("decoding trace: %w", err)
		}
		switch {
		case line.Assignment != nil:
			st.Assignments = append(st.Assignments, *line.Assignment)
		case line.Completion != nil:
			st.Completions = append(st.Completions, *line.Completion)
		default:
			return nil, fmt.Errorf("decoding trace: unknown line type %q", line.Type)
		}
	}
	return st, nil
}
