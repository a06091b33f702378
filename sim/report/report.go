// Package report turns a finished simulation Result into output: a human-readable
// table, JSON or YAML documents, a Prometheus textfile, or rows in a run archive.
//
// Sinks never touch a live Coordinator; they only see the immutable Report.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/jimmympnguyen/vast-mining-simulator/sim"
)

// Format selects how Write renders a Report.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// validFormats maps accepted format strings.
var validFormats = map[Format]bool{
	FormatText: true,
	FormatJSON: true,
	FormatYAML: true,
	"":         true, // empty defaults to text
}

// IsValidFormat returns true if the given string names a report format.
func IsValidFormat(format string) bool {
	return validFormats[Format(format)]
}

// Report is one finished run: its identity, the configuration it ran with and its statistics.
type Report struct {
	RunID     string               `json:"run_id" yaml:"run_id"`
	CreatedAt time.Time            `json:"created_at" yaml:"created_at"`
	Config    sim.SimulationConfig `json:"config" yaml:"config"`
	Result    *sim.Result          `json:"result" yaml:"result"`
}

// Build stamps res with a fresh run id.
func Build(config sim.SimulationConfig, res *sim.Result) *Report {
	return &Report{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Config:    config,
		Result:    res,
	}
}

// Write renders r to w in the requested format.
func Write(w io.Writer, r *Report, format Format) error {
	switch format {
	case FormatText, "":
		return WriteText(w, r)
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatYAML:
		return WriteYAML(w, r)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteJSON writes r as an indented JSON document.
func WriteJSON(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding json report: %w", err)
	}
	return nil
}

// WriteYAML writes r as a YAML document.
func WriteYAML(w io.Writer, r *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding yaml report: %w", err)
	}
	return enc.Close()
}

// WriteText writes the run summary followed by per-truck, per-station and per-mine tables.
func WriteText(w io.Writer, r *Report) error {
	res := r.Result
	s := res.Summary
	fmt.Fprintln(w, "=== Simulation Results ===")
	fmt.Fprintf(w, "Run ID               : %s\n", r.RunID)
	fmt.Fprintf(w, "Seed                 : %d\n", r.Config.Seed)
	fmt.Fprintf(w, "Fleet                : %d trucks, %d mines, %d stations\n", s.Trucks, s.Mines, s.Stations)
	fmt.Fprintf(w, "Ticks Executed       : %d\n", s.Ticks)
	fmt.Fprintf(w, "Elapsed Time         : %d min (%.1f h)\n", s.ElapsedMinutes, float64(s.ElapsedMinutes)/60)
	fmt.Fprintf(w, "Units Deposited      : %d\n", s.UnitsDeposited)
	if s.Trucks > 0 {
		fmt.Fprintf(w, "Units per Truck      : %.2f\n", float64(s.UnitsDeposited)/float64(s.Trucks))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nTRUCK\tUNITS\tMINING\tTRAVELING\tUNLOADING\tWAITING\tIDLE")
	fmt.Fprintln(tw, "-----\t-----\t------\t---------\t---------\t-------\t----")
	for _, t := range res.Trucks {
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			t.ID, t.UnitsMined, t.MiningMinutes, t.TravelingMinutes, t.UnloadingMinutes, t.WaitingMinutes, t.IdleMinutes)
	}

	fmt.Fprintln(tw, "\nSTATION\tUNITS\tTOTAL WAIT")
	fmt.Fprintln(tw, "-------\t-----\t----------")
	for _, st := range res.Stations {
		fmt.Fprintf(tw, "%d\t%d\t%d\n", st.ID, st.UnitsDeposited, st.TotalWaitMinutes)
	}

	fmt.Fprintln(tw, "\nMINE\tLOADS")
	fmt.Fprintln(tw, "----\t-----")
	for _, m := range res.Mines {
		fmt.Fprintf(tw, "%d\t%d\n", m.ID, m.LoadsCompleted)
	}

	if tr := res.Trace; tr != nil {
		fmt.Fprintln(tw, "\n=== Decision Trace ===")
		fmt.Fprintf(tw, "Decisions\t%d\n", tr.TotalDecisions)
		fmt.Fprintf(tw, "Mine Assignments\t%d\n", tr.MineAssignments)
		fmt.Fprintf(tw, "Station Assignments\t%d\n", tr.StationAssignments)
		fmt.Fprintf(tw, "Rejected\t%d (%.1f%%)\n", tr.RejectedCount, tr.RejectionRate*100)
		fmt.Fprintf(tw, "Completions\t%d\n", tr.Completions)
	}
	return tw.Flush()
}
