package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalDecisions      int         `json:"total_decisions" yaml:"total_decisions"`
	MineAssignments     int         `json:"mine_assignments" yaml:"mine_assignments"`
	StationAssignments  int         `json:"station_assignments" yaml:"station_assignments"`
	RejectedCount       int         `json:"rejected" yaml:"rejected"` // mine slot already taken
	RejectionRate       float64     `json:"rejection_rate" yaml:"rejection_rate"`
	MineDistribution    map[int]int `json:"mine_distribution" yaml:"mine_distribution"`       // mine ID → accepted loads
	StationDistribution map[int]int `json:"station_distribution" yaml:"station_distribution"` // station ID → arrivals
	Completions         int         `json:"completions" yaml:"completions"`
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		MineDistribution:    make(map[int]int),
		StationDistribution: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalDecisions = len(st.Assignments)
	for _, a := range st.Assignments {
		switch a.Kind {
		case TargetMine:
			summary.MineAssignments++
			if a.Accepted {
				summary.MineDistribution[a.TargetID]++
			} else {
				summary.RejectedCount++
			}
		case TargetStation:
			summary.StationAssignments++
			summary.StationDistribution[a.TargetID]++
		}
	}
	if summary.TotalDecisions > 0 {
		summary.RejectionRate = float64(summary.RejectedCount) / float64(summary.TotalDecisions)
	}
	summary.Completions = len(st.Completions)

	return summary
}
