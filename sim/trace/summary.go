package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTrials int64
	StayWins    int64
	SwitchWins  int64
	Neither     int64 // trials lost by both strategies
	Both        int64 // trials won by both strategies; always 0 for a sound generator
}

func (s *TraceSummary) add(r TrialRecord) {
	s.TotalTrials++
	if r.StayWins {
		s.StayWins++
	}
	if r.SwitchWins {
		s.SwitchWins++
	}
	switch {
	case r.StayWins && r.SwitchWins:
		s.Both++
	case !r.StayWins && !r.SwitchWins:
		s.Neither++
	}
}

// Summarize computes aggregate statistics from a SimulationTrace, counting
// every recorded trial including those past the record limit.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}
	*summary = st.counts
	return summary
}
