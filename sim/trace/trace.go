package trace

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TraceLevel controls the verbosity of trial tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTrials captures every trial outcome.
	TraceLevelTrials TraceLevel = "trials"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelTrials: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
	Limit int // max records kept; 0 keeps all. Summaries still count every trial.
}

// Enabled reports whether the config asks for any recording.
func (c TraceConfig) Enabled() bool {
	return c.Level != "" && c.Level != TraceLevelNone
}

// SimulationTrace collects trial records during an experiment.
type SimulationTrace struct {
	Config TraceConfig   `yaml:"-"`
	Trials []TrialRecord `yaml:"trials"`
	counts TraceSummary
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config: config,
		Trials: make([]TrialRecord, 0),
	}
}

// RecordTrial appends a trial record. Once Limit records are stored, further
// trials only update the running counts.
func (st *SimulationTrace) RecordTrial(record TrialRecord) {
	st.counts.add(record)
	if st.Config.Limit > 0 && len(st.Trials) >= st.Config.Limit {
		return
	}
	st.Trials = append(st.Trials, record)
}

// WriteYAML dumps the stored records to path.
func (st *SimulationTrace) WriteYAML(path string) error {
	data, err := yaml.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding trace: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing trace to %s: %w", path, err)
	}
	return nil
}
