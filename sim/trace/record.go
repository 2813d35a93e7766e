// Package trace provides per-trial recording for inspecting experiment runs.
// This package has no dependencies on sim/ — it stores pure data types.
package trace

// TrialRecord captures the outcome of a single trial.
type TrialRecord struct {
	Trial      int64 `yaml:"trial"`
	StayWins   bool  `yaml:"stay_wins"`
	SwitchWins bool  `yaml:"switch_wins"`
}
