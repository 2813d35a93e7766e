// Tracks experiment-wide win counters and the final report.

package sim

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

// Aggregate holds the win counters of an experiment.
type Aggregate struct {
	Trials     int64 // trials played
	StayWins   int64 // trials won by keeping the initial pick
	SwitchWins int64 // trials won by switching
}

// Record counts one trial outcome.
func (a *Aggregate) Record(o TrialOutcome) {
	a.Trials++
	if o.StayWins {
		a.StayWins++
	}
	if o.SwitchWins {
		a.SwitchWins++
	}
}

// Merge adds other's counters into a.
func (a *Aggregate) Merge(other Aggregate) {
	a.Trials += other.Trials
	a.StayWins += other.StayWins
	a.SwitchWins += other.SwitchWins
}

// Result is the final report of one experiment.
type Result struct {
	Config    Config
	Run       RunConfig
	Aggregate Aggregate
	Elapsed   time.Duration
}

// StayRate returns the stay win rate in percent.
func (r *Result) StayRate() float64 {
	return WinRate(r.Aggregate.StayWins, int64(r.Config.NumSimulations))
}

// SwitchRate returns the switch win rate in percent.
func (r *Result) SwitchRate() float64 {
	return WinRate(r.Aggregate.SwitchWins, int64(r.Config.NumSimulations))
}

// Print writes the two scenario lines.
func (r *Result) Print(w io.Writer) error {
	s := r.Config.NumSimulations
	if _, err := fmt.Fprintf(w, "Scenario 1: %d/%d = %s%% wins if player sticks to the initial choice.\n",
		r.Aggregate.StayWins, s, FormatPercent(r.StayRate())); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Scenario 2: %d/%d = %s%% wins if player switches the initial choice.\n",
		r.Aggregate.SwitchWins, s, FormatPercent(r.SwitchRate()))
	return err
}

// LogSummary reports theoretical rates and confidence intervals at info level.
func (r *Result) LogSummary(level float64) {
	theory := Theoretical(r.Config)
	stayLo, stayHi := WilsonInterval(r.Aggregate.StayWins, int64(r.Config.NumSimulations), level)
	switchLo, switchHi := WilsonInterval(r.Aggregate.SwitchWins, int64(r.Config.NumSimulations), level)
	logrus.Infof("stay: %.3f%% (theory %.3f%%, %.0f%% CI [%.3f, %.3f])",
		r.StayRate(), theory.Stay, level*100, stayLo, stayHi)
	logrus.Infof("switch: %.3f%% (theory %.3f%%, %.0f%% CI [%.3f, %.3f])",
		r.SwitchRate(), theory.Switch, level*100, switchLo, switchHi)
	logrus.Infof("elapsed: %v", r.Elapsed)
}

// ResultsOutput is the JSON shape written by SaveResults.
type ResultsOutput struct {
	NumDoors             int     `json:"num_doors"`
	NumDoorsOpenedByHost int     `json:"num_doors_opened_by_host"`
	NumSimulations       int     `json:"num_simulations"`
	Seed                 int64   `json:"seed"`
	Workers              int     `json:"workers"`
	Trial                string  `json:"trial"`
	StayWins             int64   `json:"stay_wins"`
	SwitchWins           int64   `json:"switch_wins"`
	StayRatePct          float64 `json:"stay_rate_pct"`
	SwitchRatePct        float64 `json:"switch_rate_pct"`
	TheoryStayPct        float64 `json:"theory_stay_pct"`
	TheorySwitchPct      float64 `json:"theory_switch_pct"`
	ElapsedMs            float64 `json:"elapsed_ms"`
}

// Output converts the result to its JSON shape.
func (r *Result) Output() ResultsOutput {
	theory := Theoretical(r.Config)
	trial := r.Run.Trial
	if trial == "" {
		trial = TrialIndex
	}
	return ResultsOutput{
		NumDoors:             r.Config.NumDoors,
		NumDoorsOpenedByHost: r.Config.NumDoorsOpenedByHost,
		NumSimulations:       r.Config.NumSimulations,
		Seed:                 r.Run.Seed,
		Workers:              max(r.Run.Workers, 1),
		Trial:                trial,
		StayWins:             r.Aggregate.StayWins,
		SwitchWins:           r.Aggregate.SwitchWins,
		StayRatePct:          RoundTo(r.StayRate(), 3),
		SwitchRatePct:        RoundTo(r.SwitchRate(), 3),
		TheoryStayPct:        RoundTo(theory.Stay, 3),
		TheorySwitchPct:      RoundTo(theory.Switch, 3),
		ElapsedMs:            float64(r.Elapsed.Microseconds()) / 1000,
	}
}

// SaveResults writes the result as indented JSON to path.
func (r *Result) SaveResults(path string) error {
	data, err := json.MarshalIndent(r.Output(), "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing results to %s: %w", path, err)
	}
	logrus.Infof("Results written to %s", path)
	return nil
}
