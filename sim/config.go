package sim

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is the sentinel matched by every configuration
// validation failure. Use errors.Is to test for it.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// InvalidConfigurationError names the violated constraint.
type InvalidConfigurationError struct {
	Field      string // flag-style field name, e.g. "num_doors"
	Constraint string // human-readable constraint, e.g. "num_doors >= 3"
	Value      int
	Message    string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s (got %s=%d)", ErrInvalidConfiguration, e.Message, e.Field, e.Value)
}

// Unwrap lets errors.Is match ErrInvalidConfiguration.
func (e *InvalidConfigurationError) Unwrap() error {
	return ErrInvalidConfiguration
}

// Config groups the experiment parameters. It is built once by the caller
// and passed by value; the simulator never mutates it.
type Config struct {
	NumDoors             int // N, total doors (>= 3)
	NumDoorsOpenedByHost int // K, doors the host opens (0 <= K <= N-2)
	NumSimulations       int // S, number of trials (> 0)
}

// DefaultConfig returns the classic three-door game.
func DefaultConfig() Config {
	return Config{NumDoors: 3, NumDoorsOpenedByHost: 1, NumSimulations: 10000}
}

// Validate checks the configuration constraints in order: door count,
// host-opened count, simulation count. The first violation is returned.
func (c Config) Validate() error {
	if c.NumDoors < 3 {
		return &InvalidConfigurationError{
			Field:      "num_doors",
			Constraint: "num_doors >= 3",
			Value:      c.NumDoors,
			Message:    "there must be a minimum of 3 doors to play the Monty Hall game",
		}
	}
	if c.NumDoorsOpenedByHost < 0 || c.NumDoorsOpenedByHost > c.NumDoors-2 {
		return &InvalidConfigurationError{
			Field:      "num_doors_opened_by_host",
			Constraint: "0 <= num_doors_opened_by_host <= num_doors-2",
			Value:      c.NumDoorsOpenedByHost,
			Message:    fmt.Sprintf("number of doors opened by host must be between 0 and %d (num_doors - 2)", c.NumDoors-2),
		}
	}
	if c.NumSimulations <= 0 {
		return &InvalidConfigurationError{
			Field:      "num_simulations",
			Constraint: "num_simulations > 0",
			Value:      c.NumSimulations,
			Message:    "the number of simulations must be positive",
		}
	}
	return nil
}

// SwitchCandidates returns N-K-1, the number of unopened doors a switching
// player can move to.
func (c Config) SwitchCandidates() int {
	return c.NumDoors - c.NumDoorsOpenedByHost - 1
}

// RunConfig carries the knobs that shape how an experiment executes but not
// what it measures.
type RunConfig struct {
	Seed    int64  // master seed for all random streams
	Workers int    // parallel workers (<= 1 means sequential)
	Trial   string // trial generator name, see NewTrialGenerator
}
