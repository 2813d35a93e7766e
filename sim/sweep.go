package sim

import (
	"context"
	"fmt"
)

// SweepAllHostOpens sweeps every valid host-open count for each door count.
const SweepAllHostOpens = -1

// SweepConfig describes a grid of experiments over door counts.
type SweepConfig struct {
	MaxDoors       int // largest N; the grid starts at 3
	HostOpens      int // fixed K, or SweepAllHostOpens for every K in [0, N-2]
	NumSimulations int // trials per cell
}

// Cells returns the (N, K) configurations of the grid in row-major order.
func (c SweepConfig) Cells() ([]Config, error) {
	if c.MaxDoors < 3 {
		return nil, &InvalidConfigurationError{
			Field:      "max_doors",
			Constraint: "max_doors >= 3",
			Value:      c.MaxDoors,
			Message:    "a sweep needs at least 3 doors",
		}
	}
	if c.HostOpens < SweepAllHostOpens {
		return nil, &InvalidConfigurationError{
			Field:      "num_doors_opened_by_host",
			Constraint: "num_doors_opened_by_host >= -1",
			Value:      c.HostOpens,
			Message:    "use -1 to sweep every host-open count",
		}
	}
	var cells []Config
	for n := 3; n <= c.MaxDoors; n++ {
		if c.HostOpens != SweepAllHostOpens {
			if c.HostOpens > n-2 {
				continue
			}
			cells = append(cells, Config{NumDoors: n, NumDoorsOpenedByHost: c.HostOpens, NumSimulations: c.NumSimulations})
			continue
		}
		for k := 0; k <= n-2; k++ {
			cells = append(cells, Config{NumDoors: n, NumDoorsOpenedByHost: k, NumSimulations: c.NumSimulations})
		}
	}
	if len(cells) == 0 {
		return nil, &InvalidConfigurationError{
			Field:      "num_doors_opened_by_host",
			Constraint: "num_doors_opened_by_host <= max_doors-2",
			Value:      c.HostOpens,
			Message:    fmt.Sprintf("no door count up to %d allows the host to open %d doors", c.MaxDoors, c.HostOpens),
		}
	}
	for _, cell := range cells {
		if err := cell.Validate(); err != nil {
			return nil, err
		}
	}
	return cells, nil
}

// Sweep runs every cell of cfg. Each cell gets its own seed derived from
// run.Seed, so adding or removing cells never changes another cell's counts.
func Sweep(ctx context.Context, cfg SweepConfig, run RunConfig) ([]*Result, error) {
	cells, err := cfg.Cells()
	if err != nil {
		return nil, err
	}
	seeds := NewPartitionedRNG(NewSimulationKey(run.Seed))
	results := make([]*Result, 0, len(cells))
	for _, cell := range cells {
		cellRun := run
		cellRun.Seed = seeds.DeriveSeed(SubsystemSweepCell(cell.NumDoors, cell.NumDoorsOpenedByHost))
		s, err := NewSimulator(cell, cellRun)
		if err != nil {
			return nil, err
		}
		res, err := s.Run(ctx)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}
