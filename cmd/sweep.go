package cmd

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/montyhall/sim"
)

var (
	sweepMaxDoors  int // Largest door count in the grid
	sweepHostOpens int // Fixed K, or -1 for every K
)

// sweepCmd runs a grid of experiments over door counts.
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Compare stay and switch win rates across door counts",
	Long: "Runs one experiment for every door count from 3 to --max_doors and every host-opened count\n" +
		"(or the fixed --num_doors_opened_by_host), printing empirical and exact win rates.",
	RunE: runSweep,
}

func runSweep(cmd *cobra.Command, _ []string) error {
	cfg := sim.SweepConfig{
		MaxDoors:       sweepMaxDoors,
		HostOpens:      sweepHostOpens,
		NumSimulations: resolved.Config.NumSimulations,
	}
	logrus.Infof("Starting sweep: max_doors=%d, opened_by_host=%d, simulations=%d, seed=%d",
		cfg.MaxDoors, cfg.HostOpens, cfg.NumSimulations, resolved.Run.Seed)

	results, err := sim.Sweep(cmd.Context(), cfg, resolved.Run)
	if err != nil {
		return err
	}
	return writeSweep(cmd, results)
}

func writeSweep(cmd *cobra.Command, results []*sim.Result) error {
	headers := []string{"doors", "opened", "stay %", "switch %", "exact stay %", "exact switch %"}
	rows := make([][]string, 0, len(results))
	var trials int64
	for _, res := range results {
		theory := sim.Theoretical(res.Config)
		rows = append(rows, []string{
			strconv.Itoa(res.Config.NumDoors),
			strconv.Itoa(res.Config.NumDoorsOpenedByHost),
			sim.FormatPercent(res.StayRate()),
			sim.FormatPercent(res.SwitchRate()),
			sim.FormatPercent(theory.Stay),
			sim.FormatPercent(theory.Switch),
		})
		trials += res.Aggregate.Trials
	}
	out := cmd.OutOrStdout()
	if err := writeTable(out, headers, rows, map[int]bool{0: true, 1: true, 2: true, 3: true, 4: true, 5: true}); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "%s trials across %d configurations.\n", humanize.Comma(trials), len(results))
	return err
}

func init() {
	sweepCmd.Flags().IntVar(&sweepMaxDoors, "max_doors", 6, "Largest door count in the sweep")
	sweepCmd.Flags().IntVar(&sweepHostOpens, "num_doors_opened_by_host", sim.SweepAllHostOpens, "Fixed number of doors opened by the host (-1 = every valid count)")
	sweepCmd.Flags().IntVar(&numSimulations, "num_simulations", 10000, "Number of trials per configuration")
}
