package cmd

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/montyhall/sim"
	"github.com/inference-sim/montyhall/sim/store"
)

var historyLimit int // Max runs listed

// historyCmd lists runs stored with --record.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs from the ledger",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, _ []string) error {
	st, err := store.Open(resolved.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logrus.Warnf("closing run ledger: %v", cerr)
		}
	}()

	runs, err := st.ListRuns(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		_, err := fmt.Fprintf(out, "No runs recorded in %s.\n", resolved.DBPath)
		return err
	}

	headers := []string{"id", "recorded", "doors", "opened", "simulations", "stay %", "switch %", "trial", "seed"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			shortID(r.ID),
			humanize.Time(r.CreatedAt),
			strconv.Itoa(r.NumDoors),
			strconv.Itoa(r.NumDoorsOpenedByHost),
			humanize.Comma(int64(r.NumSimulations)),
			sim.FormatPercent(sim.WinRate(r.StayWins, int64(r.NumSimulations))),
			sim.FormatPercent(sim.WinRate(r.SwitchWins, int64(r.NumSimulations))),
			r.Trial,
			strconv.FormatInt(r.Seed, 10),
		})
	}
	return writeTable(out, headers, rows, map[int]bool{2: true, 3: true, 4: true, 5: true, 6: true})
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Max runs listed, newest first (0 = all)")
}
