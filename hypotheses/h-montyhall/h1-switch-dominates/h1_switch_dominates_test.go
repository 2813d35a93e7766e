package h1

import (
	"context"
	"fmt"
	"testing"

	"github.com/inference-sim/montyhall/sim"
)

// =============================================================================
// H1: Switching Dominates Once the Host Reveals Anything
//
// Hypothesis: For every door count N and every K >= 1 opened doors, the
// switch win rate strictly exceeds the stay win rate, and the gap grows
// with K because the switching player's candidate pool shrinks while the
// pick's 1/N chance stays fixed.
//
// Exact rates: stay = 1/N, switch = (N-1)/(N(N-K-1)). For K >= 1,
// N-K-1 <= N-2 < N-1, so switch > stay.
//
// Refuted if: any (N, K>=1) cell shows switch <= stay at 50k trials, or
// the switch rate fails to increase with K for fixed N.
//
// Independent variable: (N, K)
// Controlled variables: trials per cell, master seed, index generator
// Dependent variable: switch rate - stay rate
// =============================================================================

func TestH1_SwitchBeatsStayWheneverHostOpensDoors(t *testing.T) {
	results, err := sim.Sweep(context.Background(),
		sim.SweepConfig{MaxDoors: 8, HostOpens: -1, NumSimulations: 50000},
		sim.RunConfig{Seed: 1001})
	if err != nil {
		t.Fatal(err)
	}

	prevSwitch := map[int]float64{}
	for _, res := range results {
		n, k := res.Config.NumDoors, res.Config.NumDoorsOpenedByHost
		label := fmt.Sprintf("N=%d K=%d", n, k)
		t.Logf("%s: stay=%.3f%% switch=%.3f%%", label, res.StayRate(), res.SwitchRate())

		if k == 0 {
			prevSwitch[n] = res.SwitchRate()
			continue
		}
		if res.SwitchRate() <= res.StayRate() {
			t.Errorf("%s: switch %.3f%% does not beat stay %.3f%%", label, res.SwitchRate(), res.StayRate())
		}
		if res.SwitchRate() <= prevSwitch[n] {
			t.Errorf("%s: switch %.3f%% did not grow from K=%d (%.3f%%)", label, res.SwitchRate(), k-1, prevSwitch[n])
		}
		prevSwitch[n] = res.SwitchRate()
	}
}
