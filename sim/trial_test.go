package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func trialGenerators() map[string]TrialGenerator {
	return map[string]TrialGenerator{
		TrialIndex: NewTrialGenerator(TrialIndex),
		TrialDoors: NewTrialGenerator(TrialDoors),
	}
}

func TestTrialGenerators_NeverBothWin(t *testing.T) {
	configs := [][2]int{{3, 0}, {3, 1}, {4, 2}, {7, 3}, {10, 0}, {10, 8}}
	for name, gen := range trialGenerators() {
		t.Run(name, func(t *testing.T) {
			rng := newRandFromSeed(1)
			for _, nk := range configs {
				for i := 0; i < 2000; i++ {
					o := gen.GenerateTrial(rng, nk[0], nk[1])
					if o.StayWins && o.SwitchWins {
						t.Fatalf("n=%d k=%d: both strategies won trial %d", nk[0], nk[1], i)
					}
				}
			}
		})
	}
}

func TestIndexTrial_StayWinsIffCarUnderPick(t *testing.T) {
	// GIVEN two streams with the same seed
	n, k := 5, 2
	rng := newRandFromSeed(3)
	mirror := newRandFromSeed(3)

	for i := 0; i < 5000; i++ {
		o := IndexTrial{}.GenerateTrial(rng, n, k)

		// WHEN replaying the draws on the mirror
		car, player, pick := mirror.Intn(n), mirror.Intn(n), mirror.Intn(n-k-1)

		// THEN the outcome follows the index rules exactly
		assert.Equal(t, car == player, o.StayWins)
		assert.Equal(t, car != player && pick == n-k-2, o.SwitchWins)
	}
}

func TestDoorsTrial_SingleCandidate_ExactlyOneWins(t *testing.T) {
	// GIVEN the host opens n-2 doors, leaving one door to switch to
	n, k := 6, 4
	rng := newRandFromSeed(11)

	// THEN switching wins every time the pick is wrong
	for i := 0; i < 2000; i++ {
		o := DoorsTrial{}.GenerateTrial(rng, n, k)
		assert.True(t, o.StayWins != o.SwitchWins, "trial %d: exactly one strategy must win", i)
	}
}

func TestIndexTrial_HostOpensAll_ExactlyOneWins(t *testing.T) {
	// k = n-2 leaves one switch candidate, so the pick draw is always the car.
	rng := newRandFromSeed(5)
	for i := 0; i < 2000; i++ {
		o := IndexTrial{}.GenerateTrial(rng, 4, 2)
		assert.True(t, o.StayWins != o.SwitchWins)
	}
}

func TestGenerateTrial_UsesIndexGenerator(t *testing.T) {
	a, b := newRandFromSeed(8), newRandFromSeed(8)
	for i := 0; i < 100; i++ {
		assert.Equal(t, IndexTrial{}.GenerateTrial(a, 3, 1), GenerateTrial(b, 3, 1))
	}
}

func TestNewTrialGenerator(t *testing.T) {
	assert.IsType(t, IndexTrial{}, NewTrialGenerator(""))
	assert.IsType(t, IndexTrial{}, NewTrialGenerator(TrialIndex))
	assert.IsType(t, DoorsTrial{}, NewTrialGenerator(TrialDoors))
	assert.Panics(t, func() { NewTrialGenerator("sequential") })
}

func TestValidTrialGeneratorNames(t *testing.T) {
	assert.Equal(t, "doors, index", ValidTrialGeneratorNames())
	assert.True(t, IsValidTrialGenerator(""))
	assert.False(t, IsValidTrialGenerator("bogus"))
}
