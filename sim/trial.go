package sim

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// TrialOutcome is the result of one simulated game for both strategies.
// At most one field is true: the prize sits behind exactly one door.
type TrialOutcome struct {
	StayWins   bool
	SwitchWins bool
}

// TrialGenerator plays one randomized game with n doors, k of which the host
// opens, drawing all randomness from rng.
// Callers guarantee 3 <= n and 0 <= k <= n-2 (see Config.Validate).
type TrialGenerator interface {
	GenerateTrial(rng *rand.Rand, n, k int) TrialOutcome
}

// Trial generator names.
const (
	TrialIndex = "index"
	TrialDoors = "doors"
)

var validTrialGenerators = map[string]bool{
	"":         true, // empty defaults to index
	TrialIndex: true,
	TrialDoors: true,
}

// IsValidTrialGenerator returns true if name is a recognized trial generator.
func IsValidTrialGenerator(name string) bool {
	return validTrialGenerators[name]
}

// ValidTrialGeneratorNames returns the accepted non-empty names, sorted.
func ValidTrialGeneratorNames() string {
	names := make([]string, 0, len(validTrialGenerators))
	for name := range validTrialGenerators {
		if name != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// NewTrialGenerator creates a TrialGenerator by name.
// Empty string defaults to IndexTrial.
// Panics on unrecognized names.
func NewTrialGenerator(name string) TrialGenerator {
	if !IsValidTrialGenerator(name) {
		panic(fmt.Sprintf("unknown trial generator %q", name))
	}
	switch name {
	case "", TrialIndex:
		return IndexTrial{}
	case TrialDoors:
		return DoorsTrial{}
	default:
		panic(fmt.Sprintf("unhandled trial generator %q", name))
	}
}

// IndexTrial scores a game in O(1) without building a door array.
//
// Once the car, the player's pick and the k opened goats are set aside, the
// player can switch to one of n-k-1 doors. If the car is not under the pick
// it is equally likely to be any of them, so index n-k-2 of a uniform draw
// over [0, n-k-2] stands in for "the door that hides the car".
type IndexTrial struct{}

func (IndexTrial) GenerateTrial(rng *rand.Rand, n, k int) TrialOutcome {
	car := rng.Intn(n)
	player := rng.Intn(n)
	last := n - k - 2
	pick := rng.Intn(last + 1)
	return TrialOutcome{
		StayWins:   car == player,
		SwitchWins: car != player && pick == last,
	}
}

// DoorsTrial plays the game on an explicit door array in O(n): the host
// opens k random goats other than the pick, and a switching player chooses
// uniformly among the doors still closed.
type DoorsTrial struct{}

func (DoorsTrial) GenerateTrial(rng *rand.Rand, n, k int) TrialOutcome {
	car := rng.Intn(n)
	player := rng.Intn(n)

	// Doors the host may open: neither the car nor the pick.
	openable := make([]int, 0, n-1)
	for door := 0; door < n; door++ {
		if door != car && door != player {
			openable = append(openable, door)
		}
	}
	rng.Shuffle(len(openable), func(i, j int) {
		openable[i], openable[j] = openable[j], openable[i]
	})
	opened := make([]bool, n)
	for _, door := range openable[:k] {
		opened[door] = true
	}

	candidates := make([]int, 0, n-k-1)
	for door := 0; door < n; door++ {
		if door != player && !opened[door] {
			candidates = append(candidates, door)
		}
	}

	if car == player {
		return TrialOutcome{StayWins: true}
	}
	return TrialOutcome{SwitchWins: candidates[rng.Intn(len(candidates))] == car}
}
