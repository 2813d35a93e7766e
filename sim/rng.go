package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible experiment.
// Two runs with the same SimulationKey, configuration, worker count and
// trial generator MUST produce identical counters.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

const (
	// SubsystemTrials is the RNG subsystem for sequential trial generation.
	// Uses the master seed directly so --seed maps 1:1 onto the stream.
	SubsystemTrials = "trials"
)

// SubsystemWorker returns the subsystem name for parallel worker id.
func SubsystemWorker(id int) string {
	return fmt.Sprintf("worker_%d", id)
}

// SubsystemSweepCell returns the subsystem name for the sweep cell (n, k).
func SubsystemSweepCell(n, k int) string {
	return fmt.Sprintf("sweep_%d_%d", n, k)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula:
//   - For SubsystemTrials: uses masterSeed directly
//   - For all other subsystems: masterSeed XOR fnv1a64(subsystemName)
//
// Thread-safety: NOT thread-safe. Derive every stream on one goroutine,
// then hand each *rand.Rand to exactly one worker.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.DeriveSeed(name)))
	p.subsystems[name] = rng
	return rng
}

// DeriveSeed returns the seed ForSubsystem would use for name.
func (p *PartitionedRNG) DeriveSeed(name string) int64 {
	if name == SubsystemTrials {
		return int64(p.key)
	}
	return int64(p.key) ^ fnv1a64(name)
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
