// Package sim provides the Monte Carlo engine for the generalized Monty Hall
// game: N doors, one car, and a host who opens K goat doors the player did
// not pick.
//
// # Reading Guide
//
//   - config.go: Config (N, K, S) and its validation
//   - trial.go: TrialGenerator and the index and door-array generators
//   - simulator.go: the experiment loop, sequential or split across workers
//   - metrics.go: win counters, the printed report, JSON results
//
// # Randomness
//
// Every stream is derived from one master seed through PartitionedRNG
// (rng.go). Sequential runs draw from the "trials" subsystem; parallel runs
// give worker i the "worker_i" subsystem, so no generator is ever shared
// between goroutines and equal seeds reproduce equal counters.
//
// Sub-packages:
//   - sim/trace: optional per-trial recording
//   - sim/store: SQLite ledger of finished runs
package sim
