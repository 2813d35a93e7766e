package sim

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/montyhall/sim/trace"
)

// cancelCheckInterval is how many trials run between context checks.
const cancelCheckInterval = 4096

// Simulator runs one Monty Hall experiment.
//
// The loop is NotStarted -> Running -> Done: Run either returns the full
// Result or an error, never a partial count.
type Simulator struct {
	Config    Config
	RunConfig RunConfig
	Trace     *trace.SimulationTrace // nil disables per-trial recording

	generator TrialGenerator
	rng       *PartitionedRNG
}

// NewSimulator validates cfg and the trial generator name, then returns a
// Simulator ready to Run. No trial is played on a validation failure.
func NewSimulator(cfg Config, run RunConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !IsValidTrialGenerator(run.Trial) {
		return nil, fmt.Errorf("unknown trial generator %q; valid: %s", run.Trial, ValidTrialGeneratorNames())
	}
	return &Simulator{
		Config:    cfg,
		RunConfig: run,
		generator: NewTrialGenerator(run.Trial),
		rng:       NewPartitionedRNG(NewSimulationKey(run.Seed)),
	}, nil
}

// Run plays exactly NumSimulations trials and returns the totals.
// It returns ctx.Err() if ctx is cancelled before every trial is played.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	workers := s.workerCount()

	var (
		agg Aggregate
		err error
	)
	if workers == 1 {
		agg, err = s.runSequential(ctx)
	} else {
		agg, err = s.runParallel(ctx, workers)
	}
	if err != nil {
		return nil, err
	}

	run := s.RunConfig
	run.Workers = workers
	return &Result{
		Config:    s.Config,
		Run:       run,
		Aggregate: agg,
		Elapsed:   time.Since(start),
	}, nil
}

func (s *Simulator) workerCount() int {
	workers := s.RunConfig.Workers
	if workers <= 1 {
		return 1
	}
	if s.Trace != nil && s.Trace.Config.Enabled() {
		logrus.Warnf("trial tracing requires a single worker; ignoring workers=%d", workers)
		return 1
	}
	return min(workers, s.Config.NumSimulations)
}

func (s *Simulator) runSequential(ctx context.Context) (Aggregate, error) {
	rng := s.rng.ForSubsystem(SubsystemTrials)
	recording := s.Trace != nil && s.Trace.Config.Enabled()

	var agg Aggregate
	n, k := s.Config.NumDoors, s.Config.NumDoorsOpenedByHost
	for i := 0; i < s.Config.NumSimulations; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Aggregate{}, err
			}
		}
		outcome := s.generator.GenerateTrial(rng, n, k)
		agg.Record(outcome)
		if recording {
			s.Trace.RecordTrial(trace.TrialRecord{
				Trial:      int64(i),
				StayWins:   outcome.StayWins,
				SwitchWins: outcome.SwitchWins,
			})
		}
	}
	return agg, nil
}

// runParallel splits the trials into contiguous shares, the last worker
// taking the remainder. Every worker owns its own stream.
func (s *Simulator) runParallel(ctx context.Context, workers int) (Aggregate, error) {
	per := s.Config.NumSimulations / workers
	remainder := s.Config.NumSimulations % workers

	// PartitionedRNG is not thread-safe: derive all streams up front.
	rngs := make([]*rand.Rand, workers)
	for i := range rngs {
		rngs[i] = s.rng.ForSubsystem(SubsystemWorker(i))
	}

	var wg sync.WaitGroup
	results := make([]Aggregate, workers)
	errs := make([]error, workers)
	n, k := s.Config.NumDoors, s.Config.NumDoorsOpenedByHost
	for i := 0; i < workers; i++ {
		share := per
		if i == workers-1 {
			share += remainder
		}
		logrus.Debugf("worker %d: %d trials", i, share)

		wg.Add(1)
		go func(id, share int) {
			defer wg.Done()
			rng := rngs[id]
			var agg Aggregate
			for t := 0; t < share; t++ {
				if t%cancelCheckInterval == 0 {
					if err := ctx.Err(); err != nil {
						errs[id] = err
						return
					}
				}
				agg.Record(s.generator.GenerateTrial(rng, n, k))
			}
			results[id] = agg
		}(i, share)
	}
	wg.Wait()

	var total Aggregate
	for i := range results {
		if errs[i] != nil {
			return Aggregate{}, errs[i]
		}
		total.Merge(results[i])
	}
	return total, nil
}

// GenerateTrial plays one game with the index generator.
func GenerateTrial(rng *rand.Rand, n, k int) TrialOutcome {
	return IndexTrial{}.GenerateTrial(rng, n, k)
}

// RunExperiment validates cfg, runs it with the given run settings and
// returns the win counters.
func RunExperiment(ctx context.Context, cfg Config, run RunConfig) (Aggregate, error) {
	s, err := NewSimulator(cfg, run)
	if err != nil {
		return Aggregate{}, err
	}
	res, err := s.Run(ctx)
	if err != nil {
		return Aggregate{}, err
	}
	return res.Aggregate, nil
}
