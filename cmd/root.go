package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/montyhall/sim"
	"github.com/inference-sim/montyhall/sim/store"
	"github.com/inference-sim/montyhall/sim/trace"
)

var (
	// Experiment flags
	numDoors             int // Total number of doors (N)
	numDoorsOpenedByHost int // Doors opened by the host (K)
	numSimulations       int // Number of trials (S)

	// Run flags shared by every subcommand
	seed       int64  // Master seed for all random streams
	workers    int    // Parallel workers
	trialName  string // Trial generator: index or doors
	logLevel   string // Log verbosity level
	configPath string // YAML or TOML config file
	dbPath     string // SQLite run ledger

	// Output flags
	resultsPath string  // JSON results file
	record      bool    // Store the run in the ledger
	confidence  float64 // Confidence level for logged intervals
	traceLevel  string  // Trial trace level
	traceLimit  int     // Max trial records kept
	tracePath   string  // YAML trace dump
)

// options is the resolved configuration of one invocation.
type options struct {
	Config   sim.Config
	Run      sim.RunConfig
	SeedSet  bool
	LogLevel string
	DBPath   string
}

// resolved is filled by the root PersistentPreRunE before any RunE.
var resolved options

// rootCmd runs one experiment.
var rootCmd = &cobra.Command{
	Use:   "montyhall",
	Short: "Monte Carlo simulator for the generalized Monty Hall problem",
	Long: "Plays the Monty Hall game with N doors, where the host opens K goat doors the player did not pick,\n" +
		"and reports how often staying and switching win.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runExperiment,
}

// setup resolves configuration and sets the log level.
func setup(cmd *cobra.Command, _ []string) error {
	opts, err := resolveOptions(cmd)
	if err != nil {
		return err
	}
	level, err := logrus.ParseLevel(opts.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", opts.LogLevel, err)
	}
	logrus.SetLevel(level)
	if !sim.IsValidTrialGenerator(opts.Run.Trial) {
		return fmt.Errorf("unknown trial generator %q; valid: %s", opts.Run.Trial, sim.ValidTrialGeneratorNames())
	}
	resolved = opts
	return nil
}

// resolveOptions layers built-in defaults < environment < config file < explicit flags.
func resolveOptions(cmd *cobra.Command) (options, error) {
	var env EnvConfig
	if err := ParseEnv(&env); err != nil {
		return options{}, err
	}
	opts := options{
		Config: sim.Config{
			NumDoors:             env.NumDoors,
			NumDoorsOpenedByHost: env.NumDoorsOpenedByHost,
			NumSimulations:       env.NumSimulations,
		},
		Run:      sim.RunConfig{Workers: env.Workers, Trial: env.Trial},
		LogLevel: env.LogLevel,
		DBPath:   env.DB,
	}
	if env.Seed != nil {
		opts.Run.Seed = *env.Seed
		opts.SeedSet = true
	}

	if configPath != "" {
		fc, err := LoadFileConfig(configPath)
		if err != nil {
			return options{}, err
		}
		fc.apply(&opts)
	}

	// Explicit flags win; unchanged flags must not clobber env or file values.
	flags := cmd.Flags()
	if flags.Changed("num_doors") {
		opts.Config.NumDoors = numDoors
	}
	if flags.Changed("num_doors_opened_by_host") {
		opts.Config.NumDoorsOpenedByHost = numDoorsOpenedByHost
	}
	if flags.Changed("num_simulations") {
		opts.Config.NumSimulations = numSimulations
	}
	if flags.Changed("seed") {
		opts.Run.Seed = seed
		opts.SeedSet = true
	}
	if flags.Changed("workers") {
		opts.Run.Workers = workers
	}
	if flags.Changed("trial") {
		opts.Run.Trial = trialName
	}
	if flags.Changed("log") {
		opts.LogLevel = logLevel
	}
	if flags.Changed("db") {
		opts.DBPath = dbPath
	}

	if !opts.SeedSet {
		opts.Run.Seed = time.Now().UnixNano()
	}
	if opts.DBPath == "" {
		opts.DBPath = DefaultDBPath()
	}
	return opts, nil
}

func runExperiment(cmd *cobra.Command, _ []string) error {
	if !trace.IsValidTraceLevel(traceLevel) {
		return fmt.Errorf("unknown trace level %q; valid: none, trials", traceLevel)
	}

	s, err := sim.NewSimulator(resolved.Config, resolved.Run)
	if err != nil {
		return err
	}
	traceCfg := trace.TraceConfig{Level: trace.TraceLevel(traceLevel), Limit: traceLimit}
	if traceCfg.Enabled() {
		s.Trace = trace.NewSimulationTrace(traceCfg)
	}

	logrus.Infof("Starting simulation: doors=%d, opened_by_host=%d, simulations=%d, seed=%d, workers=%d, trial=%s",
		resolved.Config.NumDoors, resolved.Config.NumDoorsOpenedByHost, resolved.Config.NumSimulations,
		resolved.Run.Seed, max(resolved.Run.Workers, 1), resolved.Run.Trial)

	res, err := s.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("simulation interrupted: %w", err)
	}
	if err := res.Print(cmd.OutOrStdout()); err != nil {
		return err
	}
	res.LogSummary(confidence)

	if s.Trace != nil {
		summary := trace.Summarize(s.Trace)
		logrus.Infof("trace: %d trials, %d stay wins, %d switch wins, %d lost both, %d won both",
			summary.TotalTrials, summary.StayWins, summary.SwitchWins, summary.Neither, summary.Both)
		if tracePath != "" {
			if err := s.Trace.WriteYAML(tracePath); err != nil {
				return err
			}
		}
	}
	if resultsPath != "" {
		if err := res.SaveResults(resultsPath); err != nil {
			return err
		}
	}
	if record {
		if err := recordRun(cmd.Context(), resolved.DBPath, res); err != nil {
			return err
		}
	}

	logrus.Info("Simulation complete.")
	return nil
}

func recordRun(ctx context.Context, path string, res *sim.Result) error {
	st, err := store.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logrus.Warnf("closing run ledger: %v", cerr)
		}
	}()
	id, err := st.InsertRun(ctx, store.RunFromResult(res))
	if err != nil {
		return err
	}
	logrus.Debugf("Recorded run %s in %s", id, path)
	return nil
}

// Execute runs the CLI root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.Flags().IntVar(&numDoors, "num_doors", 3, "Specifies the total number of doors")
	rootCmd.Flags().IntVar(&numDoorsOpenedByHost, "num_doors_opened_by_host", 1, "Specifies the number of doors opened by the host")
	rootCmd.Flags().IntVar(&numSimulations, "num_simulations", 10000, "Specifies the number of times the game is simulated")

	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "Master seed for all random streams (default: derived from the clock)")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 1, "Number of parallel workers, each with its own random stream")
	rootCmd.PersistentFlags().StringVar(&trialName, "trial", sim.TrialIndex, "Trial generator ("+sim.ValidTrialGeneratorNames()+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "YAML or TOML config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite run ledger path (default: $XDG_DATA_HOME/montyhall/runs.db)")

	rootCmd.Flags().StringVar(&resultsPath, "results-path", "", "Write results as JSON to this file")
	rootCmd.Flags().BoolVar(&record, "record", false, "Store the run in the ledger")
	rootCmd.Flags().Float64Var(&confidence, "confidence", 0.95, "Confidence level for the logged win-rate intervals")
	rootCmd.Flags().StringVar(&traceLevel, "trace", string(trace.TraceLevelNone), "Trial trace level (none, trials)")
	rootCmd.Flags().IntVar(&traceLimit, "trace-limit", 0, "Max trial records kept in the trace (0 = all)")
	rootCmd.Flags().StringVar(&tracePath, "trace-path", "", "Write the trial trace as YAML to this file")

	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(historyCmd)
}
