package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/jimmympnguyen/vast-mining-simulator/sim"
	"github.com/jimmympnguyen/vast-mining-simulator/sim/report"
	"github.com/jimmympnguyen/vast-mining-simulator/sim/trace"
)

var (
	// Global flags
	configPath string // Path to a YAML config file
	logLevel   string // Log verbosity level
	logFormat  string // text or json

	// CLI overrides for the config file
	seed          int64  // Seed for mining durations
	numTrucks     int    // Fleet size
	numStations   int    // Unload stations
	numMines      int    // Mine sites (0 = one per truck)
	durationHours int    // Simulated hours to run
	stepMinutes   int    // Tick size
	travelMinutes int    // Mine <-> station travel time
	unloadMinutes int    // Unload time at a station
	minMineHours  int    // Shortest load
	maxMineHours  int    // Longest load
	outputFormat  string // Report format
	traceLevel    string // Decision trace verbosity
	traceFile     string // JSONL trace output path
	metricsFile   string // Prometheus textfile output path
	databaseFlag  string // sqlite path or postgres URL for the run archive
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "mining-sim",
	Short: "Time-stepped simulator for a mining haul fleet",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(logLevel, logFormat)
	},
}

// runCmd executes the simulation using the layered configuration
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the mining fleet simulation",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadRunConfig(configPath, cmd.Flags())
		if err != nil {
			logrus.Fatalf("Unable to load configuration: %v", err)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		startTime := time.Now()
		if _, err := runSimulation(ctx, cfg, os.Stdout); err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		logrus.Infof("Simulation complete in %s.", time.Since(startTime).Round(time.Millisecond))
	},
}

// configCmd groups configuration helpers
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the effective configuration",
}

// configShowCmd prints the layered configuration as YAML
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as YAML",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := LoadConfig(configPath)
		if err != nil {
			logrus.Fatalf("Unable to load configuration: %v", err)
		}
		if err := writeConfigYAML(cmd.OutOrStdout(), cfg); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func setupLogging(level, format string) error {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level: %s", level)
	}
	logrus.SetLevel(parsed)

	switch format {
	case "text", "":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format: %s", format)
	}
	// Reports go to stdout; keep logs off it.
	logrus.SetOutput(os.Stderr)
	return nil
}

// applyRunFlags overlays every explicitly set run flag onto cfg.
func applyRunFlags(flags *pflag.FlagSet, cfg *FileConfig) {
	if flags.Changed("seed") {
		cfg.Sim.Seed = seed
	}
	if flags.Changed("trucks") {
		cfg.Sim.NumTrucks = numTrucks
	}
	if flags.Changed("stations") {
		cfg.Sim.NumStations = numStations
	}
	if flags.Changed("mines") {
		cfg.Sim.NumMines = numMines
	}
	if flags.Changed("duration-hours") {
		cfg.Sim.DurationHours = durationHours
	}
	if flags.Changed("step-minutes") {
		cfg.Sim.StepMinutes = stepMinutes
	}
	if flags.Changed("travel-minutes") {
		cfg.Truck.TravelTimeMinutes = travelMinutes
	}
	if flags.Changed("unload-minutes") {
		cfg.Unloading.UnloadTimeMinutes = unloadMinutes
	}
	if flags.Changed("min-mining-hours") {
		cfg.Mining.MinMiningTimeHours = minMineHours
	}
	if flags.Changed("max-mining-hours") {
		cfg.Mining.MaxMiningTimeHours = maxMineHours
	}
	if flags.Changed("format") {
		cfg.Output.Format = outputFormat
	}
	if flags.Changed("trace-level") {
		cfg.Output.TraceLevel = traceLevel
	}
	if flags.Changed("trace-file") {
		cfg.Output.TraceFile = traceFile
		// A trace file with no explicit level records decisions.
		if !flags.Changed("trace-level") && cfg.Output.TraceLevel == string(trace.TraceLevelNone) {
			cfg.Output.TraceLevel = string(trace.TraceLevelDecisions)
		}
	}
	if flags.Changed("metrics-file") {
		cfg.Output.MetricsFile = metricsFile
	}
	if flags.Changed("db") {
		cfg.Output.Database = ParseDatabaseFlag(databaseFlag)
	}
}

// loadRunConfig layers explicitly set flags over the file and environment
// and validates the result once.
func loadRunConfig(path string, flags *pflag.FlagSet) (*FileConfig, error) {
	cfg, err := loadLayeredConfig(path)
	if err != nil {
		return nil, err
	}
	applyRunFlags(flags, cfg)
	SetDefaults(cfg)
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runSimulation runs one simulation described by cfg, writes the report to out and
// feeds the optional sinks. An interrupted run still reports the ticks it completed.
func runSimulation(ctx context.Context, cfg *FileConfig, out io.Writer) (*report.Report, error) {
	simCfg := cfg.ToSimulationConfig()
	s := sim.NewSimulator(simCfg, nil)

	level := trace.TraceLevel(cfg.Output.TraceLevel)
	if level != trace.TraceLevelNone {
		s.Coordinator.SetTrace(trace.NewSimulationTrace(trace.TraceConfig{
			Level:          level,
			KeepCandidates: cfg.Output.TraceFile != "",
		}))
	}

	res, runErr := s.Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return nil, runErr
	}
	if runErr != nil {
		logrus.Warnf("Simulation interrupted after %d ticks; reporting partial results", res.Summary.Ticks)
	}

	r := report.Build(simCfg, res)
	if err := report.Write(out, r, report.Format(cfg.Output.Format)); err != nil {
		return nil, err
	}

	if cfg.Output.TraceFile != "" {
		if err := trace.WriteJSONL(cfg.Output.TraceFile, s.Coordinator.Trace()); err != nil {
			return nil, err
		}
		logrus.Infof("Decision trace written to %s", cfg.Output.TraceFile)
	}
	if cfg.Output.MetricsFile != "" {
		if err := report.WriteMetricsTextfile(cfg.Output.MetricsFile, r); err != nil {
			return nil, err
		}
		logrus.Infof("Metrics written to %s", cfg.Output.MetricsFile)
	}
	if cfg.Output.Database.Enabled() {
		if err := archiveRun(ctx, cfg.Output.Database, r); err != nil {
			return nil, err
		}
		logrus.Infof("Run %s archived", r.RunID)
	}
	return r, nil
}

func archiveRun(ctx context.Context, dbCfg report.DatabaseConfig, r *report.Report) (err error) {
	db, err := report.NewConnection(dbCfg)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := report.Close(db); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	if err := report.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate run archive: %w", err)
	}
	// Archive even if ctx was cancelled mid-run.
	return report.NewStore(db).Save(context.WithoutCancel(ctx), r)
}

func writeConfigYAML(w io.Writer, cfg *FileConfig) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return enc.Close()
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (default: config.yaml in . or ./configs)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")

	// Simulation overrides
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for mining durations")
	runCmd.Flags().IntVar(&numTrucks, "trucks", 10, "Number of trucks")
	runCmd.Flags().IntVar(&numStations, "stations", 2, "Number of unload stations")
	runCmd.Flags().IntVar(&numMines, "mines", 0, "Number of mine sites (0 = one per truck)")
	runCmd.Flags().IntVar(&durationHours, "duration-hours", 72, "Simulated hours to run")
	runCmd.Flags().IntVar(&stepMinutes, "step-minutes", 5, "Minutes per simulation tick")
	runCmd.Flags().IntVar(&travelMinutes, "travel-minutes", 30, "Travel time between mines and stations (minutes)")
	runCmd.Flags().IntVar(&unloadMinutes, "unload-minutes", 5, "Unload time at a station (minutes)")
	runCmd.Flags().IntVar(&minMineHours, "min-mining-hours", 1, "Shortest load at a mine (hours)")
	runCmd.Flags().IntVar(&maxMineHours, "max-mining-hours", 5, "Longest load at a mine (hours)")

	// Output sinks
	runCmd.Flags().StringVar(&outputFormat, "format", "text", "Report format (text, json, yaml)")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Decision trace level (none, decisions, full)")
	runCmd.Flags().StringVar(&traceFile, "trace-file", "", "Write the decision trace as JSONL (zstd-compressed if it ends in .zst)")
	runCmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write final statistics as a Prometheus textfile")
	runCmd.Flags().StringVar(&databaseFlag, "db", "", "Archive the run to a sqlite file or postgres:// URL")

	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
}
