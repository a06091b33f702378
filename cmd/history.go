package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jimmympnguyen/vast-mining-simulator/sim/report"
)

var historyLimit int // Max runs to list

// historyCmd lists runs archived with --db
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived simulation runs",
	Run: func(cmd *cobra.Command, args []string) {
		dbCfg, err := historyDatabase(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := listRuns(cmd.Context(), dbCfg, historyLimit, cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Unable to list runs: %v", err)
		}
	},
}

// historyShowCmd prints one archived run's per-truck results
var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show the per-truck results of an archived run",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		dbCfg, err := historyDatabase(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := showRun(cmd.Context(), dbCfg, args[0], cmd.OutOrStdout()); err != nil {
			logrus.Fatalf("Unable to show run: %v", err)
		}
	},
}

// historyDatabase resolves the archive from --db, falling back to the config file.
func historyDatabase(cmd *cobra.Command) (report.DatabaseConfig, error) {
	if cmd.Flags().Changed("db") {
		return ParseDatabaseFlag(databaseFlag), nil
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return report.DatabaseConfig{}, fmt.Errorf("unable to load configuration: %w", err)
	}
	if !cfg.Output.Database.Enabled() {
		return report.DatabaseConfig{}, fmt.Errorf("no run archive configured; pass --db or set output.database")
	}
	return cfg.Output.Database, nil
}

func openStore(dbCfg report.DatabaseConfig) (*report.Store, func(), error) {
	db, err := report.NewConnection(dbCfg)
	if err != nil {
		return nil, nil, err
	}
	if err := report.AutoMigrate(db); err != nil {
		_ = report.Close(db)
		return nil, nil, fmt.Errorf("failed to migrate run archive: %w", err)
	}
	return report.NewStore(db), func() { _ = report.Close(db) }, nil
}

func listRuns(ctx context.Context, dbCfg report.DatabaseConfig, limit int, out io.Writer) error {
	store, closeDB, err := openStore(dbCfg)
	if err != nil {
		return err
	}
	defer closeDB()

	runs, err := store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No archived runs")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tCREATED\tSEED\tTRUCKS\tMINES\tSTATIONS\tHOURS\tUNITS")
	fmt.Fprintln(w, "------\t-------\t----\t------\t-----\t--------\t-----\t-----")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%.1f\t%d\n",
			run.ID,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.NumTrucks,
			run.NumMines,
			run.NumStations,
			float64(run.ElapsedMinutes)/60,
			run.UnitsDeposited,
		)
	}
	return w.Flush()
}

func showRun(ctx context.Context, dbCfg report.DatabaseConfig, runID string, out io.Writer) error {
	store, closeDB, err := openStore(dbCfg)
	if err != nil {
		return err
	}
	defer closeDB()

	run, err := store.FindRun(ctx, runID)
	if err != nil {
		return err
	}
	trucks, err := store.TruckResults(ctx, runID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Run %s: %d units deposited in %d ticks\n", run.ID, run.UnitsDeposited, run.Ticks)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRUCK\tUNITS\tMINING\tTRAVELING\tUNLOADING\tWAITING\tIDLE")
	fmt.Fprintln(w, "-----\t-----\t------\t---------\t---------\t-------\t----")
	for _, t := range trucks {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
			t.TruckID, t.UnitsMined, t.MiningMinutes, t.TravelingMinutes, t.UnloadingMinutes, t.WaitingMinutes, t.IdleMinutes)
	}
	return w.Flush()
}

func init() {
	historyCmd.PersistentFlags().StringVar(&databaseFlag, "db", "", "Run archive: sqlite file or postgres:// URL")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of runs to list (0 = all)")
	historyCmd.AddCommand(historyShowCmd)
}
