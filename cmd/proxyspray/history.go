package main

import (
	"fmt"

	"github.com/nao1215/proxyspray/internal/config"
	"github.com/nao1215/proxyspray/internal/database"
	"github.com/nao1215/proxyspray/internal/report"
	"github.com/spf13/cobra"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List or inspect saved spray runs",
		Long: `History reads the run database written by "spray --save-history".

Without flags it lists saved runs, most recent first. With --run it prints
every result of that run, failures included.

Examples:
  # List saved runs
  proxyspray history

  # Show all results of run 3
  proxyspray history --run 3

  # Dump run 3 as JSON
  proxyspray history --run 3 --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().Int64P("run", "r", 0, "Show the results of a single saved run")
	cmd.Flags().BoolP("json", "j", false, "Output the selected run as JSON (requires --run)")
	cmd.Flags().String("db-dir", config.XDGDataDir(), "Directory containing the history database")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	runID, err := cmd.Flags().GetInt64("run")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if asJSON && runID == 0 {
		return fmt.Errorf("--json requires --run")
	}

	// The database must already exist; history never creates one.
	opts := database.DefaultOptions()
	opts.CreateIfNotExists = false
	db, err := database.Open(dbDir, opts)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	if runID > 0 {
		return showRun(cmd, db, runID, asJSON)
	}
	return listRuns(cmd, db)
}

// listRuns prints one line per saved run.
func listRuns(cmd *cobra.Command, db *database.HistoryDB) error {
	runs, err := db.ListRuns(cmd.Context())
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No saved runs. Use \"spray --save-history\" to record one.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(cmd.OutOrStdout(), "#%-4d %s  window=%d  proxies=%d  targets=%d\n",
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Window,
			run.ProxyCount,
			run.TargetCount,
		)
	}
	return nil
}

// showRun prints every result of one saved run.
func showRun(cmd *cobra.Command, db *database.HistoryDB, id int64, asJSON bool) error {
	run, err := db.GetRun(cmd.Context(), id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run #%d not found", id)
	}

	if asJSON {
		writer := report.NewJSONWriter(cmd.OutOrStdout())
		_, err := writer.Write(run)
		return err
	}

	// Saved runs always show failures; suppression only applies live.
	reporter := report.NewLineReporter(cmd.OutOrStdout(), true)
	for _, res := range run.Results {
		reporter.Report(res)
	}

	summary := run.Summarize()
	fmt.Fprintf(cmd.OutOrStdout(), "\n#%d: %d succeeded, %d failed of %d attempted\n",
		run.ID, summary.Succeeded, summary.Failed, summary.Attempted)
	return nil
}
