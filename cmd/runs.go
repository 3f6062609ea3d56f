package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"evalgo.org/neptuneexport/internal/runlog"
)

type runsOptions struct {
	runLogDir string
	date      string
	format    string
	files     bool
	keepDays  int
}

var (
	runsOpts = runsOptions{}

	runsCmd = &cobra.Command{
		Use:   "runs",
		Short: "List runs recorded in the run journal",
		Long: `Show the runs recorded by query and apply-profile in a run journal directory.

Examples:
  # Runs started today
  neptune-export runs --run-log-dir ./runs

  # Runs of a given day as JSON
  neptune-export runs --run-log-dir ./runs --date 2026-10-01 -o json

  # List the journal files, dropping those older than a week
  neptune-export runs --run-log-dir ./runs --files --run-log-keep-days 7`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRuns(cmd.OutOrStdout(), runsOpts, time.Now())
		},
	}
)

func init() {
	addRunLogFlags(runsCmd.Flags(), &runsOpts.runLogDir, &runsOpts.keepDays)
	runsCmd.Flags().StringVar(&runsOpts.date, "date", "", "day to show as YYYY-MM-DD (defaults to today)")
	runsCmd.Flags().BoolVar(&runsOpts.files, "files", false, "list the journal files instead of runs")
	runsCmd.Flags().StringVarP(&runsOpts.format, "output", "o", "text", "output format, one of 'text' or 'json'")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(out io.Writer, opts runsOptions, now time.Time) error {
	if opts.runLogDir == "" {
		return fmt.Errorf("--run-log-dir is required")
	}
	if opts.format != "text" && opts.format != "json" && opts.format != "" {
		return fmt.Errorf("unknown output format %q, expected 'text' or 'json'", opts.format)
	}

	journal, err := openJournal(opts.runLogDir, opts.keepDays)
	if err != nil {
		return err
	}

	if opts.files {
		files, err := journal.ListLogFiles()
		if err != nil {
			return err
		}
		if opts.format == "json" {
			return writeJSON(out, files)
		}
		for _, f := range files {
			if _, err := fmt.Fprintln(out, filepath.Base(f)); err != nil {
				return err
			}
		}
		return nil
	}

	date := opts.date
	if date == "" {
		date = now.Format("2006-01-02")
	}
	runs, err := journal.Runs(date)
	if err != nil {
		return err
	}

	if opts.format == "json" {
		return writeJSON(out, runs)
	}
	for _, r := range runs {
		if _, err := fmt.Fprintln(out, formatRun(r)); err != nil {
			return err
		}
	}
	return nil
}

func formatRun(r runlog.Run) string {
	line := fmt.Sprintf("%s %s %s %s %dms", r.StartTime.Format(time.RFC3339), r.ID, r.Command, r.Status, r.Duration)
	if r.DataModel != "" {
		line += " data_model=" + r.DataModel
	}
	if r.ErrorMessage != "" {
		line += fmt.Sprintf(" error=%q", r.ErrorMessage)
	}
	return line
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
