package cmd

import (
	"github.com/spf13/pflag"

	"evalgo.org/neptuneexport/internal/runlog"
)

func addRunLogFlags(fs *pflag.FlagSet, dir *string, keepDays *int) {
	fs.StringVar(dir, "run-log-dir", "", "directory for the run journal (disabled when empty)")
	fs.IntVar(keepDays, "run-log-keep-days", 0, "remove journal files older than this many days (0 keeps everything)")
}

// openJournal opens the journal in dir and drops day files older than keepDays. A failed
// rotation is only logged.
func openJournal(dir string, keepDays int) (*runlog.Journal, error) {
	journal, err := runlog.NewJournal(dir)
	if err != nil {
		return nil, err
	}
	if keepDays > 0 {
		if err := journal.RotateOldLogs(keepDays); err != nil {
			logger.WithError(err).Warn("Failed to rotate run logs")
		}
	}
	return journal, nil
}

func recordRun(journal *runlog.Journal, run *runlog.Run, cause error) {
	var err error
	if cause != nil {
		err = journal.Fail(run, cause)
	} else {
		err = journal.Complete(run)
	}
	if err != nil {
		logger.WithError(err).Warn("Failed to record run")
	}
}
