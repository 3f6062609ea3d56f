// Package runlog keeps a per-day JSON lines journal of CLI runs.
package runlog

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

// Run statuses
const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

const dateLayout = "2006-01-02"

// Run is one CLI invocation. Each state change is appended as a new line; the last line for an ID
// wins when reading.
type Run struct {
	ID           string                 `json:"id"`
	Command      string                 `json:"command"`
	DataModel    string                 `json:"data_model,omitempty"`
	Args         []string               `json:"args,omitempty"`
	StartTime    time.Time              `json:"start_time"`
	EndTime      *time.Time             `json:"end_time,omitempty"`
	Duration     int64                  `json:"duration_ms"`
	Status       string                 `json:"status"`
	ErrorMessage string                 `json:"error_message,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

// Journal appends runs to runs_YYYY-MM-DD.jsonl files in a directory. A lock file serialises
// writers across processes.
type Journal struct {
	dir      string
	mu       sync.RWMutex
	lockFile *flock.Flock
	now      func() time.Time
}

// NewJournal creates the journal directory if needed.
func NewJournal(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create run log directory: %w", err)
	}
	return &Journal{
		dir:      dir,
		lockFile: flock.New(filepath.Join(dir, ".runs.lock")),
		now:      time.Now,
	}, nil
}

// Start records a new running run.
func (j *Journal) Start(command, dataModel string, args []string) (*Run, error) {
	run := &Run{
		ID:        uuid.New().String(),
		Command:   command,
		DataModel: dataModel,
		Args:      append([]string(nil), args...),
		StartTime: j.now(),
		Status:    StatusRunning,
	}
	if err := j.append(run); err != nil {
		return nil, err
	}
	return run, nil
}

// Complete marks run as completed.
func (j *Journal) Complete(run *Run) error {
	j.finish(run, StatusCompleted, "")
	return j.append(run)
}

// Fail marks run as failed with cause.
func (j *Journal) Fail(run *Run, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	j.finish(run, StatusFailed, msg)
	return j.append(run)
}

func (j *Journal) finish(run *Run, status, errorMessage string) {
	end := j.now()
	run.EndTime = &end
	run.Duration = end.Sub(run.StartTime).Milliseconds()
	run.Status = status
	run.ErrorMessage = errorMessage
}

// append writes run to the file of the day it started.
func (j *Journal) append(run *Run) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	locked, err := j.lockFile.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("could not acquire lock")
	}
	defer j.lockFile.Unlock()

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal run: %w", err)
	}

	f, err := os.OpenFile(j.fileFor(run.StartTime.Format(dateLayout)), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open run log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write run log: %w", err)
	}
	return nil
}

// Runs returns the latest state of every run started on date (YYYY-MM-DD), oldest first.
func (j *Journal) Runs(date string) ([]Run, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date: %w", err)
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	f, err := os.Open(j.fileFor(date))
	if err != nil {
		if os.IsNotExist(err) {
			return []Run{}, nil
		}
		return nil, fmt.Errorf("failed to read run log: %w", err)
	}
	defer f.Close()

	latest := make(map[string]Run)
	var order []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if len(scanner.Bytes()) == 0 {
			continue
		}
		var run Run
		if err := json.Unmarshal(scanner.Bytes(), &run); err != nil {
			return nil, fmt.Errorf("failed to parse run log: %w", err)
		}
		if _, seen := latest[run.ID]; !seen {
			order = append(order, run.ID)
		}
		latest[run.ID] = run
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read run log: %w", err)
	}

	runs := make([]Run, 0, len(order))
	for _, id := range order {
		runs = append(runs, latest[id])
	}
	sort.SliceStable(runs, func(a, b int) bool { return runs[a].StartTime.Before(runs[b].StartTime) })
	return runs, nil
}

// ListLogFiles returns all run log files
func (j *Journal) ListLogFiles() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(j.dir, "runs_*.jsonl"))
	if err != nil {
		return nil, fmt.Errorf("failed to list log files: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

// RotateOldLogs removes log files older than daysToKeep days
func (j *Journal) RotateOldLogs(daysToKeep int) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	cutoff := j.now().AddDate(0, 0, -daysToKeep)

	files, err := j.ListLogFiles()
	if err != nil {
		return err
	}

	for _, file := range files {
		base := filepath.Base(file)
		if len(base) < len("runs_2006-01-02.jsonl") {
			continue
		}
		fileDate, err := time.Parse(dateLayout, base[5:15])
		if err != nil {
			continue
		}
		if fileDate.Before(cutoff) {
			if err := os.Remove(file); err != nil {
				return fmt.Errorf("failed to remove old log file: %w", err)
			}
		}
	}
	return nil
}

func (j *Journal) fileFor(date string) string {
	return filepath.Join(j.dir, fmt.Sprintf("runs_%s.jsonl", date))
}
