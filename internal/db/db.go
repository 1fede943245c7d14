package db

import (
	"context"
	"errors"
	"time"
)

var ErrRunNotFound = errors.New("database: run not found")

// Run is one timed execution of a command.
type Run struct {
	ID        string        `yaml:"id"`
	Command   string        `yaml:"command"`
	Args      []string      `yaml:"args,omitempty"`
	StartedAt time.Time     `yaml:"started_at"`
	Elapsed   time.Duration `yaml:"elapsed"`
	Formatted string        `yaml:"formatted"`
	ExitCode  int           `yaml:"exit_code"`
	Error     string        `yaml:"error,omitempty"`
}

func (r *Run) Succeeded() bool {
	return r.ExitCode == 0 && r.Error == ""
}

type DB interface {
	SaveRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]*Run, error)
	ClearRuns(ctx context.Context) (int64, error)

	Close() error
}
