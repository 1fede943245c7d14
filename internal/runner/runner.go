package runner

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/lthummus/elapsed/durations"
	"github.com/lthummus/elapsed/internal/db"
)

const (
	ExitCodeFailed   = 1
	ExitCodeNotFound = 127
)

var ErrNoCommand = errors.New("runner: no command given")

// Runner times child processes. The child writes to Stdout and Stderr and reads from Stdin.
// A nil Stderr merges the child's stderr into Stdout. When DB is set, each run is recorded.
type Runner struct {
	Exec   Exec
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	DB     db.DB

	now func() time.Time
}

func New(database db.DB) *Runner {
	return &Runner{
		Exec:   &Process{},
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Stdin:  os.Stdin,
		DB:     database,
		now:    time.Now,
	}
}

// Run executes command with args, blocking until it exits. A child that fails or can't be
// started is not an error: the failure is captured in the returned Run. ctx is only used to
// record the run; it does not cancel the child.
func (r *Runner) Run(ctx context.Context, command string, args ...string) (*db.Run, error) {
	if command == "" {
		return nil, ErrNoCommand
	}

	now := r.now
	if now == nil {
		now = time.Now
	}

	run := &db.Run{
		ID:        uuid.NewString(),
		Command:   command,
		Args:      args,
		StartedAt: now(),
	}

	log.Debug().Str("run_id", run.ID).Str("command", command).Strs("args", args).Msg("starting command")

	timer := durations.Start()
	var err error
	if r.Stderr == nil {
		err = r.Exec.Stream(r.Stdout, r.Stdin, command, args...)
	} else {
		err = r.Exec.StreamSplit(r.Stdout, r.Stderr, r.Stdin, command, args...)
	}
	run.Elapsed = timer.Elapsed()
	run.Formatted = durations.FormatDuration(run.Elapsed)

	if err != nil {
		run.Error = err.Error()
		run.ExitCode = exitCode(err)
		log.Warn().Err(err).Str("run_id", run.ID).Int("exit_code", run.ExitCode).Str("elapsed", run.Formatted).Msg("command failed")
	} else {
		log.Debug().Str("run_id", run.ID).Str("elapsed", run.Formatted).Msg("command finished")
	}

	if r.DB != nil {
		if err := r.DB.SaveRun(ctx, run); err != nil {
			log.Warn().Err(err).Str("run_id", run.ID).Msg("could not record run in history")
		}
	}

	return run, nil
}

func exitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}

	if errors.Is(err, exec.ErrNotFound) {
		return ExitCodeNotFound
	}

	return ExitCodeFailed
}
