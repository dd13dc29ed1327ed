// The command package runs external utilities (camera capture, remote copy,
// recursive delete) with an explicit argument vector. Nothing is passed through
// a shell, so option values and directory tokens are never interpreted.
package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"strings"
	"time"
)

var (
	Verbose bool
)

// Runner executes a named external command and blocks until it exits.
// A non-nil error is always of type *Error.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// Error describes a failed external invocation. ExitCode is -1 when the
// process never exited normally (spawn failure, killed on timeout).
type Error struct {
	Name     string
	Args     []string
	ExitCode int
	Stderr   string
	TimedOut bool
	Err      error
}

func (e *Error) Error() string {
	switch {
	case e.TimedOut:
		return fmt.Sprintf("%s timed out", e.Name)
	case e.Stderr != "":
		return e.Stderr
	case e.ExitCode > 0:
		return fmt.Sprintf("%s exited with status %d", e.Name, e.ExitCode)
	default:
		return fmt.Sprintf("%s: %v", e.Name, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands through os/exec, bounding each one by Timeout.
// A zero Timeout leaves the invocation bounded only by the caller's context.
type ExecRunner struct {
	Timeout time.Duration
}

// NewExecRunner creates a runner with the given per-invocation timeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{
		Timeout: timeout,
	}
}

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	if Verbose {
		log.Printf("exec: %s %s\n", name, strings.Join(args, " "))
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	cmdErr := &Error{
		Name:     name,
		Args:     args,
		ExitCode: -1,
		Stderr:   strings.TrimSpace(stderr.String()),
		Err:      err,
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		cmdErr.TimedOut = true
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		cmdErr.ExitCode = exitErr.ExitCode()
	}

	return cmdErr
}
