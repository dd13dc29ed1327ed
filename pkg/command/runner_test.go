package command

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecRunner_Success(t *testing.T) {
	r := NewExecRunner(5 * time.Second)
	require.NoError(t, r.Run(context.Background(), "sh", "-c", "exit 0"))
}

func TestExecRunner_NonZeroExitCarriesStderr(t *testing.T) {
	r := NewExecRunner(5 * time.Second)
	err := r.Run(context.Background(), "sh", "-c", "echo 'camera not detected' >&2; exit 70")
	require.Error(t, err)

	var cmdErr *Error
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 70, cmdErr.ExitCode)
	assert.False(t, cmdErr.TimedOut)
	assert.Equal(t, "camera not detected", cmdErr.Stderr)
	assert.Equal(t, "camera not detected", err.Error())
}

func TestExecRunner_NonZeroExitWithoutStderr(t *testing.T) {
	r := NewExecRunner(5 * time.Second)
	err := r.Run(context.Background(), "sh", "-c", "exit 3")

	var cmdErr *Error
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, "sh exited with status 3", err.Error())
}

func TestExecRunner_SpawnFailure(t *testing.T) {
	r := NewExecRunner(5 * time.Second)
	err := r.Run(context.Background(), "picam-no-such-binary")

	var cmdErr *Error
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, -1, cmdErr.ExitCode)
	assert.False(t, cmdErr.TimedOut)
	assert.Contains(t, err.Error(), "picam-no-such-binary")
}

func TestExecRunner_Timeout(t *testing.T) {
	r := NewExecRunner(50 * time.Millisecond)

	start := time.Now()
	err := r.Run(context.Background(), "sleep", "5")
	require.Error(t, err)
	assert.Less(t, time.Since(start), 4*time.Second)

	var cmdErr *Error
	require.True(t, errors.As(err, &cmdErr))
	assert.True(t, cmdErr.TimedOut)
	assert.Equal(t, "sleep timed out", err.Error())
}

func TestExecRunner_ArgumentsAreNotShellInterpreted(t *testing.T) {
	r := NewExecRunner(5 * time.Second)
	dir := t.TempDir()

	// A value that would create a file if it went through a shell.
	require.NoError(t, r.Run(context.Background(), "echo", "x; touch "+dir+"/pwned"))
	require.NoFileExists(t, dir+"/pwned")
}
