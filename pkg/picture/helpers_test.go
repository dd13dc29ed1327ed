package picture

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"picam.api/v0/pkg/command"
)

type call struct {
	name string
	args []string
}

// fakeRunner records invocations and optionally simulates the tool.
type fakeRunner struct {
	mu    sync.Mutex
	calls []call
	run   func(name string, args []string) error
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) error {
	f.mu.Lock()
	f.calls = append(f.calls, call{name: name, args: append([]string(nil), args...)})
	run := f.run
	f.mu.Unlock()

	if run != nil {
		return run(name, args)
	}
	return nil
}

func (f *fakeRunner) Calls() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

// simulateTools behaves like raspistill (writes the -o file), rsync (no-op)
// and rm -r (removes the last argument, failing when it is missing).
func simulateTools(name string, args []string) error {
	switch name {
	case DefaultCaptureCommand:
		for i := 0; i+1 < len(args); i++ {
			if args[i] == "-o" {
				return os.WriteFile(args[i+1], []byte("jpeg"), 0o644)
			}
		}
		return fmt.Errorf("no output path")
	case DefaultDeleteCommand:
		target := args[len(args)-1]
		if _, err := os.Stat(target); err != nil {
			return &command.Error{
				Name:     name,
				Args:     args,
				ExitCode: 1,
				Stderr:   fmt.Sprintf("rm: cannot remove '%s': No such file or directory", target),
			}
		}
		return os.RemoveAll(target)
	default:
		return nil
	}
}

type recordingRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingRecorder) Record(ctx context.Context, event Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingRecorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// 14:07:09 renders as "20709".
var fixedTime = time.Date(2024, time.May, 1, 14, 7, 9, 0, time.UTC)

func testSettings(t *testing.T) Settings {
	t.Helper()
	return Settings{
		Root:       filepath.Join(t.TempDir(), "pictures"),
		Suffix:     ".jpg",
		KeyFile:    "/home/pi/cloud.pem",
		RemoteUser: "pi",
		RemoteHost: "cloud.example.com",
	}
}

func newTestService(t *testing.T, runner command.Runner, opts ...ServiceOption) *Service {
	t.Helper()
	opts = append([]ServiceOption{WithClock(func() time.Time { return fixedTime })}, opts...)
	svc, err := NewService(testSettings(t), runner, opts...)
	require.NoError(t, err)
	return svc
}

func requireKind(t *testing.T, err error, kind Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), "unexpected failure kind for %v", err)
}
