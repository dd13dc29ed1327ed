// The picture package orchestrates capturing, syncing and deleting session
// directories of pictures underneath a single picture root. Every operation
// is a short linear pipeline whose first failing step ends it with an *Error.
package picture

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"picam.api/v0/pkg/command"
	fileio "picam.api/v0/utils/fileIO"
)

type Service struct {
	settings Settings
	runner   command.Runner
	recorder Recorder
	metrics  *Metrics
	now      func() time.Time
	locks    *dirLocks
}

type ServiceOption func(*Service)

// WithRecorder hands every finished operation to r.
func WithRecorder(r Recorder) ServiceOption {
	return func(s *Service) {
		s.recorder = r
	}
}

// WithMetrics records operation counts and durations in m.
func WithMetrics(m *Metrics) ServiceOption {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides the clock used for naming captured files.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service and provisions the picture root. Failing to
// create the root is fatal for the caller: no request can be served without it.
func NewService(settings Settings, runner command.Runner, opts ...ServiceOption) (*Service, error) {
	if settings.Root == "" {
		return nil, fmt.Errorf("picture root cannot be empty")
	}
	if runner == nil {
		return nil, fmt.Errorf("command runner cannot be nil")
	}

	settings = settings.withDefaults()
	if err := fileio.EnsureDir(settings.Root); err != nil {
		return nil, fmt.Errorf("failed to provision picture root: %w", err)
	}

	s := &Service{
		settings: settings,
		runner:   runner,
		now:      time.Now,
		locks:    newDirLocks(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Settings returns a copy of the service configuration.
func (s *Service) Settings() Settings {
	return s.settings
}

// resolve validates a directory token and returns its normalized form along
// with the absolute session directory path.
func (s *Service) resolve(op Op, directory string) (string, string, error) {
	if strings.TrimSpace(directory) == "" {
		return "", "", validationError(op, ErrMissingDirectory)
	}
	if !filepath.IsLocal(directory) {
		return "", "", validationError(op, ErrInvalidDirectory)
	}

	// A token that cleans to "." names the root itself, not a session directory.
	token := filepath.ToSlash(filepath.Clean(directory))
	if token == "." {
		return "", "", validationError(op, ErrInvalidDirectory)
	}
	return token, filepath.Join(s.settings.Root, token), nil
}

// finish completes the bookkeeping shared by all operations.
func (s *Service) finish(ctx context.Context, event *Event, err error) {
	event.Duration = time.Since(event.StartedAt)
	if err != nil {
		event.Kind = KindOf(err)
		event.Message = err.Error()
		log.Printf("%s '%s' failed [%s]: %v\n", event.Op, event.Directory, event.Kind, err)
	}

	s.metrics.observe(event.Op, event.Kind, event.Duration)

	if s.recorder != nil {
		if rerr := s.recorder.Record(ctx, *event); rerr != nil {
			log.Printf("Failed to record %s event: %v\n", event.Op, rerr)
		}
	}
}
