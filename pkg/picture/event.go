package picture

import (
	"context"
	"time"
)

// Op names a Service operation.
type Op string

const (
	OpCapture  Op = "capture"
	OpSync     Op = "sync"
	OpDelete   Op = "delete"
	OpPurgeAll Op = "purge_all"
)

// Event describes one finished operation. Kind and Message are empty on
// success.
type Event struct {
	Op        Op
	Directory string
	Name      string
	Files     int
	Kind      Kind
	Message   string
	StartedAt time.Time
	Duration  time.Duration
}

// Recorder receives an Event after every operation. Recording failures are
// logged and never change the operation's outcome.
type Recorder interface {
	Record(ctx context.Context, event Event) error
}
