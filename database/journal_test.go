package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"picam.api/v0/pkg/picture"
)

func TestNewOperationEntry_Success(t *testing.T) {
	started := time.Date(2024, time.May, 1, 14, 7, 9, 0, time.UTC)
	entry := NewOperationEntry(picture.Event{
		Op:        picture.OpCapture,
		Directory: "d1",
		Name:      "camera20709.jpg",
		StartedAt: started,
		Duration:  1500 * time.Millisecond,
	})

	assert.Equal(t, OperationEntry{
		Op:         "capture",
		Directory:  "d1",
		Name:       "camera20709.jpg",
		Outcome:    "ok",
		StartedAt:  started,
		DurationMs: 1500,
	}, entry)
}

func TestNewOperationEntry_Failure(t *testing.T) {
	entry := NewOperationEntry(picture.Event{
		Op:        picture.OpSync,
		Directory: "d1",
		Kind:      picture.KindTimeout,
		Message:   "rsync timed out",
	})

	assert.Equal(t, "sync", entry.Op)
	assert.Equal(t, "timeout", entry.Outcome)
	assert.Equal(t, "rsync timed out", entry.Message)
	assert.Zero(t, entry.Id)
}

func TestJournal_ImplementsRecorder(t *testing.T) {
	var _ picture.Recorder = NewJournal(nil)
}
