package database

import (
	"context"
	"fmt"

	"github.com/go-pg/pg/v10"
	"picam.api/v0/pkg/picture"
)

// Journal persists picture operation events.
type Journal struct {
	db *pg.DB
}

func NewJournal(db *pg.DB) *Journal {
	return &Journal{db: db}
}

// Record stores one finished operation.
func (j *Journal) Record(ctx context.Context, event picture.Event) error {
	entry := NewOperationEntry(event)
	if _, err := j.db.ModelContext(ctx, &entry).Insert(); err != nil {
		return fmt.Errorf("failed to insert %s journal entry: %v", event.Op, err)
	}
	return nil
}

// Recent returns the latest journal entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]OperationEntry, error) {
	entries := []OperationEntry{}
	if err := j.db.ModelContext(ctx, &entries).Order("id DESC").Limit(limit).Select(); err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %v", err)
	}
	return entries, nil
}

// NewOperationEntry converts an operation event into a journal row.
func NewOperationEntry(event picture.Event) OperationEntry {
	outcome := "ok"
	if event.Kind != 0 {
		outcome = event.Kind.String()
	}

	return OperationEntry{
		Op:         string(event.Op),
		Directory:  event.Directory,
		Name:       event.Name,
		Files:      event.Files,
		Outcome:    outcome,
		Message:    event.Message,
		StartedAt:  event.StartedAt,
		DurationMs: event.Duration.Milliseconds(),
	}
}
