package database

import (
	"fmt"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

// OperationEntry is one row of the operation journal. The journal is an
// audit trail only; a session directory's state is its presence on disk.
type OperationEntry struct {
	Id         uint64
	Op         string
	Directory  string
	Name       string
	Files      int
	Outcome    string
	Message    string
	StartedAt  time.Time
	DurationMs int64
}

func CreateJournalSchema(db *pg.DB) error {
	models := []interface{}{
		(*OperationEntry)(nil),
	}

	// Attempt to create the table schemas
	for _, model := range models {
		if err := db.Model(model).CreateTable(&orm.CreateTableOptions{
			IfNotExists: true,
		}); err != nil {
			return fmt.Errorf("failed to create tables: %v", err)
		}
	}

	return nil
}
