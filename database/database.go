package database

import (
	"context"
	"fmt"

	"github.com/go-pg/pg/v10"
)

// Singleton database connection
var (
	DbInstance *pg.DB
)

// Creates a new connection with a given postgres sql server, setting up the schemas for the db.
func NewConnection(options *pg.Options) (*pg.DB, error) {
	// Return already established connection if present.
	if DbInstance != nil {
		return DbInstance, nil
	}

	db := pg.Connect(options)
	if err := db.Ping(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to reach database: %v", err)
	}

	// Create schemas.
	if err := CreateJournalSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create journal schema: %v", err)
	}

	DbInstance = db
	return DbInstance, nil
}

// NewConnectionFromURL parses a postgres:// URL and connects with it.
func NewConnectionFromURL(url string) (*pg.DB, error) {
	options, err := pg.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database url: %v", err)
	}
	return NewConnection(options)
}

// Close tears down the singleton connection, if any.
func Close() error {
	if DbInstance == nil {
		return nil
	}
	err := DbInstance.Close()
	DbInstance = nil
	return err
}
