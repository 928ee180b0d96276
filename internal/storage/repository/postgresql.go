// Package repository implements the PostgreSQL storage for users, listings,
// likes, messages, notifications, news and payments.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	// Register the pgx driver for database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage wraps the PostgreSQL connection and implements every repository
// method of the service layer.
type Storage struct {
	DB *sql.DB
}

// New opens a connection to PostgreSQL and verifies it with a ping.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady verifies the core table exists after migrations.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'listings'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table listings missing or query error: %w", err)
	}
	return nil
}
