package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS description_mappings (
		id TEXT PRIMARY KEY,
		raw_pattern TEXT NOT NULL UNIQUE,
		preferred_description TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
}

// New opens the database for the given database/sql driver ("pgx" or
// "sqlite"), checks the connection and creates the schema.
func New(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	if driver == "sqlite" {
		// sqlite serialises writers; a single connection avoids SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := Migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func Migrate(ctx context.Context, db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("running migration %d: %w", i, err)
		}
	}

	return nil
}

var placeholder = regexp.MustCompile(`\$(\d+)`)

// Rebind returns a function adapting queries written with $N placeholders
// to driver. sqlite gets ?N; other drivers take the query as is.
func Rebind(driver string) func(string) string {
	if driver != "sqlite" {
		return func(q string) string { return q }
	}

	return func(q string) string { return placeholder.ReplaceAllString(q, "?$1") }
}
