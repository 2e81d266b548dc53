package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/studiodesk/internal/database"
)

type Store struct {
	db     *sql.DB
	rebind func(string) string
}

func New(db *sql.DB, driver string) *Store {
	return &Store{db: db, rebind: database.Rebind(driver)}
}

// FindMatch returns the description of the longest pattern contained in
// rawDescription, ignoring case.
func (s *Store) FindMatch(ctx context.Context, rawDescription string) (string, error) {
	query := s.rebind(`
		SELECT preferred_description
		FROM description_mappings
		WHERE LOWER($1) LIKE '%' || LOWER(raw_pattern) || '%'
		ORDER BY LENGTH(raw_pattern) DESC, created_at DESC
		LIMIT 1
	`)

	var preferred string

	err := s.db.QueryRowContext(ctx, query, rawDescription).Scan(&preferred)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}

		return "", fmt.Errorf("finding match: %w", err)
	}

	return preferred, nil
}

func (s *Store) CreateMapping(ctx context.Context, rawPattern, preferredDescription string) error {
	query := s.rebind(`
		INSERT INTO description_mappings (id, raw_pattern, preferred_description, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (raw_pattern) DO UPDATE SET preferred_description = excluded.preferred_description
	`)

	_, err := s.db.ExecContext(ctx, query, uuid.NewString(), rawPattern, preferredDescription, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("creating mapping: %w", err)
	}

	return nil
}
