package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"github.com/MrJamesThe3rd/studiodesk/internal/database"
	"github.com/MrJamesThe3rd/studiodesk/internal/workspace"
)

type Store struct {
	db     *sql.DB
	rebind func(string) string
}

// New returns a store over db. driver is the database/sql driver name the
// connection was opened with.
func New(db *sql.DB, driver string) *Store {
	return &Store{db: db, rebind: database.Rebind(driver)}
}

func (s *Store) LoadCollections(ctx context.Context) (map[workspace.Collection][]byte, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, body FROM collections`)
	if err != nil {
		return nil, fmt.Errorf("loading collections: %w", err)
	}
	defer rows.Close()

	docs := make(map[workspace.Collection][]byte)

	for rows.Next() {
		var (
			name string
			body string
		)

		if err := rows.Scan(&name, &body); err != nil {
			return nil, fmt.Errorf("scanning collection: %w", err)
		}

		docs[workspace.Collection(name)] = []byte(body)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating collections: %w", err)
	}

	return docs, nil
}

func (s *Store) SaveCollections(ctx context.Context, docs map[workspace.Collection][]byte) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	query := s.rebind(`
		INSERT INTO collections (name, body, updated_at)
		VALUES ($1, $2, CURRENT_TIMESTAMP)
		ON CONFLICT (name) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`)

	// Sorted so concurrent writers lock rows in the same order.
	names := make([]workspace.Collection, 0, len(docs))
	for name := range docs {
		names = append(names, name)
	}

	slices.Sort(names)

	for _, name := range names {
		if _, err := tx.ExecContext(ctx, query, string(name), string(docs[name])); err != nil {
			return fmt.Errorf("saving collection %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing collections: %w", err)
	}

	return nil
}
