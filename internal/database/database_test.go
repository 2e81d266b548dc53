package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_SQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.db")

	db, err := New("sqlite", path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	// Migrations are idempotent.
	require.NoError(t, Migrate(t.Context(), db))

	var count int
	err = db.QueryRow(`SELECT COUNT(*) FROM collections`).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRebind(t *testing.T) {
	q := `SELECT body FROM collections WHERE name = $1 OR name = $12`

	assert.Equal(t, q, Rebind("pgx")(q))
	assert.Equal(t, `SELECT body FROM collections WHERE name = ?1 OR name = ?12`, Rebind("sqlite")(q))
}
