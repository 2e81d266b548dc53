package store_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/studiodesk/internal/client"
	"github.com/MrJamesThe3rd/studiodesk/internal/database"
	"github.com/MrJamesThe3rd/studiodesk/internal/workspace"
	"github.com/MrJamesThe3rd/studiodesk/internal/workspace/store"
)

func newStore(t *testing.T) *store.Store {
	t.Helper()

	db, err := database.New("sqlite", filepath.Join(t.TempDir(), "studio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return store.New(db, "sqlite")
}

func TestStore_SaveAndLoad(t *testing.T) {
	s := newStore(t)
	ctx := t.Context()

	empty, err := s.LoadCollections(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	err = s.SaveCollections(ctx, map[workspace.Collection][]byte{
		workspace.CollectionNotes:   []byte(`[{"id":"n1"}]`),
		workspace.CollectionClients: []byte(`[]`),
	})
	require.NoError(t, err)

	err = s.SaveCollections(ctx, map[workspace.Collection][]byte{
		workspace.CollectionNotes: []byte(`[{"id":"n1"},{"id":"n2"}]`),
	})
	require.NoError(t, err)

	docs, err := s.LoadCollections(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[workspace.Collection][]byte{
		workspace.CollectionNotes:   []byte(`[{"id":"n1"},{"id":"n2"}]`),
		workspace.CollectionClients: []byte(`[]`),
	}, docs)
}

func TestStore_WorkspaceRoundTrip(t *testing.T) {
	s := newStore(t)
	ctx := t.Context()

	svc, err := workspace.Open(ctx, s, nil)
	require.NoError(t, err)

	created, err := svc.CreateClient(ctx, client.CreateParams{
		Name:  "Ms. Lisa Tan",
		Email: "lisa.tan@email.com",
	})
	require.NoError(t, err)

	reopened, err := workspace.Open(ctx, s, nil)
	require.NoError(t, err)

	clients := reopened.Snapshot().Clients
	require.Len(t, clients, 1)
	assert.Equal(t, created.ID, clients[0].ID)
	assert.Equal(t, "Ms. Lisa Tan", clients[0].Name)
	assert.True(t, created.CreatedDate.Equal(clients[0].CreatedDate))
	assert.Empty(t, reopened.Snapshot().Projects)
}
