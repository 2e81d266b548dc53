package fixture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
	"github.com/MrJamesThe3rd/studiodesk/internal/project"
	"github.com/MrJamesThe3rd/studiodesk/internal/user"
)

func TestEmbedded(t *testing.T) {
	data, err := Embedded()
	require.NoError(t, err)

	assert.Len(t, data.Users, 4)
	assert.Len(t, data.Clients, 4)
	assert.Len(t, data.Projects, 3)
	assert.Len(t, data.FinanceRecords, 3)
	assert.Len(t, data.ChatRooms, 4)
	assert.Len(t, data.Notes, 4)
	assert.Len(t, data.Documents, 5)

	summary := project.ComputeFinancialSummary(data.Projects)
	assert.Equal(t, 3, summary.TotalProjects)
	assert.Equal(t, 2, summary.ActiveProjects)
	assert.Equal(t, int64(6_600_000), summary.TotalConsultantFees)
	assert.Equal(t, 1, summary.PendingSubmissions)
	assert.Equal(t, 3, summary.ApprovedSubmissions)

	villa := data.FinanceRecords[0]
	assert.Equal(t, int64(250_000_000), villa.TotalAmount)
	assert.Equal(t, int64(150_000_000), villa.PaidAmount)
	assert.Equal(t, int64(100_000_000), villa.Balance)

	for _, r := range data.FinanceRecords {
		assert.Equal(t, r, finance.Recompute(r, r.Payments))
	}
}

func TestEmbedded_PasswordsHashed(t *testing.T) {
	data, err := Embedded()
	require.NoError(t, err)

	for _, u := range data.Users {
		assert.NotEmpty(t, u.PasswordHash)
		assert.True(t, strings.HasPrefix(u.PasswordHash, "$2a$"), "unhashed password for %s", u.Username)
	}

	u, err := user.Authenticate(data.Users, "designer", "design123")
	require.NoError(t, err)
	assert.Equal(t, "Sarah Designer", u.FullName)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "studio.json")
	body := `{"clients":[{"id":"c9","name":"Café Kopi","projectIds":[],"createdDate":"2024-05-01T00:00:00Z","totalSpent":0}]}`

	// Windows-1252 é.
	raw := []byte(strings.Replace(body, "é", "\xe9", 1))
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	data, err := Load(path)
	require.NoError(t, err)
	require.Len(t, data.Clients, 1)
	assert.Equal(t, "Café Kopi", data.Clients[0].Name)
	assert.Empty(t, data.Users)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
