package http_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/studiodesk/internal/chat"
	"github.com/MrJamesThe3rd/studiodesk/internal/database"
	"github.com/MrJamesThe3rd/studiodesk/internal/document"
	"github.com/MrJamesThe3rd/studiodesk/internal/export"
	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
	"github.com/MrJamesThe3rd/studiodesk/internal/fixture"
	studioHttp "github.com/MrJamesThe3rd/studiodesk/internal/http"
	authHandler "github.com/MrJamesThe3rd/studiodesk/internal/http/auth"
	chatHandler "github.com/MrJamesThe3rd/studiodesk/internal/http/chat"
	clientHandler "github.com/MrJamesThe3rd/studiodesk/internal/http/client"
	dashboardHandler "github.com/MrJamesThe3rd/studiodesk/internal/http/dashboard"
	documentHandler "github.com/MrJamesThe3rd/studiodesk/internal/http/document"
	exportHandler "github.com/MrJamesThe3rd/studiodesk/internal/http/export"
	financeHandler "github.com/MrJamesThe3rd/studiodesk/internal/http/finance"
	importHandler "github.com/MrJamesThe3rd/studiodesk/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/studiodesk/internal/http/matching"
	noteHandler "github.com/MrJamesThe3rd/studiodesk/internal/http/note"
	projectHandler "github.com/MrJamesThe3rd/studiodesk/internal/http/project"
	userHandler "github.com/MrJamesThe3rd/studiodesk/internal/http/user"
	"github.com/MrJamesThe3rd/studiodesk/internal/importer"
	"github.com/MrJamesThe3rd/studiodesk/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/studiodesk/internal/matching/store"
	"github.com/MrJamesThe3rd/studiodesk/internal/note"
	"github.com/MrJamesThe3rd/studiodesk/internal/project"
	"github.com/MrJamesThe3rd/studiodesk/internal/session"
	"github.com/MrJamesThe3rd/studiodesk/internal/workspace"
	workspaceStore "github.com/MrJamesThe3rd/studiodesk/internal/workspace/store"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()

	db, err := database.New("sqlite", filepath.Join(t.TempDir(), "studio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	seed, err := fixture.Embedded()
	require.NoError(t, err)

	svc, err := workspace.Open(t.Context(), workspaceStore.New(db, "sqlite"), seed)
	require.NoError(t, err)

	matchingService := matching.NewService(matchingStore.New(db, "sqlite"))

	return studioHttp.New(studioHttp.Handlers{
		Auth:      authHandler.NewHandler(svc, session.NewManager("test-secret", time.Hour)),
		Users:     userHandler.NewHandler(svc),
		Dashboard: dashboardHandler.NewHandler(svc),
		Projects:  projectHandler.NewHandler(svc),
		Clients:   clientHandler.NewHandler(svc),
		Finance:   financeHandler.NewHandler(svc),
		Notes:     noteHandler.NewHandler(svc),
		Chat:      chatHandler.NewHandler(svc),
		Documents: documentHandler.NewHandler(svc),
		Import:    importHandler.NewHandler(importer.NewService(), svc, matchingService),
		Matching:  matchingHandler.NewHandler(matchingService),
		Export:    exportHandler.NewHandler(export.NewService(svc, "")),
	}, []string{"http://localhost:3000"})
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func login(t *testing.T, h http.Handler, username, password string) string {
	t.Helper()

	rec := do(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string               `json:"token"`
		User  userHandler.Response `json:"user"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	assert.True(t, resp.User.IsOnline)
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	return resp.Token
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))

	return v
}

func TestRouter_Health(t *testing.T) {
	h := newRouter(t)

	rec := do(t, h, http.MethodGet, "/api/health", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
}

func TestRouter_Auth(t *testing.T) {
	h := newRouter(t)

	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/api/v1/projects", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/api/v1/projects", "garbage", nil).Code)

	bad := do(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, bad.Code)

	token := login(t, h, "manager", "manager123")

	me := do(t, h, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, me.Code)
	assert.Equal(t, "John Manager", decode[userHandler.Response](t, me).FullName)

	online := decode[[]userHandler.Response](t, do(t, h, http.MethodGet, "/api/v1/users?online=true", token, nil))
	assert.Len(t, online, 4)

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodPost, "/api/v1/auth/logout", token, nil).Code)

	online = decode[[]userHandler.Response](t, do(t, h, http.MethodGet, "/api/v1/users?online=true", token, nil))
	require.Len(t, online, 3)

	for _, u := range online {
		assert.NotEqual(t, "3", u.ID)
	}

	all := decode[[]userHandler.Response](t, do(t, h, http.MethodGet, "/api/v1/users", token, nil))
	require.Len(t, all, 4)
	assert.NotNil(t, all[2].LastSeen)
}

func TestRouter_Dashboard(t *testing.T) {
	h := newRouter(t)
	token := login(t, h, "admin", "admin123")

	summary := decode[project.FinancialSummary](t, do(t, h, http.MethodGet, "/api/v1/dashboard/summary", token, nil))

	assert.Equal(t, project.FinancialSummary{
		TotalProjects:       3,
		ActiveProjects:      2,
		TotalConsultantFees: 6_600_000,
		PendingSubmissions:  1,
		ApprovedSubmissions: 3,
	}, summary)

	overview := decode[workspace.Overview](t, do(t, h, http.MethodGet, "/api/v1/dashboard/overview", token, nil))
	assert.Len(t, overview.Breakdown, 3)
	assert.Equal(t, 3, overview.OnlineUsers)

	pending := decode[[]project.TimelineEntry](t, do(t, h, http.MethodGet, "/api/v1/submissions?status=pending", token, nil))
	require.Len(t, pending, 1)
	assert.Equal(t, "s1", pending[0].Submission.ID)
}

func TestRouter_Projects(t *testing.T) {
	h := newRouter(t)
	token := login(t, h, "manager", "manager123")

	found := decode[[]project.Project](t, do(t, h, http.MethodGet, "/api/v1/projects?q=klcc", token, nil))
	require.Len(t, found, 1)
	assert.Equal(t, "2", found[0].ID)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/projects/missing", token, nil).Code)
	assert.Equal(t, http.StatusBadRequest,
		do(t, h, http.MethodPatch, "/api/v1/projects/2", token, map[string]string{"status": "archived"}).Code)

	upd := do(t, h, http.MethodPatch, "/api/v1/projects/2", token, map[string]string{"status": "on-hold"})
	require.Equal(t, http.StatusOK, upd.Code)
	assert.Equal(t, project.StatusOnHold, decode[project.Project](t, upd).Status)

	assert.Equal(t, http.StatusBadRequest,
		do(t, h, http.MethodPost, "/api/v1/projects/2/submissions", token, map[string]any{"type": "zoning"}).Code)

	sub := do(t, h, http.MethodPost, "/api/v1/projects/2/submissions", token, map[string]any{
		"type":          "fire-safety",
		"authority":     "Bomba",
		"consultantFee": 500_000,
	})
	require.Equal(t, http.StatusCreated, sub.Code)
	created := decode[project.Submission](t, sub)
	assert.Equal(t, project.SubmissionPending, created.Status)

	fin := decode[project.Financials](t, do(t, h, http.MethodGet, "/api/v1/projects/2/financials", token, nil))
	assert.Equal(t, int64(3_000_000), fin.PendingFees)

	assert.Equal(t, http.StatusBadRequest,
		do(t, h, http.MethodPatch, "/api/v1/projects/2/submissions/"+created.ID, token, map[string]string{"type": "zoning"}).Code)

	patched := do(t, h, http.MethodPatch, "/api/v1/projects/2/submissions/"+created.ID, token, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, patched.Code)
	assert.Equal(t, project.SubmissionApproved, decode[project.Submission](t, patched).Status)

	newProject := do(t, h, http.MethodPost, "/api/v1/projects", token, map[string]any{
		"title":     "Condo Fit-out",
		"clientId":  "c4",
		"startDate": "2025-01-06T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, newProject.Code)
	p := decode[project.Project](t, newProject)
	assert.Equal(t, "Ms. Lisa Tan", p.ClientName)

	byClient := decode[[]project.Project](t, do(t, h, http.MethodGet, "/api/v1/projects?q=lisa", token, nil))
	assert.Contains(t, projectIDs(byClient), p.ID)

	assert.Equal(t, http.StatusBadRequest,
		do(t, h, http.MethodPost, "/api/v1/projects/"+p.ID+"/documents", token, map[string]string{"name": "plan.dwg", "type": "zip"}).Code)

	doc := do(t, h, http.MethodPost, "/api/v1/projects/"+p.ID+"/documents", token, map[string]string{"name": "plan.dwg"})
	require.Equal(t, http.StatusCreated, doc.Code)
	assert.Equal(t, document.TypeOther, decode[document.Document](t, doc).Type)

	rec := do(t, h, http.MethodGet, "/api/v1/finance/"+p.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[finance.Record](t, rec).Payments)
}

func projectIDs(projects []project.Project) []string {
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}

	return ids
}

func TestRouter_Payments(t *testing.T) {
	h := newRouter(t)
	token := login(t, h, "finance", "finance123")

	paid := decode[[]finance.Payment](t, do(t, h, http.MethodGet, "/api/v1/finance/1/payments?status=paid", token, nil))
	assert.Len(t, paid, 2)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/v1/finance/1/payments?status=bogus", token, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/finance/missing/payments", token, nil).Code)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/v1/finance/1/payments", token, map[string]any{
		"type":   "bribe",
		"amount": 100,
	}).Code)

	rec := do(t, h, http.MethodPost, "/api/v1/finance/1/payments", token, map[string]any{
		"type":        "material",
		"description": "Marble slabs",
		"amount":      1_200_000,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[finance.Payment](t, rec)
	assert.Equal(t, finance.StatusPending, created.Status)

	rec = do(t, h, http.MethodPatch, "/api/v1/finance/1/payments/"+created.ID, token, map[string]any{
		"paidAmount": 1_200_000,
		"status":     "paid",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, http.StatusBadRequest,
		do(t, h, http.MethodPatch, "/api/v1/finance/1/payments/"+created.ID, token, map[string]string{"type": "bribe"}).Code)

	record := decode[finance.Record](t, do(t, h, http.MethodGet, "/api/v1/finance/1", token, nil))
	require.Len(t, record.Payments, 4)
	assert.Equal(t, record.TotalAmount-record.PaidAmount, record.Balance)

	assert.Equal(t, http.StatusNotFound,
		do(t, h, http.MethodPatch, "/api/v1/finance/1/payments/missing", token, map[string]string{"notes": "x"}).Code)
}

func TestRouter_Notes(t *testing.T) {
	h := newRouter(t)
	token := login(t, h, "designer", "design123")

	rec := do(t, h, http.MethodPost, "/api/v1/notes", token, map[string]string{
		"title":    "Mood board",
		"category": "idea",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[note.Note](t, rec)
	assert.Equal(t, "2", created.CreatedBy)
	assert.Equal(t, note.PriorityMedium, created.Priority)

	pinned := decode[note.Note](t, do(t, h, http.MethodPost, "/api/v1/notes/"+created.ID+"/pin", token, nil))
	assert.True(t, pinned.IsPinned)

	ideas := decode[[]note.Note](t, do(t, h, http.MethodGet, "/api/v1/notes?category=idea", token, nil))
	require.Len(t, ideas, 2)
	assert.Equal(t, created.ID, ideas[0].ID)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/api/v1/notes?category=bogus", token, nil).Code)
	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, "/api/v1/notes/"+created.ID, token, nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, "/api/v1/notes/"+created.ID, token, nil).Code)
}

func TestRouter_Chat(t *testing.T) {
	h := newRouter(t)
	token := login(t, h, "admin", "admin123")

	assert.Equal(t, http.StatusNoContent,
		do(t, h, http.MethodPost, "/api/v1/chat/rooms/room4/messages", token, map[string]string{"message": "   "}).Code)
	assert.Equal(t, http.StatusNotFound,
		do(t, h, http.MethodPost, "/api/v1/chat/rooms/missing/messages", token, map[string]string{"message": "hi"}).Code)

	rec := do(t, h, http.MethodPost, "/api/v1/chat/rooms/room4/messages", token, map[string]string{"message": "Palette approved"})
	require.Equal(t, http.StatusCreated, rec.Code)
	msg := decode[chat.Message](t, rec)
	assert.Equal(t, "Admin User", msg.Username)
	assert.Equal(t, "1", msg.UserID)

	room := decode[chat.Room](t, do(t, h, http.MethodGet, "/api/v1/chat/rooms/room4", token, nil))
	require.Len(t, room.Messages, 2)
	assert.Equal(t, msg.ID, room.Messages[1].ID)
}

func TestRouter_ImportConflictThenConfirm(t *testing.T) {
	h := newRouter(t)
	token := login(t, h, "finance", "finance123")

	ledgerCSV := "Date;Type;Description;Amount;Paid;Status;Invoice\n" +
		"20-01-2024;deposit;Initial Deposit;7.500,00;7.500,00;paid;INV-2024-001\n" +
		"01-02-2025;material;Lighting fixtures;3.000,00;;;\n"

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("format", "ledger"))
	fw, err := mw.CreateFormFile("file", "ledger.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(ledgerCSV))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import/1", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())

	var conflict struct {
		New       []finance.PaymentParams `json:"new"`
		Conflicts []finance.Conflict      `json:"conflicts"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&conflict))
	require.Len(t, conflict.Conflicts, 1)
	require.Len(t, conflict.New, 1)
	assert.Equal(t, "p1", conflict.Conflicts[0].Existing.ID)

	record := decode[finance.Record](t, do(t, h, http.MethodGet, "/api/v1/finance/1", token, nil))
	assert.Len(t, record.Payments, 3)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/api/v1/import/1/confirm", token, map[string]any{
		"params":  conflict.New,
		"replace": map[string]finance.PaymentParams{"missing": conflict.Conflicts[0].Incoming},
	}).Code)

	rec = do(t, h, http.MethodPost, "/api/v1/import/1/confirm", token, map[string]any{
		"params":  conflict.New,
		"replace": map[string]finance.PaymentParams{"p1": conflict.Conflicts[0].Incoming},
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var confirmed struct {
		Imported int               `json:"imported"`
		Replaced []finance.Payment `json:"replaced"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&confirmed))
	assert.Equal(t, 1, confirmed.Imported)
	require.Len(t, confirmed.Replaced, 1)
	assert.Equal(t, "p1", confirmed.Replaced[0].ID)

	record = decode[finance.Record](t, do(t, h, http.MethodGet, "/api/v1/finance/1", token, nil))
	require.Len(t, record.Payments, 4)
	assert.Equal(t, "Initial Deposit", record.Payments[0].Description)
	assert.Equal(t, "Lighting fixtures", record.Payments[3].Description)
}

func TestRouter_Export(t *testing.T) {
	h := newRouter(t)
	token := login(t, h, "admin", "admin123")

	rec := do(t, h, http.MethodPost, "/api/v1/export", token, map[string]string{"projectId": "1", "status": "paid"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Payments  []finance.Payment `json:"payments"`
		Documents []json.RawMessage `json:"documents"`
		Statement string            `json:"statement"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Len(t, resp.Payments, 2)
	assert.Len(t, resp.Documents, 3)
	assert.True(t, strings.HasPrefix(resp.Statement, "Residential Villa - Damansara Heights\n"))

	assert.Equal(t, http.StatusNotFound,
		do(t, h, http.MethodPost, "/api/v1/export", token, map[string]string{"projectId": "missing"}).Code)

	zipRec := do(t, h, http.MethodPost, "/api/v1/export/download", token, map[string]string{"projectId": "1"})
	require.Equal(t, http.StatusOK, zipRec.Code)
	assert.Equal(t, "application/zip", zipRec.Header().Get("Content-Type"))
}
