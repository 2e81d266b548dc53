package export

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/MrJamesThe3rd/studiodesk/internal/document"
	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
	"github.com/MrJamesThe3rd/studiodesk/internal/project"
)

type fakeSource struct {
	project project.Project
	record  finance.Record
	docs    []document.Document
	err     error
}

func (f *fakeSource) GetProject(id string) (project.Project, error) {
	if f.err != nil {
		return project.Project{}, f.err
	}

	return f.project, nil
}

func (f *fakeSource) FinanceRecord(projectID string) (finance.Record, error) {
	return f.record, nil
}

func (f *fakeSource) Documents(projectID string) []document.Document {
	return f.docs
}

func TestExportService_Export(t *testing.T) {
	var gotToken string

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("Authorization")

		switch r.URL.Path {
		case "/concept.pdf":
			w.Header().Set("Content-Type", "application/pdf")
			w.Header().Set("Content-Disposition", "attachment; filename=\"Concept Design.pdf\"")
			w.Write([]byte("fake pdf content"))
		case "/files/42":
			w.Header().Set("Content-Type", "application/pdf")
			w.Write([]byte("fake pdf content"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer ts.Close()

	tmpDir := t.TempDir()
	uploaded := time.Date(2024, 11, 15, 14, 30, 0, 0, time.UTC)

	src := &fakeSource{
		project: project.Project{
			ID:    "1",
			Title: "Residential Villa - Damansara Heights",
			Submissions: []project.Submission{
				{ID: "s1", Status: project.SubmissionApproved, ConsultantFee: 800_000},
				{ID: "s2", Status: project.SubmissionPending, ConsultantFee: 1_500_000},
			},
		},
		record: finance.Recompute(finance.Record{ID: "f1", ProjectID: "1"}, []finance.Payment{
			{ID: "p1", Amount: 750_000, PaidAmount: 750_000, Status: finance.StatusPaid},
			{ID: "p3", Amount: 1_000_000, Status: finance.StatusPending},
		}),
		docs: []document.Document{
			{ID: "d1", Name: "Concept Design Presentation.pdf", UploadedAt: uploaded, URL: ts.URL + "/concept.pdf"},
			{ID: "d3", Name: "Kitchen Layout Plan.pdf", UploadedAt: uploaded, URL: ts.URL + "/files/42"},
			{ID: "d2", Name: "Material Schedule v2.xlsx", UploadedAt: uploaded},
		},
	}

	service := NewService(src, "test-token")

	st, err := service.Export(context.Background(), Filter{ProjectID: "1", Status: finance.StatusPending}, tmpDir)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if gotToken != "Token test-token" {
		t.Errorf("expected token header, got %q", gotToken)
	}

	if len(st.Payments) != 1 || st.Payments[0].ID != "p3" {
		t.Errorf("expected only pending payment p3, got %+v", st.Payments)
	}

	if st.Financials.PaidFees != 800_000 || st.Financials.PendingFees != 1_500_000 {
		t.Errorf("unexpected financials %+v", st.Financials)
	}

	if len(st.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(st.Items))
	}

	if filepath.Base(st.Items[0].FilePath) != "Concept_Design.pdf" {
		t.Errorf("expected Concept_Design.pdf, got %s", filepath.Base(st.Items[0].FilePath))
	}

	content, _ := os.ReadFile(st.Items[0].FilePath)
	if string(content) != "fake pdf content" {
		t.Errorf("file content mismatch")
	}

	if filepath.Base(st.Items[1].FilePath) != "Kitchen_Layout_Plan.pdf" {
		t.Errorf("expected Kitchen_Layout_Plan.pdf, got %s", filepath.Base(st.Items[1].FilePath))
	}

	if st.Items[2].FilePath != "" {
		t.Errorf("expected empty file path for item 3, got %s", st.Items[2].FilePath)
	}
}

func TestExportService_Export_DuplicateNames(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	}))
	defer ts.Close()

	tmpDir := t.TempDir()

	src := &fakeSource{
		project: project.Project{ID: "1"},
		record:  finance.Record{ID: "f1", ProjectID: "1"},
		docs: []document.Document{
			{ID: "d1", Name: "Floor Plan.pdf", URL: ts.URL + "/a"},
			{ID: "d2", Name: "Floor Plan.pdf", URL: ts.URL + "/b"},
		},
	}

	st, err := NewService(src, "").Export(context.Background(), Filter{ProjectID: "1"}, tmpDir)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	if filepath.Base(st.Items[0].FilePath) != "Floor_Plan.pdf" {
		t.Errorf("expected Floor_Plan.pdf, got %s", filepath.Base(st.Items[0].FilePath))
	}

	if filepath.Base(st.Items[1].FilePath) != "d2_Floor_Plan.pdf" {
		t.Errorf("expected d2_Floor_Plan.pdf, got %s", filepath.Base(st.Items[1].FilePath))
	}

	first, _ := os.ReadFile(st.Items[0].FilePath)
	second, _ := os.ReadFile(st.Items[1].FilePath)

	if string(first) != "/a" || string(second) != "/b" {
		t.Errorf("expected both downloads kept, got %q and %q", first, second)
	}
}

func TestExportService_Export_Errors(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	notFound := errors.New("not found")

	svc := NewService(&fakeSource{err: notFound}, "")
	if _, err := svc.Export(context.Background(), Filter{ProjectID: "9"}, t.TempDir()); !errors.Is(err, notFound) {
		t.Errorf("expected not found, got %v", err)
	}

	svc = NewService(&fakeSource{docs: []document.Document{{ID: "d1", URL: ts.URL + "/gone.pdf"}}}, "")
	if _, err := svc.Export(context.Background(), Filter{ProjectID: "1"}, t.TempDir()); err == nil {
		t.Error("expected download error")
	}
}

func TestDetermineFilename_Fallback(t *testing.T) {
	resp := &http.Response{Header: http.Header{"Content-Type": []string{"image/png"}}}
	d := document.Document{ID: "d4", Name: "Mood Board", UploadedAt: time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)}

	if got := determineFilename(resp, d); got != "20241201_d4.png" {
		t.Errorf("expected 20241201_d4.png, got %s", got)
	}
}

func TestService_GenerateStatement(t *testing.T) {
	s := &Service{}

	due := time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)
	st := &Statement{
		Project: project.Project{Title: "Residential Villa - Damansara Heights", ClientName: "Mr. Ahmad bin Abdullah"},
		Record:  finance.Record{TotalAmount: 1_750_000, PaidAmount: 750_000, Balance: 1_000_000},
		Payments: []finance.Payment{
			{Description: "Construction Phase - 50%", Amount: 1_000_000, Status: finance.StatusPending, DueDate: &due, InvoiceNumber: "INV-2024-003"},
			{Description: "Site visit", Amount: 50_000, Status: finance.StatusPending},
		},
		Items: []Item{
			{Document: document.Document{Name: "Kitchen Layout Plan.pdf", Size: "5.8 MB", UploadedAt: due}, FilePath: "/tmp/Kitchen_Layout_Plan.pdf"},
		},
	}

	body := s.GenerateStatement(st)

	expectedSubstrings := []string{
		"Client: Mr. Ahmad bin Abdullah",
		"* 2024-07-15 | Construction Phase - 50% | RM 0.00 / RM 10,000.00 | pending | INV-2024-003",
		"* - | Site visit | RM 0.00 / RM 500.00 | pending | No invoice",
		"Total RM 17,500.00 | Paid RM 7,500.00 | Balance RM 10,000.00",
		"* 2024-07-15 | Kitchen Layout Plan.pdf | 5.8 MB | Kitchen_Layout_Plan.pdf",
	}

	for _, sub := range expectedSubstrings {
		if !strings.Contains(body, sub) {
			t.Errorf("expected body to contain %q", sub)
		}
	}
}
