package export

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/studiodesk/internal/document"
	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
	"github.com/MrJamesThe3rd/studiodesk/internal/project"
)

// Source is the read side of the workspace needed to build a statement.
type Source interface {
	GetProject(id string) (project.Project, error)
	FinanceRecord(projectID string) (finance.Record, error)
	Documents(projectID string) []document.Document
}

// Filter selects what goes into a statement.
type Filter struct {
	ProjectID string
	// Status keeps only payments with this status; empty or
	// finance.StatusAll keeps every payment.
	Status finance.PaymentStatus
}

// Item is a project document with the local path it was downloaded to.
// FilePath is empty for documents without a URL.
type Item struct {
	Document document.Document
	FilePath string
}

// Statement is the exported view of one project.
type Statement struct {
	Project    project.Project
	Financials project.Financials
	Record     finance.Record
	Payments   []finance.Payment
	Items      []Item
}

// Service exports project statements and their documents.
type Service struct {
	source   Source
	client   *http.Client
	apiToken string
}

func NewService(source Source, apiToken string) *Service {
	return &Service{
		source:   source,
		client:   &http.Client{Timeout: 30 * time.Second},
		apiToken: apiToken,
	}
}

// Export builds the statement for filter.ProjectID and downloads every
// document that has a URL into outputDir.
func (s *Service) Export(ctx context.Context, filter Filter, outputDir string) (*Statement, error) {
	p, err := s.source.GetProject(filter.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("getting project: %w", err)
	}

	record, err := s.source.FinanceRecord(filter.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("getting finance record: %w", err)
	}

	status := filter.Status
	if status == "" {
		status = finance.StatusAll
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	docs := s.source.Documents(filter.ProjectID)
	items := make([]Item, 0, len(docs))
	taken := make(map[string]bool, len(docs))

	for _, d := range docs {
		item := Item{Document: d}

		if d.URL != "" {
			path, err := s.downloadDocument(ctx, d, outputDir, taken)
			if err != nil {
				return nil, fmt.Errorf("downloading document %s: %w", d.ID, err)
			}

			item.FilePath = path
		}

		items = append(items, item)
	}

	return &Statement{
		Project:    p,
		Financials: project.ComputeFinancials(p),
		Record:     record,
		Payments:   finance.FilterPayments(record.Payments, status),
		Items:      items,
	}, nil
}

// downloadDocument writes d into dir. A name already in taken is prefixed
// with the document id.
func (s *Service) downloadDocument(ctx context.Context, d document.Document, dir string, taken map[string]bool) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.URL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	if s.apiToken != "" {
		req.Header.Set("Authorization", "Token "+s.apiToken)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d for url %s", resp.StatusCode, d.URL)
	}

	name := determineFilename(resp, d)
	if taken[name] {
		name = sanitize(d.ID) + "_" + name
	}

	taken[name] = true
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}

	return path, nil
}

// determineFilename prefers the server's Content-Disposition name, then the
// document name, then an id-based name with an extension guessed from the
// content type.
func determineFilename(resp *http.Response, d document.Document) string {
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, err := mime.ParseMediaType(cd); err == nil {
			if filename, ok := params["filename"]; ok && filename != "" {
				return sanitize(filepath.Base(filename))
			}
		}
	}

	if d.Name != "" && filepath.Ext(d.Name) != "" {
		return sanitize(filepath.Base(d.Name))
	}

	ext := ".bin"

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if exts, _ := mime.ExtensionsByType(ct); len(exts) > 0 {
			ext = exts[0]
		}
	}

	return fmt.Sprintf("%s_%s%s", d.UploadedAt.Format("20060102"), sanitize(d.ID), ext)
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}

		return '_'
	}, name)
}

// GenerateStatement renders st as plain text, one line per payment and per
// document.
func (s *Service) GenerateStatement(st *Statement) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s\n", st.Project.Title)
	fmt.Fprintf(&sb, "Client: %s\n", st.Project.ClientName)
	fmt.Fprintf(&sb, "Status: %s\n\n", st.Project.Status)

	sb.WriteString("Payments\n")

	for _, p := range st.Payments {
		due := "-"
		if p.DueDate != nil {
			due = p.DueDate.Format(time.DateOnly)
		}

		invoice := p.InvoiceNumber
		if invoice == "" {
			invoice = "No invoice"
		}

		fmt.Fprintf(&sb, "* %s | %s | %s / %s | %s | %s\n",
			due, p.Description, finance.FormatAmount(p.PaidAmount), finance.FormatAmount(p.Amount), p.Status, invoice)
	}

	fmt.Fprintf(&sb, "Total %s | Paid %s | Balance %s\n\n",
		finance.FormatAmount(st.Record.TotalAmount),
		finance.FormatAmount(st.Record.PaidAmount),
		finance.FormatAmount(st.Record.Balance))

	fmt.Fprintf(&sb, "Consultant fees %s | Approved %s | Pending %s\n\n",
		finance.FormatAmount(st.Financials.TotalFees),
		finance.FormatAmount(st.Financials.PaidFees),
		finance.FormatAmount(st.Financials.PendingFees))

	sb.WriteString("Documents\n")

	for _, item := range st.Items {
		file := "Not downloaded"
		if item.FilePath != "" {
			file = filepath.Base(item.FilePath)
		}

		fmt.Fprintf(&sb, "* %s | %s | %s | %s\n", item.Document.UploadedAt.Format(time.DateOnly), item.Document.Name, item.Document.Size, file)
	}

	return sb.String()
}
