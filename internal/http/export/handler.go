package export

import (
	"archive/zip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/studiodesk/internal/document"
	"github.com/MrJamesThe3rd/studiodesk/internal/export"
	"github.com/MrJamesThe3rd/studiodesk/internal/finance"
	"github.com/MrJamesThe3rd/studiodesk/internal/project"
	"github.com/MrJamesThe3rd/studiodesk/internal/workspace"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.metadata)
	r.Post("/download", h.download)
}

type exportRequest struct {
	ProjectID string                `json:"projectId"`
	Status    finance.PaymentStatus `json:"status,omitempty"`
}

type documentResponse struct {
	document.Document
	FileName string `json:"fileName,omitempty"`
}

type statementResponse struct {
	Project    project.Project    `json:"project"`
	Financials project.Financials `json:"financials"`
	Record     finance.Record     `json:"record"`
	Payments   []finance.Payment  `json:"payments"`
	Documents  []documentResponse `json:"documents"`
	Statement  string             `json:"statement"`
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (export.Filter, bool) {
	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return export.Filter{}, false
	}

	if req.ProjectID == "" {
		http.Error(w, "projectId is required", http.StatusBadRequest)
		return export.Filter{}, false
	}

	if req.Status != "" && req.Status != finance.StatusAll && !req.Status.Valid() {
		http.Error(w, "invalid status", http.StatusBadRequest)
		return export.Filter{}, false
	}

	return export.Filter{ProjectID: req.ProjectID, Status: req.Status}, true
}

func (h *Handler) run(w http.ResponseWriter, r *http.Request, filter export.Filter, dir string) (*export.Statement, bool) {
	st, err := h.svc.Export(r.Context(), filter, dir)
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return nil, false
		}

		slog.Error("export failed", "error", err, "project_id", filter.ProjectID)
		http.Error(w, err.Error(), http.StatusInternalServerError)

		return nil, false
	}

	return st, true
}

func (h *Handler) metadata(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.decode(w, r)
	if !ok {
		return
	}

	tmpDir, err := os.MkdirTemp("", "studiodesk-export-*")
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(tmpDir)

	st, ok := h.run(w, r, filter, tmpDir)
	if !ok {
		return
	}

	docs := make([]documentResponse, 0, len(st.Items))
	for _, item := range st.Items {
		resp := documentResponse{Document: item.Document}
		if item.FilePath != "" {
			resp.FileName = filepath.Base(item.FilePath)
		}

		docs = append(docs, resp)
	}

	payments := st.Payments
	if payments == nil {
		payments = []finance.Payment{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(statementResponse{
		Project:    st.Project,
		Financials: st.Financials,
		Record:     st.Record,
		Payments:   payments,
		Documents:  docs,
		Statement:  h.svc.GenerateStatement(st),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.decode(w, r)
	if !ok {
		return
	}

	tmpDir, err := os.MkdirTemp("", "studiodesk-export-*")
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	defer os.RemoveAll(tmpDir)

	st, ok := h.run(w, r, filter, tmpDir)
	if !ok {
		return
	}

	if err := os.WriteFile(filepath.Join(tmpDir, "statement.txt"), []byte(h.svc.GenerateStatement(st)), 0o644); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=\"statement_%s_%s.zip\"", filter.ProjectID, time.Now().Format("20060102")))

	zipWriter := zip.NewWriter(w)
	defer zipWriter.Close()

	err = filepath.Walk(tmpDir, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return err
		}

		relPath, _ := filepath.Rel(tmpDir, path)

		zf, err := zipWriter.Create(relPath)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(zf, f)

		return err
	})
	if err != nil {
		slog.Error("failed to create zip", "error", err)
	}
}
