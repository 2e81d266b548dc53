package document

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/studiodesk/internal/document"
	"github.com/MrJamesThe3rd/studiodesk/internal/session"
	"github.com/MrJamesThe3rd/studiodesk/internal/workspace"
)

type Handler struct {
	svc *workspace.Service
}

func NewHandler(svc *workspace.Service) *Handler {
	return &Handler{svc: svc}
}

// ProjectRoutes are mounted under a project, /projects/{id}/documents.
func (h *Handler) ProjectRoutes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	docs := h.svc.Documents(chi.URLParam(r, "id"))
	if docs == nil {
		docs = []document.Document{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(docs); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createDocumentRequest struct {
	Name string        `json:"name"`
	Type document.Type `json:"type"`
	Size string        `json:"size"`
	URL  string        `json:"url"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Name) == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	if req.Type == "" {
		req.Type = document.TypeOther
	}

	if !req.Type.Valid() {
		http.Error(w, "invalid type", http.StatusBadRequest)
		return
	}

	d, err := h.svc.AddDocument(r.Context(), document.CreateParams{
		ProjectID: chi.URLParam(r, "id"),
		Name:      req.Name,
		Type:      req.Type,
		Size:      req.Size,
		URL:       req.URL,
	}, actor.UserID)
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}

		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(d); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.GetDocument(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "document not found", http.StatusNotFound)
			return
		}

		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(d); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteDocument(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "document not found", http.StatusNotFound)
			return
		}

		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
