package note

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/studiodesk/internal/note"
	"github.com/MrJamesThe3rd/studiodesk/internal/session"
	"github.com/MrJamesThe3rd/studiodesk/internal/workspace"
)

type Handler struct {
	svc *workspace.Service
}

func NewHandler(svc *workspace.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/pin", h.togglePin)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	category := note.CategoryAll
	if c := r.URL.Query().Get("category"); c != "" {
		category = note.Category(c)
		if category != note.CategoryAll && !category.Valid() {
			http.Error(w, "invalid category", http.StatusBadRequest)
			return
		}
	}

	notes := h.svc.Notes(r.URL.Query().Get("q"), category)
	if notes == nil {
		notes = []note.Note{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(notes); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type createNoteRequest struct {
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Category  note.Category `json:"category"`
	Priority  note.Priority `json:"priority"`
	ProjectID string        `json:"projectId"`
	IsPinned  bool          `json:"isPinned"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	actor, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req createNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}

	if req.Category == "" {
		req.Category = note.CategoryGeneral
	}

	if req.Priority == "" {
		req.Priority = note.PriorityMedium
	}

	if !req.Category.Valid() || !req.Priority.Valid() {
		http.Error(w, "invalid category or priority", http.StatusBadRequest)
		return
	}

	n, err := h.svc.CreateNote(r.Context(), note.CreateParams{
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		Priority:  req.Priority,
		ProjectID: req.ProjectID,
		IsPinned:  req.IsPinned,
	}, actor.UserID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(n); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.GetNote(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "note not found", http.StatusNotFound)
			return
		}

		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(n); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateNoteRequest struct {
	Title     *string        `json:"title,omitempty"`
	Content   *string        `json:"content,omitempty"`
	Category  *note.Category `json:"category,omitempty"`
	Priority  *note.Priority `json:"priority,omitempty"`
	ProjectID *string        `json:"projectId,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if (req.Category != nil && !req.Category.Valid()) || (req.Priority != nil && !req.Priority.Valid()) {
		http.Error(w, "invalid category or priority", http.StatusBadRequest)
		return
	}

	n, err := h.svc.EditNote(r.Context(), chi.URLParam(r, "id"), note.Update{
		Title:     req.Title,
		Content:   req.Content,
		Category:  req.Category,
		Priority:  req.Priority,
		ProjectID: req.ProjectID,
	})
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "note not found", http.StatusNotFound)
			return
		}

		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(n); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) togglePin(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.TogglePin(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "note not found", http.StatusNotFound)
			return
		}

		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(n); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteNote(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "note not found", http.StatusNotFound)
			return
		}

		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
