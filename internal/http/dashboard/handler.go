package dashboard

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/studiodesk/internal/project"
	"github.com/MrJamesThe3rd/studiodesk/internal/workspace"
)

type Handler struct {
	svc *workspace.Service
}

func NewHandler(svc *workspace.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/overview", h.overview)
}

func (h *Handler) summary(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(h.svc.Summary()); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) overview(w http.ResponseWriter, _ *http.Request) {
	o := h.svc.Overview()
	if o.Breakdown == nil {
		o.Breakdown = []project.ProjectFinancials{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(o); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Timeline lists every submission across projects, most recent first.
func (h *Handler) Timeline(w http.ResponseWriter, r *http.Request) {
	entries := h.svc.Timeline()
	if status := r.URL.Query().Get("status"); status != "" {
		filtered := make([]project.TimelineEntry, 0, len(entries))
		for _, e := range entries {
			if string(e.Status) == status {
				filtered = append(filtered, e)
			}
		}

		entries = filtered
	}

	if entries == nil {
		entries = []project.TimelineEntry{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(entries); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
