package chat

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/studiodesk/internal/chat"
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
	r.Get("/rooms", h.rooms)
	r.Get("/rooms/{id}", h.room)
	r.Post("/rooms/{id}/messages", h.send)
}

func (h *Handler) rooms(w http.ResponseWriter, r *http.Request) {
	rooms := h.svc.Rooms(r.URL.Query().Get("q"))
	if rooms == nil {
		rooms = []chat.Room{}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(rooms); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) room(w http.ResponseWriter, r *http.Request) {
	room, err := h.svc.GetRoom(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(room); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type sendRequest struct {
	Message string `json:"message"`
}

// send posts as the session user. Blank messages are dropped with 204.
func (h *Handler) send(w http.ResponseWriter, r *http.Request) {
	actor, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req sendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	msg, sent, err := h.svc.SendMessage(r.Context(), chi.URLParam(r, "id"), actor.UserID, actor.FullName, req.Message)
	if err != nil {
		if errors.Is(err, workspace.ErrNotFound) {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		slog.Error("failed to send message", "error", err, "room_id", chi.URLParam(r, "id"))
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if !sent {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(msg); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
