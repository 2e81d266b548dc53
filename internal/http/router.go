package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/studiodesk/internal/http/auth"
	"github.com/MrJamesThe3rd/studiodesk/internal/http/chat"
	"github.com/MrJamesThe3rd/studiodesk/internal/http/client"
	"github.com/MrJamesThe3rd/studiodesk/internal/http/dashboard"
	"github.com/MrJamesThe3rd/studiodesk/internal/http/document"
	"github.com/MrJamesThe3rd/studiodesk/internal/http/export"
	"github.com/MrJamesThe3rd/studiodesk/internal/http/finance"
	"github.com/MrJamesThe3rd/studiodesk/internal/http/importcsv"
	"github.com/MrJamesThe3rd/studiodesk/internal/http/matching"
	"github.com/MrJamesThe3rd/studiodesk/internal/http/note"
	"github.com/MrJamesThe3rd/studiodesk/internal/http/project"
	"github.com/MrJamesThe3rd/studiodesk/internal/http/user"
)

type Handlers struct {
	Auth      *auth.Handler
	Users     *user.Handler
	Dashboard *dashboard.Handler
	Projects  *project.Handler
	Clients   *client.Handler
	Finance   *finance.Handler
	Notes     *note.Handler
	Chat      *chat.Handler
	Documents *document.Handler
	Import    *importcsv.Handler
	Matching  *matching.Handler
	Export    *export.Handler
}

func New(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/api/health", health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			h.Auth.PublicRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(h.Auth.RequireSession)
				h.Auth.Routes(r)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(h.Auth.RequireSession)

			r.Route("/users", h.Users.Routes)
			r.Route("/dashboard", h.Dashboard.Routes)
			r.Get("/submissions", h.Dashboard.Timeline)

			r.Route("/projects", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Projects.Routes(r)
				r.Route("/{id}/documents", h.Documents.ProjectRoutes)
			})

			r.Route("/documents", h.Documents.Routes)

			r.Route("/clients", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Clients.Routes(r)
			})

			r.Route("/finance", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Finance.Routes(r)
			})

			r.Route("/notes", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Notes.Routes(r)
			})

			r.Route("/chat", h.Chat.Routes)

			r.Route("/import", h.Import.Routes)

			r.Route("/matching", h.Matching.Routes)

			r.Route("/export", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				h.Export.Routes(r)
			})
		})
	})

	return router
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
