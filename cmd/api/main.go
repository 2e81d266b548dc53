package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/studiodesk/internal/config"
	"github.com/MrJamesThe3rd/studiodesk/internal/database"
	"github.com/MrJamesThe3rd/studiodesk/internal/export"
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
	"github.com/MrJamesThe3rd/studiodesk/internal/session"
	"github.com/MrJamesThe3rd/studiodesk/internal/workspace"
	workspaceStore "github.com/MrJamesThe3rd/studiodesk/internal/workspace/store"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	driver, dsn, err := cfg.DataSource()
	if err != nil {
		slog.Error("invalid database config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(driver, dsn)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	seed, err := fixture.Load(cfg.Seed.Fixture)
	if err != nil {
		slog.Error("failed to load seed data", "error", err, "path", cfg.Seed.Fixture)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	workspaceService, err := workspace.Open(ctx, workspaceStore.New(db, driver), seed)
	if err != nil {
		slog.Error("failed to open workspace", "error", err)
		os.Exit(1)
	}

	var (
		sessions        = session.NewManager(cfg.Auth.Secret, cfg.Auth.TokenTTL)
		matchingService = matching.NewService(matchingStore.New(db, driver))
		importService   = importer.NewService()
		exportService   = export.NewService(workspaceService, cfg.Documents.Token)
	)

	router := studioHttp.New(studioHttp.Handlers{
		Auth:      authHandler.NewHandler(workspaceService, sessions),
		Users:     userHandler.NewHandler(workspaceService),
		Dashboard: dashboardHandler.NewHandler(workspaceService),
		Projects:  projectHandler.NewHandler(workspaceService),
		Clients:   clientHandler.NewHandler(workspaceService),
		Finance:   financeHandler.NewHandler(workspaceService),
		Notes:     noteHandler.NewHandler(workspaceService),
		Chat:      chatHandler.NewHandler(workspaceService),
		Documents: documentHandler.NewHandler(workspaceService),
		Import:    importHandler.NewHandler(importService, workspaceService, matchingService),
		Matching:  matchingHandler.NewHandler(matchingService),
		Export:    exportHandler.NewHandler(exportService),
	}, cfg.CORS.Origins)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: 2 * cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shut down server", "error", err)
		}
	}()

	slog.Info("starting server", "app", cfg.App.Name, "addr", srv.Addr, "driver", driver)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
