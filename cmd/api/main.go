// Package main is the entry point for the travel planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/time/rate"

	"github.com/pkordes/travel-planner/internal/auth"
	"github.com/pkordes/travel-planner/internal/config"
	"github.com/pkordes/travel-planner/internal/handler"
	"github.com/pkordes/travel-planner/internal/imagestore"
	"github.com/pkordes/travel-planner/internal/metrics"
	"github.com/pkordes/travel-planner/internal/middleware"
	"github.com/pkordes/travel-planner/internal/prefs"
	"github.com/pkordes/travel-planner/internal/repo"
	"github.com/pkordes/travel-planner/internal/service"
	"github.com/pkordes/travel-planner/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Database ---------------------------------------------------------
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// Migrations run through database/sql on top of the same pool.
	sqlDB := stdlib.OpenDBFromPool(pool)
	applied, err := migrations.Up(ctx, sqlDB)
	_ = sqlDB.Close()
	if err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied", "count", applied)

	// --- Preferences ------------------------------------------------------
	preferences, err := prefs.Load(cfg.PreferencesFile)
	if err != nil {
		slog.Error("failed to load preferences", "path", cfg.PreferencesFile, "error", err)
		os.Exit(1)
	}
	go reloadOnHangup(ctx, preferences)

	// --- Object storage ---------------------------------------------------
	media, err := imagestore.New(cfg.MediaDir, cfg.PublicBaseURL)
	if err != nil {
		slog.Error("failed to open media directory", "dir", cfg.MediaDir, "error", err)
		os.Exit(1)
	}

	// --- Auth -------------------------------------------------------------
	userRepo := repo.NewUserRepo(pool)
	var authOpts []auth.Option
	if cfg.OAuth.Enabled() {
		provider, err := auth.NewOIDC(ctx, cfg.OAuth.IssuerURL, cfg.OAuth.ClientID, cfg.OAuth.ClientSecret, cfg.OAuth.RedirectURL)
		if err != nil {
			slog.Error("failed to configure oauth", "error", err)
			os.Exit(1)
		}
		authOpts = append(authOpts, auth.WithIdentityProvider(provider))
		slog.Info("oauth sign-in enabled", "issuer", cfg.OAuth.IssuerURL)
	}
	authSvc := auth.NewService(userRepo, authOpts...)
	sessions := auth.NewSessionManager(cfg.SessionSecret, cfg.PublicBaseURL)

	// Ten attempts per minute per client, with bursts of five.
	authLimiter := middleware.NewIPRateLimiter(rate.Every(6*time.Second), 5, 10*time.Minute)
	go sweepLimiter(ctx, authLimiter)

	// --- Services ---------------------------------------------------------
	tripRepo := repo.NewTripRepo(pool)
	itemRepo := repo.NewItemRepo(pool)

	srv := handler.NewServer(handler.Deps{
		Trips:       service.NewTripService(tripRepo),
		Items:       service.NewItemService(tripRepo, itemRepo),
		Templates:   service.NewTemplateService(repo.NewTemplateRepo(pool)),
		Explorer:    service.NewExplorerService(repo.NewExplorerRepo(pool), preferences),
		Images:      service.NewImageService(repo.NewImageRepo(pool), media),
		Export:      service.NewExportService(tripRepo, itemRepo),
		Auth:        authSvc,
		Sessions:    sessions,
		Prefs:       preferences,
		DB:          pool,
		Media:       media.Handler(),
		AuthLimiter: authLimiter.Middleware(),
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RealIP trusts forwarding headers, so it is only installed behind a proxy;
	// otherwise clients could pick their own rate-limit bucket.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	if cfg.TrustProxy {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	if cfg.MetricsEnabled {
		r.Use(metrics.Middleware())
	}
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	if cfg.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler())
	}
	r.Mount("/", srv.Handler())

	// --- HTTP Server ------------------------------------------------------
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// reloadOnHangup re-reads the preferences file on SIGHUP. A bad file keeps
// the previous snapshot.
func reloadOnHangup(ctx context.Context, src *prefs.Source) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := src.Reload(); err != nil {
				slog.Error("preferences reload failed", "path", src.Path(), "error", err)
				continue
			}
			slog.Info("preferences reloaded", "path", src.Path(), "explorer_enabled", src.Current().ExplorerEnabled)
		}
	}
}

// sweepLimiter drops idle per-client limiters once a minute.
func sweepLimiter(ctx context.Context, l *middleware.IPRateLimiter) {
	t := time.NewTicker(time.Minute)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			l.Sweep()
		}
	}
}
