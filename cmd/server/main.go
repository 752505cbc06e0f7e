package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/Coshio12/gestionar-carrera/internal/backend"
	"github.com/Coshio12/gestionar-carrera/internal/cache"
	"github.com/Coshio12/gestionar-carrera/internal/config"
	"github.com/Coshio12/gestionar-carrera/internal/database"
	"github.com/Coshio12/gestionar-carrera/internal/handler/health"
	"github.com/Coshio12/gestionar-carrera/internal/metrics"
	"github.com/Coshio12/gestionar-carrera/internal/migrations"
	"github.com/Coshio12/gestionar-carrera/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	m := metrics.New()

	// --- libSQL ---
	db, err := database.Open(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("connecting to libsql: %w", err)
	}
	defer db.Close()

	version, err := migrations.Run(ctx, db)
	if err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	logger.Info("connected to libsql", "path", cfg.DBPath, "schema_version", version)

	admins := server.NewAdminStore(db)
	if n, err := admins.PruneSessions(ctx); err != nil {
		logger.Warn("pruning expired admin sessions", "error", err)
	} else if n > 0 {
		logger.Info("pruned expired admin sessions", "count", n)
	}
	if cfg.AdminPasswordHash == "" {
		logger.Warn("ADMIN_PASSWORD_HASH not set, initial admin not seeded")
	} else {
		created, err := admins.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPasswordHash)
		if err != nil {
			return fmt.Errorf("seeding admin: %w", err)
		}
		if created {
			logger.Info("created initial admin account", "email", cfg.AdminEmail)
		}
	}

	// --- Remote API ---
	api, err := backend.New(backend.Config{
		BaseURL:       cfg.APIBaseURL,
		TokenProvider: backend.StaticToken(cfg.APIToken),
		Metrics:       m,
	})
	if err != nil {
		return fmt.Errorf("configuring remote api: %w", err)
	}

	checks := map[string]health.Checker{
		"libsql":  dbChecker{db},
		"backend": api,
	}
	deps := server.Deps{
		Admin:    admins,
		Backend:  api,
		Metrics:  m,
		PageSize: cfg.PageSize,
		SPADir:   cfg.SPADir,
	}

	// --- Document storage and Redis ---
	if cfg.SupabaseURL != "" {
		storage, err := backend.NewStorage(backend.StorageConfig{
			BaseURL: cfg.SupabaseURL,
			APIKey:  cfg.SupabaseKey,
			Bucket:  cfg.StorageBucket,
			TTL:     cfg.SignedURLTTL,
			Metrics: m,
		})
		if err != nil {
			return fmt.Errorf("configuring storage: %w", err)
		}

		var urls cache.URLCache = cache.Nop{}
		if cfg.RedisURL != "" {
			rdb, err := cache.Open(ctx, cfg.RedisURL)
			if err != nil {
				return fmt.Errorf("connecting to redis: %w", err)
			}
			defer rdb.Close()
			logger.Info("connected to redis")

			redisCache := cache.NewRedis(rdb)
			urls = redisCache
			checks["redis"] = redisCache
		}
		deps.Signer = cache.NewCachedSigner(storage, urls, storage.TTL(), logger, m)
	} else {
		logger.Warn("SUPABASE_URL not set, document previews disabled")
	}

	deps.Health = health.NewHandler(logger, checks).Optional("redis").Routes()

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, deps)

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

// dbChecker adapts *sql.DB to health.Checker.
type dbChecker struct{ db *sql.DB }

func (d dbChecker) Check(ctx context.Context) error { return d.db.PingContext(ctx) }
