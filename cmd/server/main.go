package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mkovtun/receiptd/internal/config"
	"github.com/mkovtun/receiptd/internal/excel"
	"github.com/mkovtun/receiptd/internal/ingest"
	"github.com/mkovtun/receiptd/internal/logging"
	"github.com/mkovtun/receiptd/internal/stats"
	"github.com/mkovtun/receiptd/internal/store"
	"github.com/mkovtun/receiptd/internal/web"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"db_max_conns", cfg.Database.MaxConns,
		"upload_max_concurrent", cfg.Upload.MaxConcurrent,
		"header_keywords", len(cfg.Ingest.HeaderKeywords),
	)

	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		slog.Error("failed to parse database URL", "error", err)
		os.Exit(1)
	}

	poolConfig.MaxConns = int32(cfg.Database.MaxConns)
	poolConfig.MinConns = int32(cfg.Database.MinConns)
	poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.Database.MaxConnIdleTime

	ctx := context.Background()
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		slog.Error("failed to ping database", "error", err)
		os.Exit(1)
	}

	if u, err := url.Parse(cfg.Database.URL); err == nil {
		dbName := strings.TrimPrefix(u.Path, "/")
		slog.Info("connected to database", "name", dbName)
	} else {
		slog.Info("connected to database")
	}

	st := store.New(pool)
	if err := st.Migrate(ctx); err != nil {
		slog.Error("failed to apply schema", "error", err)
		os.Exit(1)
	}

	ingestSvc := ingest.NewService(st, ingest.Options{
		Header: excel.HeaderConfig{
			Keywords:       cfg.Ingest.HeaderKeywords,
			MatchThreshold: cfg.Ingest.HeaderMatchThreshold,
		},
		MaxConcurrent: cfg.Upload.MaxConcurrent,
		MaxWait:       cfg.Upload.MaxWaitTime,
	})
	statsSvc := stats.NewService(st)

	server := web.NewServer(cfg, ingestSvc, st, statsSvc)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		// Wait for active uploads to complete (with timeout)
		if active := ingestSvc.ActiveUploads(); active > 0 {
			slog.Info("waiting for uploads to complete", "active", active)
			if err := ingestSvc.WaitForUploads(shutdownCtx); err != nil {
				slog.Warn("uploads did not complete in time", "error", err)
			} else {
				slog.Info("all uploads completed")
			}
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
