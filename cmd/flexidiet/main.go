package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/flexidiet/internal/auth"
	"github.com/dukerupert/flexidiet/internal/config"
	"github.com/dukerupert/flexidiet/internal/database"
	"github.com/dukerupert/flexidiet/internal/email"
	"github.com/dukerupert/flexidiet/internal/logging"
	"github.com/dukerupert/flexidiet/internal/metrics"
	"github.com/dukerupert/flexidiet/internal/middleware"
	"github.com/dukerupert/flexidiet/internal/server"
	"github.com/dukerupert/flexidiet/internal/snapshot"
	"github.com/dukerupert/flexidiet/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (default ./flexidiet.yaml if present)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format, os.Stdout)

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err, "path", cfg.Database.Path)
		os.Exit(1)
	}
	defer db.Close()

	trustedProxies, err := middleware.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		logger.Error("invalid trusted proxies", "error", err)
		os.Exit(1)
	}

	m := metrics.New()
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	mailer := email.NewClient(cfg.Email.PostmarkToken, cfg.Email.From)
	if !mailer.Configured() {
		logger.Warn("postmark token not set, email disabled")
	}

	var objects snapshot.ObjectStore
	if cfg.S3.Configured() {
		objects = snapshot.NewS3Client(snapshot.S3Options{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
		})
	}
	snapshots := snapshot.NewManager(snapshot.Config{
		Bucket:     cfg.S3.Bucket,
		Prefix:     cfg.S3.Prefix,
		Passphrase: cfg.Snapshot.Passphrase,
		Interval:   cfg.Snapshot.Interval,
		Retention:  cfg.Snapshot.Retention,
	}, db, store.NewSnapshotStore(db), objects, m, logger.With("component", "snapshot"))

	srv := server.New(db, server.Options{
		Tokens:            tokens,
		Mailer:            mailer,
		Snapshots:         snapshots,
		Metrics:           m,
		AdminEmail:        cfg.Email.AdminEmail,
		LookupConcurrency: cfg.Grocery.LookupConcurrency,
		RateLimitRPS:      cfg.Server.RateLimitRPS,
		RateLimitBurst:    cfg.Server.RateLimitBurst,
		OriginPatterns:    cfg.Server.AllowedOrigins,
		TrustedProxies:    trustedProxies,
	}, logger)

	httpServer := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      srv.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if snapshots.Enabled() {
		snapshots.Start(ctx)
		logger.Info("snapshot schedule started", "interval", cfg.Snapshot.Interval)
	}

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				srv.RateLimiter().Cleanup(10 * time.Minute)
			}
		}
	}()

	go func() {
		logger.Info("flexidiet listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	snapshots.Stop()
}
