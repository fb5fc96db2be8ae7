package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sradha-maharana/video-conference-backend/config"
	"github.com/Sradha-maharana/video-conference-backend/internal/postgres"
	"github.com/Sradha-maharana/video-conference-backend/internal/presence"
	"github.com/Sradha-maharana/video-conference-backend/internal/relay"
	"github.com/Sradha-maharana/video-conference-backend/internal/security"
	"github.com/Sradha-maharana/video-conference-backend/internal/service"
	httpx "github.com/Sradha-maharana/video-conference-backend/internal/transport/http"
	"github.com/Sradha-maharana/video-conference-backend/internal/transport/ws"
	"github.com/Sradha-maharana/video-conference-backend/pkg/logger"
)

func main() {
	// --- config ---
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger.Init(logger.Config{
		Env:       logger.Env(cfg.Logging.Env),
		Service:   cfg.Logging.Service,
		Version:   cfg.Logging.Version,
		Backend:   logger.Backend(cfg.Logging.Backend),
		AddSource: cfg.Logging.AddSource,
		Debug:     cfg.Logging.Debug,
	})
	slog.Info("starting video-conference-backend",
		"env", cfg.Logging.Env, "version", cfg.Logging.Version)

	// --- postgres ---
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, postgres.PoolConfig{
		DSN:               cfg.Postgres.DSN,
		MaxConns:          cfg.Postgres.MaxConns,
		MinConns:          cfg.Postgres.MinConns,
		MaxConnLifetime:   cfg.Postgres.MaxConnLifetime,
		MaxConnIdleTime:   cfg.Postgres.MaxConnIdleTime,
		HealthCheckPeriod: cfg.Postgres.HealthCheckPeriod,
		ApplicationName:   cfg.Postgres.ApplicationName,
	})
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	// --- repos ---
	userRepo := postgres.NewUserRepository(pool)
	roomRepo := postgres.NewRoomRepository(pool)

	// --- services ---
	signer := security.NewJWTSigner(
		[]byte(cfg.Auth.JWTSecret),
		cfg.Auth.Issuer, cfg.Auth.Audience,
		cfg.Auth.AccessTTL, cfg.Auth.ClockSkew,
	)
	authSvc := service.NewAuthService(userRepo, signer, security.BcryptConfig{
		Cost:      cfg.Auth.BcryptCost,
		MinLength: cfg.Auth.PasswordMinLength,
	}, nil)
	roomSvc := service.NewRoomService(roomRepo)

	// --- presence core & WS ---
	table := presence.NewTable(cfg.Presence.MaxMessages, nil)
	registry := ws.NewRegistry()
	coordinator := relay.NewCoordinator(table, registry)
	wsServer := ws.NewServer(registry, coordinator)

	// --- HTTP ---
	handler := httpx.NewHandler(authSvc, roomSvc)
	router := httpx.NewRouter(handler, authSvc, wsServer, cfg.HTTP.AllowedOrigins)
	httpSrv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("http listen", "addr", cfg.HTTP.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutdown signal", "sig", sig)
	case err := <-errCh:
		slog.Error("server error", "err", err)
	}

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = httpSrv.Shutdown(ctxShutdown)
	slog.Info("stopped")
}
