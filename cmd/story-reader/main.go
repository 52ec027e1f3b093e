package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pribylovaa/story-reader/internal/config"
	"github.com/pribylovaa/story-reader/internal/connectivity"
	"github.com/pribylovaa/story-reader/internal/service"
	"github.com/pribylovaa/story-reader/internal/storage"
	"github.com/pribylovaa/story-reader/internal/storage/postgres"
	"github.com/pribylovaa/story-reader/internal/storage/redis"
	"github.com/pribylovaa/story-reader/internal/storage/sqlite"
	transport "github.com/pribylovaa/story-reader/internal/transport/http"
	"github.com/pribylovaa/story-reader/internal/upstream"
	logctx "github.com/pribylovaa/story-reader/pkg/log"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting story-reader", "env", cfg.Env, "store_engine", cfg.Store.Engine)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	storeCtx, storeCancel := context.WithTimeout(rootCtx, 10*time.Second)
	store, err := openStore(storeCtx, cfg)
	storeCancel()
	if err != nil {
		log.Error("store_open_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}
	log.Info("store_opened", slog.String("engine", cfg.Store.Engine))

	origin := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)

	oracle := connectivity.New(origin, cfg.Probe)
	go func() {
		// Периодическая перепроверка достижимости, останавливается по rootCtx.
		if err := oracle.Run(logctx.Into(rootCtx, log)); err != nil {
			log.Error("oracle_run_failed", slog.String("err", err.Error()))
		}
	}()

	svc := service.New(store, origin, oracle, *cfg)
	log.Info("service_initialized")

	router := transport.NewRouter(svc, transport.Options{
		Logger:  log,
		Timeout: cfg.Timeouts.Service,
	})

	addr := cfg.HTTP.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErrCh := make(chan error, 1)
	go func() {
		log.Info("http_listen_start", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_force_stop", slog.String("err", err.Error()))
		_ = srv.Close()
	} else {
		log.Info("http_stopped")
	}
	shutdownCancel()

	rootCancel()
	store.Close()

	log.Info("service_stopped")
	os.Exit(0)
}

// openStore выбирает движок офлайн-хранилища по конфигу.
func openStore(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.Store.Engine {
	case config.EngineSQLite:
		return sqlite.New(ctx, cfg.Store.Path)
	case config.EnginePostgres:
		return postgres.New(ctx, cfg.Store.URL)
	case config.EngineRedis:
		return redis.New(ctx, cfg.Store.RedisURL, "")
	default:
		return nil, fmt.Errorf("unknown store engine: %s", cfg.Store.Engine)
	}
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return log
}
