package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/is24/projects-manager/config"
	"github.com/is24/projects-manager/internal/backup"
	"github.com/is24/projects-manager/internal/bootstrap"
	"github.com/is24/projects-manager/internal/logging"
	"github.com/is24/projects-manager/internal/metrics"
	"github.com/is24/projects-manager/internal/projects/repository"
	"github.com/is24/projects-manager/internal/projects/service"
)

const serviceName = "projects-manager-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.New(cfg.App.LogLevel, cfg.App.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bootstrap.SetGinMode(cfg.App.Environment)

	storage, err := bootstrap.OpenStorage(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer storage.Close()

	repo := repository.NewProjectRepository(storage.Backend, logger)
	n := repo.Load(ctx)
	logger.Info("projects loaded", zap.Int("count", n), zap.String("backend", storage.Backend.Name()))

	m := metrics.New()
	svc := service.NewProjectService(repo, logger, m)

	if cfg.Backup.Schedule != "" {
		sched := backup.NewScheduler(repo, cfg.Backup.Dir, cfg.Backup.Keep, logger)
		if err := sched.Start(cfg.Backup.Schedule); err != nil {
			return err
		}
		defer func() { <-sched.Stop().Done() }()
	}

	router, err := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		Logger:         logger,
		Metrics:        m,
		Projects:       svc,
		Storage:        storage.Backend.Name(),
		Pinger:         storage.Pinger,
		CORSOrigins:    cfg.Server.CORSOrigins,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		StaticDir:      cfg.Server.StaticDir,
		DocsServerURL:  fmt.Sprintf("http://localhost:%s", cfg.Server.Port),
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
