package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hwg121/eProject-sub001/app/api"
	"github.com/hwg121/eProject-sub001/app/cache"
	"github.com/hwg121/eProject-sub001/app/cfg"
	"github.com/hwg121/eProject-sub001/app/content"
	"github.com/hwg121/eProject-sub001/app/database"
	"github.com/hwg121/eProject-sub001/app/maintenance"
	"github.com/hwg121/eProject-sub001/app/source"
	"github.com/hwg121/eProject-sub001/app/tasks"
)

const snapshotRetention = 24 * time.Hour

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// --help
		return
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: appCfg.LogLevel()})))
	if !appCfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	slog.Info("Starting content resolver", "version", appCfg.Version, "content_api", appCfg.ContentAPIURL)

	registry := source.NewRegistry(appCfg.ContentTypesDir, appCfg.ContentAPIURL)
	if err := registry.Run(); err != nil {
		slog.Error("Failed to load content type configurations", "dir", appCfg.ContentTypesDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Content type configurations loaded", "count", registry.GetConfigCount())

	store, pruner, closeStore, err := openSnapshotStore(appCfg)
	if err != nil {
		slog.Error("Failed to open snapshot store", "backend", appCfg.CacheBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	httpClient := &http.Client{Timeout: appCfg.RequestTimeoutDuration()}
	upstream := source.NewHTTPSource(registry, httpClient, source.NewFeedParser(), appCfg.UserAgent)

	ttl := appCfg.SnapshotTTLDuration()
	if appCfg.CacheBackend == cfg.CacheBackendNone {
		ttl = 0
	}
	cachedSource := source.NewCachedSource(upstream, store, ttl)

	service := content.NewService(cachedSource, registry.Declarations())

	scheduler := tasks.NewScheduler(registry, cachedSource, pruner,
		appCfg.SchedulerIntervalDuration(), appCfg.WorkerCount, snapshotRetention)
	// Without a snapshot store a background refresh would be thrown away.
	scheduler.SetBackgroundRefresh(appCfg.CacheBackend != cfg.CacheBackendNone)
	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "interval", appCfg.SchedulerIntervalDuration())
	scheduler.Start()
	defer scheduler.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	banner := maintenance.NewBanner(maintenance.NewRelativeFormatter(), appCfg.MaintenanceEndsAt, appCfg.MaintenanceIntervalDuration())
	banner.Start(ctx)
	defer banner.Stop()
	if banner.Active() {
		slog.Info("Maintenance window active", "ends_at", banner.EndsAt(), "remaining", banner.Text())
	}

	handler := api.NewHandler(service, registry, banner, scheduler)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port, "base_url", appCfg.BaseUrl)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig)
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}
}

// openSnapshotStore returns the configured store, the pruner the scheduler
// should run (nil when the backend expires entries itself) and a close func.
func openSnapshotStore(appCfg *cfg.Cfg) (source.SnapshotStore, tasks.Pruner, func(), error) {
	switch appCfg.CacheBackend {
	case cfg.CacheBackendSQLite:
		db, err := database.Open(appCfg.DBPath)
		if err != nil {
			return nil, nil, nil, err
		}
		repo := database.NewSnapshotRepository(db)
		return repo, repo, func() { db.Close() }, nil

	case cfg.CacheBackendRedis:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		redisCache, err := cache.NewCache(ctx, appCfg.RedisAddr, snapshotRetention)
		if err != nil {
			return nil, nil, nil, err
		}
		return redisCache, nil, func() { redisCache.Close() }, nil

	default:
		return source.NopSnapshotStore{}, nil, func() {}, nil
	}
}
