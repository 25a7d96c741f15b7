// Package main initializes and starts the offline cache controller: it
// installs the core resource manifest into a versioned cache container,
// activates (pruning stale containers), and serves asset requests
// cache-first over HTTP with a force-update control endpoint.
package main

import (
	"cmp"
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Finn013/sticky-note-scribe-mobile/internal/cache"
	"github.com/Finn013/sticky-note-scribe-mobile/internal/config"
	"github.com/Finn013/sticky-note-scribe-mobile/internal/kv"
	"github.com/Finn013/sticky-note-scribe-mobile/internal/logger"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Println("failed to init logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	// Open the persistence medium holding the cache containers.
	medium, err := openMedium(options.Driver, options.DataDir)
	if err != nil {
		zapLogger.Fatal("cannot open storage", zap.Error(err))
	}

	store := cache.NewContainerStore(medium, zapLogger)
	controller := cache.NewController(cache.Options{
		Hostname: options.Hostname,
		Upstream: options.Upstream,
		Store:    store,
		Logger:   zapLogger,
	})

	// Install the manifest, then activate: stale containers are pruned and
	// the controller takes over serving immediately.
	ctx := context.Background()
	controller.Install(ctx)
	if err := controller.Activate(ctx); err != nil {
		zapLogger.Fatal("activation failed", zap.Error(err))
	}

	// Log cache-cleared notifications the way a client page would observe
	// them after a forced update.
	messages, cancel := controller.Clients().Subscribe()
	defer cancel()
	go func() {
		for msg := range messages {
			zapLogger.Info("client notified", zap.String("type", msg.Type))
		}
	}()

	// Build the router with middleware and routes.
	router := cache.NewRouter(controller, zapLogger)

	server := &http.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting cache controller",
		zap.String("addr", options.Addr),
		zap.String("upstream", options.Upstream),
		zap.String("version", cache.Version))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start server", zap.Error(err))
	}
}

// openMedium builds the persistence medium selected by configuration.
func openMedium(driver, dataDir string) (kv.Medium, error) {
	switch driver {
	case "sqlite":
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return nil, err
		}
		return kv.OpenSQLite(filepath.Join(dataDir, "cache.db"))
	case "mem":
		return kv.NewMemMedium(), nil
	default:
		return kv.NewFileMedium(dataDir)
	}
}
