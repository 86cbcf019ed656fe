package main

import (
	"context"
	"errors"
	"flixtube/internal/adapters/handlers/http/chi"
	"flixtube/internal/adapters/handlers/http/chi/v1/storage"
	"flixtube/internal/adapters/storage/localfs"
	"flixtube/internal/adapters/storage/minio"
	"flixtube/internal/adapters/storage/s3"
	"flixtube/internal/config"
	"flixtube/internal/core/port"
	storageservice "flixtube/internal/core/service/storage"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code once every deferred close has run
func run() int {

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.LoadStorage()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}

	objects, err := initBackend(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to init storage backend", "backend", cfg.Storage.Backend, "error", err)
		return 1
	}
	logger.Info("storage backend initialized", "backend", cfg.Storage.Backend)

	resolver := storageservice.NewStorageService(objects, cfg.Storage, logger)

	//http
	storageHandler := storage.NewStorageHandlerV1(resolver, logger)
	router := chi.NewRouter(logger, chi.RouterConfig{Env: cfg.Env.Env}, storageHandler)
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting server", "host", cfg.Server.Host, "port", cfg.Server.Port)
		servErr := server.ListenAndServe()
		if servErr != nil && !errors.Is(servErr, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", servErr)
			stop()
		}
	}()

	//wait for context cancel
	<-ctx.Done()
	logger.Info("gracefully shutting down storage service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	wg.Wait()
	logger.Info("storage service shutdown complete")
	return 0
}

func initBackend(ctx context.Context, cfg *config.StorageServiceConfig, logger *slog.Logger) (port.ObjectStorage, error) {
	switch cfg.Storage.Backend {
	case "minio":
		return minio.NewAdapter(ctx, cfg.Minio, logger)
	case "s3":
		return s3.NewAdapter(ctx, cfg.S3, logger)
	default:
		return localfs.NewAdapter(cfg.Storage.FSRoot, logger)
	}
}
