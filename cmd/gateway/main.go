package main

import (
	"context"
	"errors"
	"flixtube/internal/adapters/eventbroker/nats"
	"flixtube/internal/adapters/handlers/http/chi"
	"flixtube/internal/adapters/handlers/http/chi/v1/video"
	"flixtube/internal/adapters/repository/postgres"
	"flixtube/internal/adapters/upstream/storagehttp"
	"flixtube/internal/config"
	"flixtube/internal/core/domain"
	"flixtube/internal/core/service/streaming"
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

	cfg, err := config.LoadGateway()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		return 1
	}

	db, err := postgres.Open(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		return 1
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()
	logger.Info("db connection established")

	//broker
	bus, err := nats.NewBus(cfg.Broker, logger)
	if err != nil {
		logger.Error("failed to connect to broker", "error", err)
		return 1
	}
	if err := bus.DeclareExchange(ctx, domain.ExchangeViewed); err != nil {
		logger.Error("failed to declare exchange", "exchange", domain.ExchangeViewed, "error", err)
		return 1
	}
	logger.Info("broker connection established")

	forwarder, err := storagehttp.NewForwarder(cfg.Stream, logger)
	if err != nil {
		logger.Error("failed to init storage forwarder", "error", err)
		return 1
	}

	videoRepo := postgres.NewSqlVideoRepository(db)
	publisher := streaming.NewViewPublisher(bus, cfg.Stream, logger)
	streamingService := streaming.NewStreamingService(videoRepo, publisher, cfg.Stream, logger)

	//http
	videoHandler := video.NewVideoHandlerV1(streamingService, forwarder, logger)
	router := chi.NewRouter(logger, chi.RouterConfig{Env: cfg.Env.Env}, videoHandler)
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

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("gracefully shutting down gateway")
	case <-bus.Closed():
		logger.Error("broker connection lost, shutting down gateway")
		exitCode = 1
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	// flush pending views before the connection goes away
	if err := publisher.Close(shutdownCtx); err != nil {
		logger.Error("failed to flush view events", "error", err)
	}
	if err := bus.Close(); err != nil {
		logger.Error("failed to close broker connection", "error", err)
	}

	wg.Wait()
	logger.Info("gateway shutdown complete")
	return exitCode
}
