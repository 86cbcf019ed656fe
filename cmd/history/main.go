package main

import (
	"context"
	"errors"
	"flixtube/internal/adapters/eventbroker/nats"
	"flixtube/internal/adapters/handlers/http/chi"
	"flixtube/internal/adapters/handlers/http/chi/v1/history"
	"flixtube/internal/adapters/repository/postgres"
	"flixtube/internal/config"
	"flixtube/internal/core/domain"
	"flixtube/internal/core/port"
	historyservice "flixtube/internal/core/service/history"
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

	cfg, err := config.LoadHistory()
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

	unitOfWork := postgres.NewUnitOfWork(db)
	historyService := historyservice.NewHistoryService(unitOfWork, cfg.Retention, logger)
	viewHandler := historyservice.NewViewHandler(unitOfWork, logger)

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
	sub, err := bus.Consume(ctx, domain.ExchangeViewed, viewHandler)
	if err != nil {
		logger.Error("failed to consume exchange", "exchange", domain.ExchangeViewed, "error", err)
		return 1
	}
	logger.Info("consuming views", "exchange", domain.ExchangeViewed, "queue", sub.Queue())

	//http
	historyHandler := history.NewHistoryHandlerV1(historyService, logger)
	router := chi.NewRouter(logger, chi.RouterConfig{Env: cfg.Env.Env, RequestTimeout: 30 * time.Second}, historyHandler)
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

	// init retention task
	taskCtx, cancelTask := context.WithCancel(ctx)
	wg.Add(1)
	go func() {
		defer wg.Done()
		initRetentionTask(taskCtx, historyService, cfg.Retention.CleanupEvery, logger)
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("gracefully shutting down history service")
	case <-bus.Closed():
		logger.Error("broker connection lost, shutting down history service")
		exitCode = 1
	}
	cancelTask()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown server", "error", err)
	} else {
		logger.Info("server gracefully shutdown complete")
	}

	if err := bus.Close(); err != nil {
		logger.Error("failed to close broker connection", "error", err)
	}

	wg.Wait()
	logger.Info("history service shutdown complete")
	return exitCode
}

func initRetentionTask(ctx context.Context, service port.HistoryService, every time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	logger.Info("retention task initialized", "interval", every)

	for {
		select {
		case <-ticker.C:
			deleted, err := service.PruneHistory(ctx, time.Now())
			if err != nil {
				logger.Error("failed to prune view history", "error", err)
			} else {
				logger.Info("retention task completed", "deleted", deleted)
			}
		case <-ctx.Done():
			logger.Info("retention task stopped")
			return
		}
	}
}
