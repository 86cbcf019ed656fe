package history

import (
	"flixtube/internal/config"
	"flixtube/internal/core/port"
	"log/slog"
	"time"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

type historyService struct {
	uow       port.UnitOfWork
	retention time.Duration
	logger    *slog.Logger
}

// NewHistoryService creates the history read and maintenance service
func NewHistoryService(uow port.UnitOfWork, cfg config.RetentionConfig, logger *slog.Logger) port.HistoryService {
	return &historyService{
		uow:       uow,
		retention: cfg.Retention,
		logger:    logger,
	}
}

type viewHandler struct {
	uow    port.UnitOfWork
	logger *slog.Logger
}

// NewViewHandler creates the handler that folds view events into the history
func NewViewHandler(uow port.UnitOfWork, logger *slog.Logger) port.MessageHandler {
	return &viewHandler{uow: uow, logger: logger}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
