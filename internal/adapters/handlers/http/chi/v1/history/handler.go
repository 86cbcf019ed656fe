package history

import (
	"flixtube/internal/core/port"
	"log/slog"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for the history read routes
type HandlerV1 struct {
	historyService port.HistoryService
	logger         *slog.Logger
}

// NewHistoryHandlerV1 creates HandlerV1
func NewHistoryHandlerV1(service port.HistoryService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		historyService: service,
		logger:         logger,
	}
}

// Register exposes handler routes
func (h *HandlerV1) Register(r chi.Router) {
	r.Get("/history", h.RecentViewsV1)
	r.Get("/popular", h.PopularVideosV1)
}
