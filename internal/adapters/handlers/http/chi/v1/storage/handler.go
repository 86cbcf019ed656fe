package storage

import (
	"flixtube/internal/core/port"
	"log/slog"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for the storage video route
type HandlerV1 struct {
	resolver port.StorageResolver
	logger   *slog.Logger
}

// NewStorageHandlerV1 creates HandlerV1
func NewStorageHandlerV1(resolver port.StorageResolver, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		resolver: resolver,
		logger:   logger,
	}
}

// Register exposes handler routes
func (h *HandlerV1) Register(r chi.Router) {
	r.Get("/video", h.ServeVideoV1)
	r.Head("/video", h.ServeVideoV1)
}
