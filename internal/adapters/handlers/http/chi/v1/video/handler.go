package video

import (
	"flixtube/internal/core/port"
	"log/slog"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for the gateway video route
type HandlerV1 struct {
	streamingService port.StreamingService
	forwarder        port.StorageForwarder
	logger           *slog.Logger
}

// NewVideoHandlerV1 creates HandlerV1
func NewVideoHandlerV1(service port.StreamingService, forwarder port.StorageForwarder, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		streamingService: service,
		forwarder:        forwarder,
		logger:           logger,
	}
}

// Register exposes handler routes
func (h *HandlerV1) Register(r chi.Router) {
	r.Get("/video", h.StreamVideoV1)
}
