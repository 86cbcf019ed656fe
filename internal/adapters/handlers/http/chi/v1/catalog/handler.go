package catalog

import (
	"flixtube/internal/core/port"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
)

// HandlerV1 is the handler for the catalog read routes
type HandlerV1 struct {
	catalogService port.CatalogService
	logger         *slog.Logger
}

// NewCatalogHandlerV1 creates HandlerV1
func NewCatalogHandlerV1(service port.CatalogService, logger *slog.Logger) *HandlerV1 {
	return &HandlerV1{
		catalogService: service,
		logger:         logger,
	}
}

// Register exposes handler routes
func (h *HandlerV1) Register(r chi.Router) {
	r.Get("/videos", h.ListVideosV1)
	r.Get("/video", h.GetVideoV1)
}

type V1Video struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}
