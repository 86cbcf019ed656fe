package catalog

import (
	"flixtube/internal/core/port"
	"log/slog"
)

type catalogService struct {
	repo   port.VideoRepository
	logger *slog.Logger
}

// NewCatalogService creates the catalog read service
func NewCatalogService(repo port.VideoRepository, logger *slog.Logger) port.CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

type uploadHandler struct {
	repo   port.VideoRepository
	logger *slog.Logger
}

// NewUploadHandler creates the handler that turns upload events into catalog entries
func NewUploadHandler(repo port.VideoRepository, logger *slog.Logger) port.MessageHandler {
	return &uploadHandler{repo: repo, logger: logger}
}
