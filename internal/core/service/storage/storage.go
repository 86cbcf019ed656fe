package storage

import (
	"flixtube/internal/config"
	"flixtube/internal/core/domain"
	"flixtube/internal/core/port"
	"log/slog"
)

type storageService struct {
	objects     port.ObjectStorage
	contentType string
	logger      *slog.Logger
}

// NewStorageService creates a new storage resolver over an object storage backend
func NewStorageService(objects port.ObjectStorage, cfg config.StorageConfig, logger *slog.Logger) port.StorageResolver {
	contentType := cfg.ContentType
	if contentType == "" {
		contentType = domain.DefaultVideoContentType
	}
	return &storageService{objects: objects, contentType: contentType, logger: logger}
}
