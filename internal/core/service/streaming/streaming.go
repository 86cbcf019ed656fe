package streaming

import (
	"flixtube/internal/config"
	"flixtube/internal/core/port"
	"log/slog"
	"time"
)

type streamingService struct {
	videos        port.VideoRepository
	recorder      port.ViewRecorder
	lookupTimeout time.Duration
	logger        *slog.Logger
}

// NewStreamingService creates the gateway core: id lookup and view recording
func NewStreamingService(videos port.VideoRepository, recorder port.ViewRecorder, cfg config.StreamConfig, logger *slog.Logger) port.StreamingService {
	return &streamingService{
		videos:        videos,
		recorder:      recorder,
		lookupTimeout: cfg.LookupTimeout,
		logger:        logger,
	}
}
