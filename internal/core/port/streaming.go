package port

import (
	"context"
	"flixtube/internal/core/domain"
	"net/http"
)

// StorageForwarder forwards a client request to the storage service
type StorageForwarder interface {
	// Forward passes the inbound request through to the storage tier for path.
	// The caller owns the returned response body.
	Forward(ctx context.Context, inbound *http.Request, path string) (*http.Response, error)
}

// ViewRecorder records that a video was viewed, without blocking the caller
type ViewRecorder interface {
	RecordView(ctx context.Context, event domain.ViewEvent)
}

// StreamingService is an interface to define the gateway core
type StreamingService interface {
	ResolveVideo(ctx context.Context, id string) (*domain.Video, error)
	RecordView(ctx context.Context, video domain.Video)
}
