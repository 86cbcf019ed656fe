package port

import (
	"context"
	"flixtube/internal/core/domain"
	"time"
)

// HistoryRepository is an interface to define view history interactions
type HistoryRepository interface {
	// Insert returns domain.ErrAlreadyExists when the view id was already recorded.
	Insert(ctx context.Context, view domain.ViewRecord) error
	ListRecent(ctx context.Context, limit int) ([]domain.ViewRecord, error)
	DeleteOlderThan(ctx context.Context, before time.Time) (int64, error)
}

// ViewCountRepository is an interface to define per video view counters
type ViewCountRepository interface {
	Increment(ctx context.Context, videoPath string) error
	ListPopular(ctx context.Context, limit int) ([]domain.PopularVideo, error)
}

// HistoryService is an interface to define the history read side and maintenance
type HistoryService interface {
	RecentViews(ctx context.Context, limit int) ([]domain.ViewRecord, error)
	PopularVideos(ctx context.Context, limit int) ([]domain.PopularVideo, error)
	PruneHistory(ctx context.Context, now time.Time) (int64, error)
}
