package history

import (
	"context"
	"flixtube/internal/core/domain"
)

// RecentViews lists the latest views, newest first
func (h *historyService) RecentViews(ctx context.Context, limit int) ([]domain.ViewRecord, error) {
	return h.uow.HistoryRepo().ListRecent(ctx, clampLimit(limit))
}

// PopularVideos lists the most viewed video paths
func (h *historyService) PopularVideos(ctx context.Context, limit int) ([]domain.PopularVideo, error) {
	return h.uow.ViewCountRepo().ListPopular(ctx, clampLimit(limit))
}
