package catalog

import (
	"context"
	"flixtube/internal/core/domain"
)

// GetVideo finds a video by its exact id
func (c *catalogService) GetVideo(ctx context.Context, id string) (*domain.Video, error) {
	if err := domain.ValidateVideoID(id); err != nil {
		return nil, err
	}
	return c.repo.FindByID(ctx, id)
}

// ListVideos lists the whole catalog
func (c *catalogService) ListVideos(ctx context.Context) ([]domain.Video, error) {
	return c.repo.List(ctx)
}
