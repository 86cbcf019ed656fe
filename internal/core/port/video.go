package port

import (
	"context"
	"flixtube/internal/core/domain"
)

// VideoRepository is an interface to define video catalog interactions
type VideoRepository interface {
	// Insert returns domain.ErrAlreadyExists when the id is taken.
	Insert(ctx context.Context, video domain.Video) error
	// FindByID returns domain.ErrVideoNotFound or an error wrapping domain.ErrUnavailable.
	FindByID(ctx context.Context, id string) (*domain.Video, error)
	List(ctx context.Context) ([]domain.Video, error)
}

// CatalogService is an interface to define the catalog read side
type CatalogService interface {
	GetVideo(ctx context.Context, id string) (*domain.Video, error)
	ListVideos(ctx context.Context) ([]domain.Video, error)
}
