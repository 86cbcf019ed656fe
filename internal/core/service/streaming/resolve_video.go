package streaming

import (
	"context"
	"errors"
	"flixtube/internal/core/domain"
	"fmt"
)

// ResolveVideo looks the id up in the catalog, failing fast: no retry, bounded by the lookup timeout
func (s *streamingService) ResolveVideo(ctx context.Context, id string) (*domain.Video, error) {
	if err := domain.ValidateVideoID(id); err != nil {
		return nil, err
	}

	if s.lookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.lookupTimeout)
		defer cancel()
	}

	video, err := s.videos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, domain.ErrUnavailable) {
			return nil, fmt.Errorf("%w: catalog lookup timed out: %w", domain.ErrUnavailable, err)
		}
		return nil, err
	}
	return video, nil
}
