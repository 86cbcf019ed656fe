package postgres

import (
	"context"
	"flixtube/internal/core/domain"
	"flixtube/internal/core/port"
	"fmt"
)

type sqlViewCountRepository struct {
	db SQLQuerier
}

// NewSqlViewCountRepository creates sqlViewCountRepository that implements port.ViewCountRepository
func NewSqlViewCountRepository(db SQLQuerier) port.ViewCountRepository {
	return &sqlViewCountRepository{db: db}
}

// Increment adds one view to the counter of a video path
func (s *sqlViewCountRepository) Increment(ctx context.Context, videoPath string) error {
	query := `INSERT INTO video_views (video_path, views, last_viewed_at) VALUES ($1, 1, now())
              ON CONFLICT (video_path) DO UPDATE
              SET views = video_views.views + 1, last_viewed_at = now()`

	if _, err := s.db.ExecContext(ctx, query, videoPath); err != nil {
		return fmt.Errorf("%w: error incrementing views: %w", domain.ErrUnavailable, err)
	}
	return nil
}

// ListPopular lists the most viewed paths first
func (s *sqlViewCountRepository) ListPopular(ctx context.Context, limit int) ([]domain.PopularVideo, error) {
	query := `SELECT video_path, views FROM video_views ORDER BY views DESC, video_path LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: error querying views: %w", domain.ErrUnavailable, err)
	}
	defer rows.Close()

	popular := make([]domain.PopularVideo, 0, limit)
	for rows.Next() {
		var p domain.PopularVideo
		if err := rows.Scan(&p.VideoPath, &p.Views); err != nil {
			return nil, fmt.Errorf("error scanning views: %w", err)
		}
		popular = append(popular, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating views: %w", err)
	}
	return popular, nil
}
