package postgres

import (
	"context"
	"database/sql"
	"errors"
	"flixtube/internal/core/domain"
	"flixtube/internal/core/port"
	"fmt"
	"time"
)

type sqlVideoRepository struct {
	db SQLQuerier
}

// NewSqlVideoRepository creates sqlVideoRepository that implements port.VideoRepository
func NewSqlVideoRepository(db SQLQuerier) port.VideoRepository {
	return &sqlVideoRepository{
		db: db,
	}
}

// Insert creates a new catalog entry
func (s *sqlVideoRepository) Insert(ctx context.Context, video domain.Video) error {
	query := `INSERT INTO videos (id, path, name) VALUES ($1, $2, $3)`

	_, err := s.db.ExecContext(ctx, query, video.ID, video.Path, video.Name)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("video %s : %w", video.ID, domain.ErrAlreadyExists)
		}
		return fmt.Errorf("%w: error inserting video: %w", domain.ErrUnavailable, err)
	}
	return nil
}

// FindByID finds by exact id
func (s *sqlVideoRepository) FindByID(ctx context.Context, id string) (*domain.Video, error) {
	query := `SELECT id, path, name, created_at FROM videos WHERE id = $1`

	var dbVideo dbVideo
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&dbVideo.ID,
		&dbVideo.Path,
		&dbVideo.Name,
		&dbVideo.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrVideoNotFound
		}
		return nil, fmt.Errorf("%w: error finding video: %w", domain.ErrUnavailable, err)
	}

	return dbVideo.ToDomain(), nil
}

// List lists every video, oldest first
func (s *sqlVideoRepository) List(ctx context.Context) ([]domain.Video, error) {
	query := `SELECT id, path, name, created_at FROM videos ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: error querying videos: %w", domain.ErrUnavailable, err)
	}
	defer rows.Close()

	videos := make([]domain.Video, 0)
	for rows.Next() {
		var v dbVideo
		if err := rows.Scan(&v.ID, &v.Path, &v.Name, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning video: %w", err)
		}
		videos = append(videos, *v.ToDomain())
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating videos: %w", err)
	}

	return videos, nil
}

// dbVideo represents a video in DB
type dbVideo struct {
	ID        string    `db:"id"`
	Path      string    `db:"path"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

// ToDomain converts to domain.Video
func (v *dbVideo) ToDomain() *domain.Video {
	return &domain.Video{
		ID:        v.ID,
		Path:      v.Path,
		Name:      v.Name,
		CreatedAt: v.CreatedAt,
	}
}
