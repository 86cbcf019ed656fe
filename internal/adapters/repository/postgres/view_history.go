package postgres

import (
	"context"
	"flixtube/internal/core/domain"
	"flixtube/internal/core/port"
	"fmt"
	"time"
)

type sqlHistoryRepository struct {
	db SQLQuerier
}

// NewSqlHistoryRepository creates sqlHistoryRepository that implements port.HistoryRepository
func NewSqlHistoryRepository(db SQLQuerier) port.HistoryRepository {
	return &sqlHistoryRepository{db: db}
}

// Insert records a view, keyed by the id of the message that carried it
func (s *sqlHistoryRepository) Insert(ctx context.Context, view domain.ViewRecord) error {
	query := `INSERT INTO view_history (id, video_path, viewed_at) VALUES ($1, $2, $3)
              ON CONFLICT (id) DO NOTHING`

	result, err := s.db.ExecContext(ctx, query, view.ID, view.VideoPath, view.ViewedAt)
	if err != nil {
		return fmt.Errorf("%w: error inserting view: %w", domain.ErrUnavailable, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("view %s : %w", view.ID, domain.ErrAlreadyExists)
	}
	return nil
}

// ListRecent lists the latest views first
func (s *sqlHistoryRepository) ListRecent(ctx context.Context, limit int) ([]domain.ViewRecord, error) {
	query := `SELECT id, video_path, viewed_at FROM view_history ORDER BY viewed_at DESC, id LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: error querying history: %w", domain.ErrUnavailable, err)
	}
	defer rows.Close()

	views := make([]domain.ViewRecord, 0, limit)
	for rows.Next() {
		var v domain.ViewRecord
		if err := rows.Scan(&v.ID, &v.VideoPath, &v.ViewedAt); err != nil {
			return nil, fmt.Errorf("error scanning view: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}
	return views, nil
}

// DeleteOlderThan deletes views recorded before the given time
func (s *sqlHistoryRepository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM view_history WHERE viewed_at < $1`

	result, err := s.db.ExecContext(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("%w: error deleting history: %w", domain.ErrUnavailable, err)
	}
	return result.RowsAffected()
}
