package history_test

import (
	"context"
	"flixtube/internal/adapters/repository"
	"flixtube/internal/config"
	"flixtube/internal/core/domain"
	"flixtube/internal/core/service/history"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHistoryService_RecentViews(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("RecentViews - Default limit", func(t *testing.T) {
		// Arrange
		mockUow := repository.NewMockUnitOfWork()
		service := history.NewHistoryService(mockUow, config.RetentionConfig{}, logger)
		mockUow.GetHistoryRepoMock().On("ListRecent", ctx, 20).Return([]domain.ViewRecord{}, nil)

		// Act
		views, err := service.RecentViews(ctx, 0)

		// Assert
		assert.NoError(t, err)
		assert.Empty(t, views)
		mockUow.GetHistoryRepoMock().AssertExpectations(t)
	})

	t.Run("PopularVideos - Limit is capped", func(t *testing.T) {
		// Arrange
		mockUow := repository.NewMockUnitOfWork()
		service := history.NewHistoryService(mockUow, config.RetentionConfig{}, logger)
		popular := []domain.PopularVideo{{VideoPath: "a.mp4", Views: 3}}
		mockUow.GetViewCountRepoMock().On("ListPopular", ctx, 100).Return(popular, nil)

		// Act
		result, err := service.PopularVideos(ctx, 5000)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, popular, result)
		mockUow.GetViewCountRepoMock().AssertExpectations(t)
	})
}

func TestHistoryService_PruneHistory(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("PruneHistory - Deletes outside retention", func(t *testing.T) {
		// Arrange
		mockUow := repository.NewMockUnitOfWork()
		service := history.NewHistoryService(mockUow, config.RetentionConfig{Retention: 24 * time.Hour}, logger)
		mockUow.GetHistoryRepoMock().On("DeleteOlderThan", ctx, now.Add(-24*time.Hour)).Return(int64(7), nil)

		// Act
		deleted, err := service.PruneHistory(ctx, now)

		// Assert
		assert.NoError(t, err)
		assert.Equal(t, int64(7), deleted)
		mockUow.GetHistoryRepoMock().AssertExpectations(t)
	})

	t.Run("PruneHistory - Disabled retention", func(t *testing.T) {
		// Arrange
		mockUow := repository.NewMockUnitOfWork()
		service := history.NewHistoryService(mockUow, config.RetentionConfig{}, logger)

		// Act
		deleted, err := service.PruneHistory(ctx, now)

		// Assert
		assert.NoError(t, err)
		assert.Zero(t, deleted)
		mockUow.GetHistoryRepoMock().AssertNotCalled(t, "DeleteOlderThan")
	})

	t.Run("PruneHistory - Error", func(t *testing.T) {
		// Arrange
		mockUow := repository.NewMockUnitOfWork()
		service := history.NewHistoryService(mockUow, config.RetentionConfig{Retention: time.Hour}, logger)
		mockUow.GetHistoryRepoMock().On("DeleteOlderThan", ctx, now.Add(-time.Hour)).Return(int64(0), domain.ErrUnavailable)

		// Act
		_, err := service.PruneHistory(ctx, now)

		// Assert
		assert.ErrorIs(t, err, domain.ErrUnavailable)
	})
}
