package history_test

import (
	"flixtube/internal/adapters/handlers/http/chi"
	"flixtube/internal/adapters/handlers/http/chi/v1/history"
	"flixtube/internal/core/domain"
	historyservice "flixtube/internal/core/service/history"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRouter(service *historyservice.MockHistoryService) http.Handler {
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return chi.NewRouter(discardLogger, chi.RouterConfig{}, history.NewHistoryHandlerV1(service, discardLogger))
}

func TestRecentViewsV1(t *testing.T) {
	t.Run("RecentViews - Success with limit", func(t *testing.T) {
		// Arrange
		id := uuid.New()
		viewedAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		mockService := historyservice.NewMockHistoryService()
		mockService.On("RecentViews", mock.Anything, 5).Return([]domain.ViewRecord{
			{ID: id, VideoPath: "videos/sample.mp4", ViewedAt: viewedAt},
		}, nil)
		w := httptest.NewRecorder()

		// Act
		newRouter(mockService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history?limit=5", nil))

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		var response history.V1RecentViewsResponse
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		require.Len(t, response.Views, 1)
		assert.Equal(t, id.String(), response.Views[0].ID)
		assert.Equal(t, "videos/sample.mp4", response.Views[0].VideoPath)
		assert.True(t, viewedAt.Equal(response.Views[0].ViewedAt))
		mockService.AssertExpectations(t)
	})

	t.Run("RecentViews - Default limit", func(t *testing.T) {
		// Arrange
		mockService := historyservice.NewMockHistoryService()
		mockService.On("RecentViews", mock.Anything, 0).Return([]domain.ViewRecord{}, nil)
		w := httptest.NewRecorder()

		// Act
		newRouter(mockService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history", nil))

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"views":[]}`, w.Body.String())
	})

	t.Run("RecentViews - Invalid limit", func(t *testing.T) {
		// Arrange
		mockService := historyservice.NewMockHistoryService()
		w := httptest.NewRecorder()

		// Act
		newRouter(mockService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history?limit=-1", nil))

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "RecentViews", mock.Anything, mock.Anything)
	})

	t.Run("RecentViews - Database unavailable", func(t *testing.T) {
		// Arrange
		mockService := historyservice.NewMockHistoryService()
		mockService.On("RecentViews", mock.Anything, 0).Return([]domain.ViewRecord(nil), domain.ErrUnavailable)
		w := httptest.NewRecorder()

		// Act
		newRouter(mockService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/history", nil))

		// Assert
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestPopularVideosV1(t *testing.T) {
	t.Run("PopularVideos - Success", func(t *testing.T) {
		// Arrange
		mockService := historyservice.NewMockHistoryService()
		mockService.On("PopularVideos", mock.Anything, 2).Return([]domain.PopularVideo{
			{VideoPath: "a.mp4", Views: 9},
			{VideoPath: "b.mp4", Views: 3},
		}, nil)
		w := httptest.NewRecorder()

		// Act
		newRouter(mockService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/popular?limit=2", nil))

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"videos":[{"videoPath":"a.mp4","views":9},{"videoPath":"b.mp4","views":3}]}`, w.Body.String())
	})

	t.Run("PopularVideos - Non numeric limit", func(t *testing.T) {
		// Arrange
		mockService := historyservice.NewMockHistoryService()
		w := httptest.NewRecorder()

		// Act
		newRouter(mockService).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/popular?limit=ten", nil))

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
