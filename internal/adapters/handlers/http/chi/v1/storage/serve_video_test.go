package storage_test

import (
	"bytes"
	"errors"
	"flixtube/internal/adapters/handlers/http/chi"
	storagehandler "flixtube/internal/adapters/handlers/http/chi/v1/storage"
	"flixtube/internal/adapters/storage/localfs"
	"flixtube/internal/config"
	"flixtube/internal/core/domain"
	storageservice "flixtube/internal/core/service/storage"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) (http.Handler, []byte) {
	t.Helper()
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	dir := t.TempDir()
	content := make([]byte, 1<<20)
	for i := range content {
		content[i] = byte(i % 251)
	}
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "videos"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "videos", "sample.mp4"), content, 0o644))

	adapter, err := localfs.NewAdapter(dir, discardLogger)
	require.NoError(t, err)
	resolver := storageservice.NewStorageService(adapter, config.StorageConfig{ContentType: "video/mp4"}, discardLogger)
	handler := storagehandler.NewStorageHandlerV1(resolver, discardLogger)
	return chi.NewRouter(discardLogger, chi.RouterConfig{}, handler), content
}

func TestServeVideoV1(t *testing.T) {
	h, content := newRouter(t)

	t.Run("success - whole object", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/video?path=videos/sample.mp4", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1048576", w.Header().Get("Content-Length"))
		assert.Equal(t, "video/mp4", w.Header().Get("Content-Type"))
		assert.Equal(t, "bytes", w.Header().Get("Accept-Ranges"))
		assert.True(t, bytes.Equal(content, w.Body.Bytes()))
	})

	t.Run("success - range", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/video?path=videos/sample.mp4", nil)
		req.Header.Set("Range", "bytes=1000-1999")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusPartialContent, w.Code)
		assert.Equal(t, "1000", w.Header().Get("Content-Length"))
		assert.Equal(t, "bytes 1000-1999/1048576", w.Header().Get("Content-Range"))
		assert.Equal(t, content[1000:2000], w.Body.Bytes())
	})

	t.Run("success - suffix range", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/video?path=videos/sample.mp4", nil)
		req.Header.Set("Range", "bytes=-10")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusPartialContent, w.Code)
		assert.Equal(t, content[len(content)-10:], w.Body.Bytes())
	})

	t.Run("success - head", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodHead, "/video?path=videos/sample.mp4", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "1048576", w.Header().Get("Content-Length"))
		assert.Zero(t, w.Body.Len())
	})

	t.Run("error - unsatisfiable range", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/video?path=videos/sample.mp4", nil)
		req.Header.Set("Range", "bytes=2000000-")

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusRequestedRangeNotSatisfiable, w.Code)
		assert.Equal(t, "bytes */1048576", w.Header().Get("Content-Range"))
	})

	t.Run("error - not found", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/video?path=videos/missing.mp4", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("error - missing path", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/video", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("error - traversal", func(t *testing.T) {
		// Arrange
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/video?path=../secret", nil)

		// Act
		h.ServeHTTP(w, req)

		// Assert
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestServeVideoV1_BackendFailure(t *testing.T) {
	// Arrange
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := storageservice.NewMockStorageResolver()
	resolver.On("Resolve", mock.Anything, "videos/sample.mp4", "").Return(nil, domain.ErrUnavailable)
	h := chi.NewRouter(discardLogger, chi.RouterConfig{}, storagehandler.NewStorageHandlerV1(resolver, discardLogger))
	w := httptest.NewRecorder()

	// Act
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/video?path=videos/sample.mp4", nil))

	// Assert
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resolver.AssertExpectations(t)
}

func TestServeVideoV1_BackendFailsMidStream(t *testing.T) {
	// Arrange
	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))
	resolver := storageservice.NewMockStorageResolver()
	resolver.On("Resolve", mock.Anything, "videos/sample.mp4", "").Return(&domain.StreamHandle{
		Body:        io.NopCloser(io.MultiReader(strings.NewReader("partial"), failingReader{})),
		TotalLength: 100,
		ContentType: "video/mp4",
	}, nil)
	server := httptest.NewServer(chi.NewRouter(discardLogger, chi.RouterConfig{}, storagehandler.NewStorageHandlerV1(resolver, discardLogger)))
	defer server.Close()

	// Act
	resp, err := http.Get(server.URL + "/video?path=videos/sample.mp4")
	require.NoError(t, err)
	defer resp.Body.Close()
	_, readErr := io.ReadAll(resp.Body)

	// Assert
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "100", resp.Header.Get("Content-Length"))
	assert.Error(t, readErr)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk read failed")
}
