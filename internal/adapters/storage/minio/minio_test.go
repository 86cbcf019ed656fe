package minio_test

import (
	"bytes"
	"context"
	"crypto/rand"
	"flixtube/internal/adapters/storage/minio"
	"flixtube/internal/config"
	"flixtube/internal/core/domain"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testAccessKey = "minioadmin"
	testSecretKey = "minioadmin"
	testBucket    = "videos"
)

func setupContainer(t *testing.T) (string, func()) {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "minio/minio:latest",
		ExposedPorts: []string{"9000/tcp"},
		Env: map[string]string{
			"MINIO_ROOT_USER":     testAccessKey,
			"MINIO_ROOT_PASSWORD": testSecretKey,
		},
		Cmd:        []string{"server", "/data"},
		WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000"),
	}
	minioContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := minioContainer.Host(ctx)
	require.NoError(t, err)

	port, err := minioContainer.MappedPort(ctx, "9000")
	require.NoError(t, err)

	endpoint := fmt.Sprintf("%s:%s", host, port.Port())

	cleanup := func() {
		if err := minioContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	time.Sleep(500 * time.Millisecond) // wait for container to be up
	return endpoint, cleanup
}

func createAdapter(t *testing.T, endpoint string, ctx context.Context) *minio.Adapter {
	t.Helper()
	cfg := config.MinioConfig{
		Endpoint:   endpoint,
		AccessKey:  testAccessKey,
		SecretKey:  testSecretKey,
		BucketName: testBucket,
		UseSSL:     false,
	}

	discardLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	adapter, err := minio.NewAdapter(ctx, cfg, discardLogger)

	require.NoError(t, err)
	require.NotNil(t, adapter)

	return adapter
}

func TestAdapter(t *testing.T) {
	endpoint, cleanup := setupContainer(t)
	defer cleanup()
	ctx := context.Background()
	adapter := createAdapter(t, endpoint, ctx)

	content := make([]byte, 1<<20)
	_, err := rand.Read(content)
	require.NoError(t, err)
	require.NoError(t, adapter.Put(ctx, "videos/sample.mp4", bytes.NewReader(content), int64(len(content)), "video/mp4"))

	t.Run("Stat - Success", func(t *testing.T) {
		// Act
		info, err := adapter.Stat(ctx, "videos/sample.mp4")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(1<<20), info.Size)
		assert.Equal(t, "video/mp4", info.ContentType)
		assert.NotEmpty(t, info.ETag)
	})

	t.Run("Stat - Not Found", func(t *testing.T) {
		// Act
		info, err := adapter.Stat(ctx, "videos/missing.mp4")

		// Assert
		assert.Nil(t, info)
		assert.ErrorIs(t, err, domain.ErrObjectNotFound)
	})

	t.Run("Open - Whole object", func(t *testing.T) {
		// Act
		body, err := adapter.Open(ctx, "videos/sample.mp4", nil)
		require.NoError(t, err)
		defer body.Close()
		got, err := io.ReadAll(body)

		// Assert
		require.NoError(t, err)
		assert.True(t, bytes.Equal(content, got))
	})

	t.Run("Open - Range", func(t *testing.T) {
		// Act
		body, err := adapter.Open(ctx, "videos/sample.mp4", &domain.ByteRange{Start: 100, End: 199})
		require.NoError(t, err)
		defer body.Close()
		got, err := io.ReadAll(body)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, content[100:200], got)
	})

	t.Run("Open - Independent readers", func(t *testing.T) {
		// Act
		first, err := adapter.Open(ctx, "videos/sample.mp4", nil)
		require.NoError(t, err)
		defer first.Close()
		second, err := adapter.Open(ctx, "videos/sample.mp4", nil)
		require.NoError(t, err)
		defer second.Close()

		head := make([]byte, 10)
		_, err = io.ReadFull(first, head)
		require.NoError(t, err)
		all, err := io.ReadAll(second)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, content[:10], head)
		assert.Len(t, all, len(content))
	})

	t.Run("Open - Not Found", func(t *testing.T) {
		// Act
		body, err := adapter.Open(ctx, "videos/missing.mp4", nil)

		// Assert
		assert.Nil(t, body)
		assert.ErrorIs(t, err, domain.ErrObjectNotFound)
	})
}
