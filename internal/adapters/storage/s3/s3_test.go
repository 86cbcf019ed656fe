package s3_test

import (
	"bytes"
	"context"
	"flixtube/internal/adapters/storage/minio"
	"flixtube/internal/adapters/storage/s3"
	"flixtube/internal/config"
	"flixtube/internal/core/domain"
	"fmt"
	"io"
	"log/slog"
	"testing"

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

// setupContainer starts minio as an S3 compatible endpoint
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
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "9000")
	require.NoError(t, err)

	cleanup := func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}
	return fmt.Sprintf("%s:%s", host, port.Port()), cleanup
}

func TestAdapter(t *testing.T) {
	endpoint, cleanup := setupContainer(t)
	defer cleanup()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// the minio adapter creates the bucket
	_, err := minio.NewAdapter(ctx, config.MinioConfig{
		Endpoint:   endpoint,
		AccessKey:  testAccessKey,
		SecretKey:  testSecretKey,
		BucketName: testBucket,
	}, logger)
	require.NoError(t, err)

	adapter, err := s3.NewAdapter(ctx, config.S3Config{
		Region:       "us-east-1",
		BucketName:   testBucket,
		Endpoint:     "http://" + endpoint,
		AccessKey:    testAccessKey,
		SecretKey:    testSecretKey,
		UsePathStyle: true,
	}, logger)
	require.NoError(t, err)

	content := bytes.Repeat([]byte("flixtube"), 1024)
	require.NoError(t, adapter.Put(ctx, "sample.mp4", bytes.NewReader(content), int64(len(content)), "video/mp4"))

	t.Run("Stat - Success", func(t *testing.T) {
		// Act
		info, err := adapter.Stat(ctx, "sample.mp4")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, int64(len(content)), info.Size)
		assert.Equal(t, "video/mp4", info.ContentType)
	})

	t.Run("Stat - Not Found", func(t *testing.T) {
		// Act
		_, err := adapter.Stat(ctx, "missing.mp4")

		// Assert
		assert.ErrorIs(t, err, domain.ErrObjectNotFound)
	})

	t.Run("Open - Range", func(t *testing.T) {
		// Act
		body, err := adapter.Open(ctx, "sample.mp4", &domain.ByteRange{Start: 8, End: 15})
		require.NoError(t, err)
		defer body.Close()
		got, err := io.ReadAll(body)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "flixtube", string(got))
	})

	t.Run("Open - Not Found", func(t *testing.T) {
		// Act
		body, err := adapter.Open(ctx, "missing.mp4", nil)

		// Assert
		assert.Nil(t, body)
		assert.ErrorIs(t, err, domain.ErrObjectNotFound)
	})
}
