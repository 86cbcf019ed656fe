package minio

import (
	"context"
	"errors"
	"flixtube/internal/config"
	"flixtube/internal/core/domain"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Adapter is an adapter for minio
type Adapter struct {
	client *minio.Client
	config config.MinioConfig
	logger *slog.Logger
}

// NewAdapter returns Adapter
func NewAdapter(ctx context.Context, cfg config.MinioConfig, logger *slog.Logger) (*Adapter, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to check if bucket exists: %w", domain.ErrUnavailable, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &Adapter{client: client, config: cfg, logger: logger}, nil
}

// Stat retrieves obj info
func (a *Adapter) Stat(ctx context.Context, path string) (*domain.ObjectInfo, error) {
	info, err := a.client.StatObject(ctx, a.config.BucketName, path, minio.StatObjectOptions{})
	if err != nil {
		return nil, a.mapError(path, err)
	}
	return &domain.ObjectInfo{
		Path:        path,
		Size:        info.Size,
		ContentType: info.ContentType,
		ETag:        info.ETag,
	}, nil
}

// Open retrieves an obj, or the requested part of it
func (a *Adapter) Open(ctx context.Context, path string, byteRange *domain.ByteRange) (io.ReadCloser, error) {
	opts := minio.GetObjectOptions{}
	if byteRange != nil {
		if err := opts.SetRange(byteRange.Start, byteRange.End); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidRange, err)
		}
	}

	object, err := a.client.GetObject(ctx, a.config.BucketName, path, opts)
	if err != nil {
		return nil, a.mapError(path, err)
	}
	// GetObject is lazy, Stat issues the request so a missing key fails here and not mid-stream
	if _, err := object.Stat(); err != nil {
		object.Close()
		return nil, a.mapError(path, err)
	}
	return object, nil
}

// Put stores an object
func (a *Adapter) Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	_, err := a.client.PutObject(ctx, a.config.BucketName, path, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return a.mapError(path, err)
	}
	a.logger.Info("object stored", slog.String("path", path), slog.String("bucket", a.config.BucketName))
	return nil
}

func (a *Adapter) mapError(path string, err error) error {
	resp := minio.ToErrorResponse(err)
	switch {
	case resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrObjectNotFound, path)
	case resp.Code == "InvalidRange" || resp.StatusCode == http.StatusRequestedRangeNotSatisfiable:
		return fmt.Errorf("%w: %s", domain.ErrInvalidRange, path)
	case errors.Is(err, context.Canceled):
		return err
	default:
		return fmt.Errorf("%w: minio %s: %w", domain.ErrUnavailable, path, err)
	}
}
