package port

import (
	"context"
	"flixtube/internal/core/domain"
	"io"
)

// ObjectStorage is an interface to define blob storage interactions (filesystem, minio, s3)
type ObjectStorage interface {
	// Stat returns domain.ErrObjectNotFound when nothing is stored at path.
	Stat(ctx context.Context, path string) (*domain.ObjectInfo, error)
	// Open returns an independent reader; a nil range reads the whole object.
	Open(ctx context.Context, path string, byteRange *domain.ByteRange) (io.ReadCloser, error)
}

// StorageResolver resolves a storage path to an open stream
type StorageResolver interface {
	Resolve(ctx context.Context, path string, rangeHeader string) (*domain.StreamHandle, error)
}
