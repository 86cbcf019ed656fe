package localfs

import (
	"context"
	"errors"
	"flixtube/internal/core/domain"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"strings"
)

// Adapter serves objects from a directory on the local filesystem
type Adapter struct {
	root   string
	fsys   fs.FS
	logger *slog.Logger
}

// NewAdapter returns Adapter rooted at dir
func NewAdapter(dir string, logger *slog.Logger) (*Adapter, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to stat storage root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("storage root %s is not a directory", dir)
	}
	return &Adapter{root: dir, fsys: os.DirFS(dir), logger: logger}, nil
}

// Stat retrieves obj info
func (a *Adapter) Stat(ctx context.Context, objectPath string) (*domain.ObjectInfo, error) {
	name, err := cleanPath(objectPath)
	if err != nil {
		return nil, err
	}
	info, err := fs.Stat(a.fsys, name)
	if err != nil {
		return nil, a.mapError(objectPath, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrObjectNotFound, objectPath)
	}
	return &domain.ObjectInfo{
		Path:        objectPath,
		Size:        info.Size(),
		ContentType: mime.TypeByExtension(path.Ext(name)),
	}, nil
}

// Open retrieves an obj, or the requested part of it
func (a *Adapter) Open(ctx context.Context, objectPath string, byteRange *domain.ByteRange) (io.ReadCloser, error) {
	name, err := cleanPath(objectPath)
	if err != nil {
		return nil, err
	}
	f, err := a.fsys.Open(name)
	if err != nil {
		return nil, a.mapError(objectPath, err)
	}
	if byteRange == nil {
		return f, nil
	}

	seeker, ok := f.(io.Seeker)
	if !ok {
		f.Close()
		return nil, fmt.Errorf("%w: %s is not seekable", domain.ErrUnavailable, objectPath)
	}
	if _, err := seeker.Seek(byteRange.Start, io.SeekStart); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: seek %s: %w", domain.ErrUnavailable, objectPath, err)
	}
	return &rangeReader{Reader: io.LimitReader(f, byteRange.Length()), Closer: f}, nil
}

type rangeReader struct {
	io.Reader
	io.Closer
}

// cleanPath turns a request path into an fs.FS name, rejecting anything that escapes the root
func cleanPath(objectPath string) (string, error) {
	name := strings.TrimPrefix(objectPath, "/")
	if !fs.ValidPath(name) || name == "." {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidStoragePath, objectPath)
	}
	return name, nil
}

func (a *Adapter) mapError(objectPath string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", domain.ErrObjectNotFound, objectPath)
	case errors.Is(err, fs.ErrInvalid):
		return fmt.Errorf("%w: %s", domain.ErrInvalidStoragePath, objectPath)
	default:
		a.logger.Error("failed to access object", slog.String("path", objectPath), slog.String("error", err.Error()))
		return fmt.Errorf("%w: %s: %w", domain.ErrUnavailable, objectPath, err)
	}
}
