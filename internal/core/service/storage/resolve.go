package storage

import (
	"context"
	"errors"
	"flixtube/internal/core/domain"
	"fmt"
	"log/slog"
	"strings"
)

// Resolve stats the object so its length is known before any byte is read,
// then opens an independent reader for the requested range.
func (s *storageService) Resolve(ctx context.Context, path string, rangeHeader string) (*domain.StreamHandle, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("%w: empty path", domain.ErrInvalidStoragePath)
	}

	info, err := s.objects.Stat(ctx, path)
	if err != nil {
		return nil, err
	}

	byteRange, err := domain.ParseByteRange(rangeHeader, info.Size)
	if err != nil {
		return nil, &domain.RangeError{Size: info.Size, Err: err}
	}

	body, err := s.objects.Open(ctx, path, byteRange)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRange) {
			return nil, &domain.RangeError{Size: info.Size, Err: err}
		}
		return nil, err
	}

	s.logger.Debug("object resolved", slog.String("path", path), slog.Int64("size", info.Size), slog.Bool("partial", byteRange != nil))

	return &domain.StreamHandle{
		Body:        body,
		TotalLength: info.Size,
		ContentType: s.resolveContentType(info.ContentType),
		ETag:        info.ETag,
		Range:       byteRange,
	}, nil
}

// generic types reported by object stores are replaced by the configured video type
func (s *storageService) resolveContentType(stored string) string {
	switch stored {
	case "", "application/octet-stream", "binary/octet-stream":
		return s.contentType
	default:
		return stored
	}
}
