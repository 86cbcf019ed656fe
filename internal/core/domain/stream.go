package domain

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultVideoContentType is used when the storage tier does not know better
const DefaultVideoContentType = "video/mp4"

// ObjectInfo describes a stored object before any byte is read
type ObjectInfo struct {
	Path        string
	Size        int64
	ContentType string
	ETag        string
}

// ByteRange is an inclusive byte interval of an object
type ByteRange struct {
	Start int64
	End   int64
}

// Length returns the number of bytes covered by the range
func (r ByteRange) Length() int64 {
	return r.End - r.Start + 1
}

// ContentRange formats the Content-Range header value for an object of size bytes
func (r ByteRange) ContentRange(size int64) string {
	return fmt.Sprintf("bytes %d-%d/%d", r.Start, r.End, size)
}

// StreamHandle is an open transfer of an object (or part of it).
// It is owned by a single request and must be closed by it.
type StreamHandle struct {
	Body        io.ReadCloser
	TotalLength int64
	ContentType string
	ETag        string
	// Range is nil when the whole object is transferred.
	Range *ByteRange
}

// ContentLength is the number of bytes the handle will produce
func (h *StreamHandle) ContentLength() int64 {
	if h.Range != nil {
		return h.Range.Length()
	}
	return h.TotalLength
}

// Close releases the underlying reader
func (h *StreamHandle) Close() error {
	if h.Body == nil {
		return nil
	}
	return h.Body.Close()
}

// ParseByteRange parses a single "bytes=" Range header against an object of size bytes.
// An empty header returns nil. Multiple ranges are not supported and yield the whole object.
func ParseByteRange(header string, size int64) (*ByteRange, error) {
	if header == "" {
		return nil, nil
	}
	const prefix = "bytes="
	if !strings.HasPrefix(header, prefix) {
		return nil, fmt.Errorf("%w: unsupported unit in %q", ErrInvalidRange, header)
	}
	ranges := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if strings.Contains(ranges, ",") {
		return nil, nil
	}
	startStr, endStr, ok := strings.Cut(ranges, "-")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRange, header)
	}
	startStr, endStr = strings.TrimSpace(startStr), strings.TrimSpace(endStr)

	if size <= 0 {
		return nil, fmt.Errorf("%w: empty object", ErrInvalidRange)
	}

	// suffix range: last n bytes
	if startStr == "" {
		n, err := strconv.ParseInt(endStr, 10, 64)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRange, header)
		}
		if n > size {
			n = size
		}
		return &ByteRange{Start: size - n, End: size - 1}, nil
	}

	start, err := strconv.ParseInt(startStr, 10, 64)
	if err != nil || start < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRange, header)
	}
	if start >= size {
		return nil, fmt.Errorf("%w: start %d beyond size %d", ErrInvalidRange, start, size)
	}
	end := size - 1
	if endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil || end < start {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRange, header)
		}
		if end > size-1 {
			end = size - 1
		}
	}
	return &ByteRange{Start: start, End: end}, nil
}

// RangeError reports an unsatisfiable range together with the object size,
// which is needed for the "bytes */size" Content-Range of a 416 response.
type RangeError struct {
	Size int64
	Err  error
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%v (object size %d)", e.Err, e.Size)
}

func (e *RangeError) Unwrap() error {
	return e.Err
}
