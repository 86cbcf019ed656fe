package v1

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
)

// relayBufferSize bounds the memory a single stream holds at any time
const relayBufferSize = 32 << 10

// ErrDownstreamWrite marks a relay that failed because the client went away
var ErrDownstreamWrite = errors.New("downstream write failed")

// Relay copies src to dst through a fixed buffer. A write only starts once the
// previous one returned, so a slow client slows the reads down.
// Write failures are wrapped with ErrDownstreamWrite; read failures are returned as is.
func Relay(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, relayBufferSize)
	var written int64
	for {
		n, readErr := src.Read(buf)
		if n > 0 {
			w, err := dst.Write(buf[:n])
			written += int64(w)
			if err == nil && w != n {
				err = io.ErrShortWrite
			}
			if err != nil {
				return written, errors.Join(ErrDownstreamWrite, err)
			}
		}
		if readErr == io.EOF {
			return written, nil
		}
		if readErr != nil {
			return written, readErr
		}
	}
}

// WriteJSON encodes v as the response body
func WriteJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("error encoding response", "error", err)
	}
}

// ParseLimit reads the optional limit query parameter; zero means the service default
func ParseLimit(r *http.Request) (int, error) {
	limit := r.URL.Query().Get("limit")
	if limit == "" {
		return 0, nil
	}
	limitInt, err := strconv.Atoi(limit)
	if err != nil {
		return 0, err
	}
	if limitInt <= 0 {
		return 0, errors.New("limit must be greater than zero")
	}
	return limitInt, nil
}
