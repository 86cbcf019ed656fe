package storage

import (
	"errors"
	v1 "flixtube/internal/adapters/handlers/http/chi/v1"
	"flixtube/internal/core/domain"
	"flixtube/internal/metrics"
	"fmt"
	"net/http"
	"strconv"
)

const service = "storage"

// ServeVideoV1 streams the object stored at ?path= with a fixed Content-Length.
// A single byte range is honoured with 206, an unsatisfiable one gets 416.
func (h *HandlerV1) ServeVideoV1(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")

	rangeHeader := r.Header.Get("Range")
	handle, err := h.resolver.Resolve(r.Context(), path, rangeHeader)
	var rangeErr *domain.RangeError
	switch {
	case errors.As(err, &rangeErr):
		w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", rangeErr.Size))
		h.fail(w, http.StatusRequestedRangeNotSatisfiable, "requested range not satisfiable", "rejected")
		return
	case errors.Is(err, domain.ErrInvalidStoragePath):
		h.fail(w, http.StatusBadRequest, "invalid path", "rejected")
		return
	case errors.Is(err, domain.ErrObjectNotFound):
		h.fail(w, http.StatusNotFound, "video not found", "not_found")
		return
	case err != nil:
		h.logger.Error("error resolving object", "path", path, "error", err)
		h.fail(w, http.StatusInternalServerError, "internal server error", "lookup_failed")
		return
	}
	defer handle.Close()

	header := w.Header()
	header.Set("Content-Type", handle.ContentType)
	header.Set("Content-Length", strconv.FormatInt(handle.ContentLength(), 10))
	header.Set("Accept-Ranges", "bytes")
	if handle.ETag != "" {
		header.Set("ETag", handle.ETag)
	}

	status := http.StatusOK
	if handle.Range != nil {
		status = http.StatusPartialContent
		header.Set("Content-Range", handle.Range.ContentRange(handle.TotalLength))
	}
	w.WriteHeader(status)

	if r.Method == http.MethodHead {
		metrics.RecordStreamOutcome(service, status, "completed")
		return
	}
	if err := http.NewResponseController(w).Flush(); err != nil {
		h.logger.Debug("could not flush response headers", "path", path, "error", err)
	}

	written, err := v1.Relay(w, handle.Body)
	metrics.RecordStreamedBytes(service, written)
	if err != nil {
		if errors.Is(err, v1.ErrDownstreamWrite) {
			h.logger.Info("client went away mid-stream", "path", path, "written", written)
			metrics.RecordStreamOutcome(service, status, "client_aborted")
			return
		}
		h.logger.Error("storage failed mid-stream", "path", path, "written", written, "error", err)
		metrics.RecordStreamOutcome(service, status, "upstream_aborted")
		panic(http.ErrAbortHandler)
	}
	metrics.RecordStreamOutcome(service, status, "completed")
}

func (h *HandlerV1) fail(w http.ResponseWriter, status int, msg, outcome string) {
	metrics.RecordStreamOutcome(service, status, outcome)
	http.Error(w, msg, status)
}
