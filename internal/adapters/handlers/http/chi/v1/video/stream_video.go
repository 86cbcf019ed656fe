package video

import (
	"context"
	"errors"
	v1 "flixtube/internal/adapters/handlers/http/chi/v1"
	"flixtube/internal/core/domain"
	"flixtube/internal/metrics"
	"net/http"
)

const service = "gateway"

// StreamVideoV1 resolves the id, forwards the request to the storage service and relays
// the answer. The view is recorded once a 2xx body has been relayed completely.
func (h *HandlerV1) StreamVideoV1(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	video, err := h.streamingService.ResolveVideo(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrInvalidVideoID):
		h.fail(w, http.StatusBadRequest, "invalid video id", "rejected")
		return
	case errors.Is(err, domain.ErrVideoNotFound):
		h.fail(w, http.StatusNotFound, "video not found", "not_found")
		return
	case err != nil:
		h.logger.Error("error resolving video", "id", id, "error", err)
		h.fail(w, http.StatusInternalServerError, "internal server error", "lookup_failed")
		return
	}

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	resp, err := h.forwarder.Forward(ctx, r, video.Path)
	if err != nil {
		h.logger.Error("error forwarding to storage", "id", id, "path", video.Path, "error", err)
		h.fail(w, http.StatusInternalServerError, "internal server error", "forward_failed")
		return
	}
	defer resp.Body.Close()

	header := w.Header()
	for name, values := range resp.Header {
		header[name] = append([]string(nil), values...)
	}
	w.WriteHeader(resp.StatusCode)
	// commit the status line so a later abort cuts the body, not the response
	if err := http.NewResponseController(w).Flush(); err != nil {
		h.logger.Debug("could not flush response headers", "id", id, "error", err)
	}

	written, err := v1.Relay(w, resp.Body)
	metrics.RecordStreamedBytes(service, written)
	if err != nil {
		// headers are committed, the status can no longer change
		cancel()
		if errors.Is(err, v1.ErrDownstreamWrite) {
			h.logger.Info("client went away mid-stream", "id", id, "written", written)
			metrics.RecordStreamOutcome(service, resp.StatusCode, "client_aborted")
			return
		}
		h.logger.Error("upstream failed mid-stream", "id", id, "written", written, "error", err)
		metrics.RecordStreamOutcome(service, resp.StatusCode, "upstream_aborted")
		panic(http.ErrAbortHandler)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.RecordStreamOutcome(service, resp.StatusCode, "upstream_status")
		return
	}
	metrics.RecordStreamOutcome(service, resp.StatusCode, "completed")
	h.streamingService.RecordView(r.Context(), *video)
}

func (h *HandlerV1) fail(w http.ResponseWriter, status int, msg, outcome string) {
	metrics.RecordStreamOutcome(service, status, outcome)
	http.Error(w, msg, status)
}
