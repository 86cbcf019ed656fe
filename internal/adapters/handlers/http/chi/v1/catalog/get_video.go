package catalog

import (
	"errors"
	v1 "flixtube/internal/adapters/handlers/http/chi/v1"
	"flixtube/internal/core/domain"
	"net/http"
)

type V1GetVideoResponse struct {
	Video V1Video `json:"video"`
}

func (h *HandlerV1) GetVideoV1(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")

	video, err := h.catalogService.GetVideo(r.Context(), id)
	switch {
	case errors.Is(err, domain.ErrInvalidVideoID):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, domain.ErrVideoNotFound):
		http.Error(w, "video not found", http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("error getting video", "video_id", id, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	default:
		v1.WriteJSON(w, h.logger, http.StatusOK, V1GetVideoResponse{
			Video: V1Video{
				ID:        video.ID,
				Path:      video.Path,
				Name:      video.Name,
				CreatedAt: video.CreatedAt,
			},
		})
	}
}
