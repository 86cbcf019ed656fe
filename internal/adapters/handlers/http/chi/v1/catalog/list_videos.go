package catalog

import (
	v1 "flixtube/internal/adapters/handlers/http/chi/v1"
	"net/http"
)

type V1ListVideosResponse struct {
	Videos []V1Video `json:"videos"`
}

func (h *HandlerV1) ListVideosV1(w http.ResponseWriter, r *http.Request) {
	videos, err := h.catalogService.ListVideos(r.Context())
	if err != nil {
		h.logger.Error("error listing videos", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := V1ListVideosResponse{Videos: make([]V1Video, 0, len(videos))}
	for _, video := range videos {
		resp.Videos = append(resp.Videos, V1Video{
			ID:        video.ID,
			Path:      video.Path,
			Name:      video.Name,
			CreatedAt: video.CreatedAt,
		})
	}
	v1.WriteJSON(w, h.logger, http.StatusOK, resp)
}
