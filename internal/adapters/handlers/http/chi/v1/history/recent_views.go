package history

import (
	v1 "flixtube/internal/adapters/handlers/http/chi/v1"
	"net/http"
	"time"
)

type V1View struct {
	ID        string    `json:"id"`
	VideoPath string    `json:"videoPath"`
	ViewedAt  time.Time `json:"viewedAt"`
}

type V1RecentViewsResponse struct {
	Views []V1View `json:"views"`
}

type V1PopularVideo struct {
	VideoPath string `json:"videoPath"`
	Views     int64  `json:"views"`
}

type V1PopularVideosResponse struct {
	Videos []V1PopularVideo `json:"videos"`
}

func (h *HandlerV1) RecentViewsV1(w http.ResponseWriter, r *http.Request) {
	limit, err := v1.ParseLimit(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	views, err := h.historyService.RecentViews(r.Context(), limit)
	if err != nil {
		h.logger.Error("error listing recent views", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := V1RecentViewsResponse{Views: make([]V1View, 0, len(views))}
	for _, view := range views {
		resp.Views = append(resp.Views, V1View{
			ID:        view.ID.String(),
			VideoPath: view.VideoPath,
			ViewedAt:  view.ViewedAt,
		})
	}
	v1.WriteJSON(w, h.logger, http.StatusOK, resp)
}

func (h *HandlerV1) PopularVideosV1(w http.ResponseWriter, r *http.Request) {
	limit, err := v1.ParseLimit(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	popular, err := h.historyService.PopularVideos(r.Context(), limit)
	if err != nil {
		h.logger.Error("error listing popular videos", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	resp := V1PopularVideosResponse{Videos: make([]V1PopularVideo, 0, len(popular))}
	for _, p := range popular {
		resp.Videos = append(resp.Videos, V1PopularVideo{VideoPath: p.VideoPath, Views: p.Views})
	}
	v1.WriteJSON(w, h.logger, http.StatusOK, resp)
}
