package catalog

import (
	"context"
	"errors"
	"flixtube/internal/core/domain"
)

// HandleMessage inserts the uploaded video. A duplicate id is a redelivery and is acknowledged.
func (h *uploadHandler) HandleMessage(ctx context.Context, delivery domain.Delivery) domain.Disposition {
	var event domain.UploadEvent
	if err := domain.DecodeEvent(delivery.Data, &event); err != nil {
		h.logger.Warn("dropping malformed upload event", "message_id", delivery.MessageID, "error", err)
		return domain.Nack(false, err)
	}

	video := event.ToVideo()
	if err := domain.ValidateVideoID(video.ID); err != nil {
		h.logger.Warn("dropping upload event with unusable id", "message_id", delivery.MessageID, "error", err)
		return domain.Nack(false, err)
	}

	h.logger.Info("handling event", "exchange", delivery.Exchange, "id", video.ID, "path", video.Path, "attempt", delivery.Attempt)

	err := h.repo.Insert(ctx, video)
	switch {
	case err == nil:
		return domain.Ack()
	case errors.Is(err, domain.ErrAlreadyExists):
		h.logger.Info("video already in catalog", "id", video.ID)
		return domain.Ack()
	default:
		h.logger.Error("failed to insert video", "id", video.ID, "error", err)
		return domain.Nack(true, err)
	}
}
