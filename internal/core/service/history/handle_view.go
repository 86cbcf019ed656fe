package history

import (
	"context"
	"errors"
	"flixtube/internal/core/domain"
	"flixtube/internal/core/port"
	"time"

	"github.com/google/uuid"
)

// HandleMessage records the view and bumps the counter of the video in one transaction.
// The history row is keyed by the message id, so a redelivery changes nothing.
func (h *viewHandler) HandleMessage(ctx context.Context, delivery domain.Delivery) domain.Disposition {
	var event domain.ViewEvent
	if err := domain.DecodeEvent(delivery.Data, &event); err != nil {
		h.logger.Warn("dropping malformed view event", "message_id", delivery.MessageID, "error", err)
		return domain.Nack(false, err)
	}

	view := domain.ViewRecord{
		ID:        viewID(delivery.MessageID),
		VideoPath: event.VideoPath,
		ViewedAt:  delivery.PublishedAt.UTC(),
	}
	if delivery.PublishedAt.IsZero() {
		view.ViewedAt = time.Now().UTC()
	}

	err := h.uow.Execute(ctx, func(uow port.UnitOfWork) error {
		if err := uow.HistoryRepo().Insert(ctx, view); err != nil {
			return err
		}
		return uow.ViewCountRepo().Increment(ctx, view.VideoPath)
	})
	switch {
	case err == nil:
		h.logger.Info("view recorded", "path", view.VideoPath, "view_id", view.ID.String())
		return domain.Ack()
	case errors.Is(err, domain.ErrAlreadyExists):
		h.logger.Info("view already recorded", "view_id", view.ID.String())
		return domain.Ack()
	default:
		h.logger.Error("failed to record view", "path", view.VideoPath, "error", err)
		return domain.Nack(true, err)
	}
}

// viewID derives a stable uuid from the broker message id
func viewID(messageID string) uuid.UUID {
	if id, err := uuid.Parse(messageID); err == nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(messageID))
}
