package history

import (
	"context"
	"time"
)

// PruneHistory deletes views older than the retention window. Counters are kept.
func (h *historyService) PruneHistory(ctx context.Context, now time.Time) (int64, error) {
	if h.retention <= 0 {
		return 0, nil
	}

	deleted, err := h.uow.HistoryRepo().DeleteOlderThan(ctx, now.Add(-h.retention))
	if err != nil {
		return 0, err
	}
	h.logger.Info("history pruned", "deleted", deleted, "retention", h.retention)
	return deleted, nil
}
