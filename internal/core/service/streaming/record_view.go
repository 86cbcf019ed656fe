package streaming

import (
	"context"
	"flixtube/internal/core/domain"
)

// RecordView hands the view to the recorder; it never blocks the response
func (s *streamingService) RecordView(ctx context.Context, video domain.Video) {
	s.recorder.RecordView(ctx, domain.ViewEvent{VideoPath: video.Path})
}
