package domain_test

import (
	"flixtube/internal/core/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeEvent(t *testing.T) {
	t.Run("EncodeEvent - ViewEvent wire format", func(t *testing.T) {
		data, err := domain.EncodeEvent(domain.ViewEvent{VideoPath: "videos/sample.mp4"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"videoPath":"videos/sample.mp4"}`, string(data))
	})

	t.Run("EncodeEvent - Missing video path", func(t *testing.T) {
		_, err := domain.EncodeEvent(domain.ViewEvent{})
		assert.ErrorIs(t, err, domain.ErrInvalidEvent)
	})
}

func TestDecodeEvent(t *testing.T) {
	t.Run("DecodeEvent - Upload event", func(t *testing.T) {
		var event domain.UploadEvent
		err := domain.DecodeEvent([]byte(`{"video":{"id":"abc","name":"Sample","path":"videos/sample.mp4"}}`), &event)
		require.NoError(t, err)
		assert.Equal(t, domain.Video{ID: "abc", Name: "Sample", Path: "videos/sample.mp4"}, event.ToVideo())
	})

	t.Run("DecodeEvent - Path defaults to id", func(t *testing.T) {
		var event domain.UploadEvent
		err := domain.DecodeEvent([]byte(`{"video":{"id":"abc","name":"Sample"}}`), &event)
		require.NoError(t, err)
		assert.Equal(t, "abc", event.ToVideo().Path)
	})

	t.Run("DecodeEvent - Malformed json", func(t *testing.T) {
		var event domain.ViewEvent
		assert.ErrorIs(t, domain.DecodeEvent([]byte(`{"videoPath":`), &event), domain.ErrInvalidEvent)
	})

	t.Run("DecodeEvent - Missing required field", func(t *testing.T) {
		var event domain.UploadEvent
		assert.ErrorIs(t, domain.DecodeEvent([]byte(`{"video":{"name":"Sample"}}`), &event), domain.ErrInvalidEvent)
	})
}

func TestDisposition(t *testing.T) {
	assert.Equal(t, "ack", domain.Ack().String())
	assert.Equal(t, "nack_requeue", domain.Nack(true, nil).String())
	assert.Equal(t, "nack_drop", domain.Nack(false, nil).String())
	assert.True(t, domain.Delivery{Attempt: 2}.Redelivered())
}
