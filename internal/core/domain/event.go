package domain

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Exchange names one fanout topic on the broker
type Exchange string

const (
	ExchangeViewed        Exchange = "viewed"
	ExchangeVideoUploaded Exchange = "video-uploaded"
)

// ViewEvent is published by the gateway once a video has been streamed
type ViewEvent struct {
	VideoPath string `json:"videoPath" validate:"required,max=1024"`
}

// UploadedVideo is the video part of an UploadEvent
type UploadedVideo struct {
	ID   string `json:"id" validate:"required,max=128"`
	Name string `json:"name" validate:"required,max=512"`
	// Path is optional; the upload service stores blobs under their id by default.
	Path string `json:"path,omitempty" validate:"omitempty,max=1024"`
}

// UploadEvent is published by the upload service when a new video is stored
type UploadEvent struct {
	Video UploadedVideo `json:"video" validate:"required"`
}

// ToVideo maps the event to the catalog entry it creates
func (e UploadEvent) ToVideo() Video {
	path := e.Video.Path
	if path == "" {
		path = e.Video.ID
	}
	return Video{
		ID:   e.Video.ID,
		Path: path,
		Name: e.Video.Name,
	}
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func eventValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// EncodeEvent serializes an event payload
func EncodeEvent(event any) ([]byte, error) {
	if err := eventValidator().Struct(event); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("could not marshal event: %w", err)
	}
	return data, nil
}

// DecodeEvent parses and validates an event payload into dst
func DecodeEvent(data []byte, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("%w: could not unmarshal event: %w", ErrInvalidEvent, err)
	}
	if err := eventValidator().Struct(dst); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEvent, err)
	}
	return nil
}
