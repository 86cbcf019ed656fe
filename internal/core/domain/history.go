package domain

import (
	"time"

	"github.com/google/uuid"
)

// ViewRecord represents one recorded view, keyed by the id of the message that carried it
type ViewRecord struct {
	ID        uuid.UUID
	VideoPath string
	ViewedAt  time.Time
}

// PopularVideo is a video path and the number of views recorded for it
type PopularVideo struct {
	VideoPath string
	Views     int64
}
