package domain

import (
	"fmt"
	"regexp"
	"time"
)

// maxVideoIDLength bounds catalog identifiers
const maxVideoIDLength = 128

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// Video represents a catalog entry
type Video struct {
	ID        string
	Path      string
	Name      string
	CreatedAt time.Time
}

// ValidateVideoID checks that id is usable as a catalog key.
// Matching is exact, so nothing is trimmed or case folded.
func ValidateVideoID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidVideoID)
	}
	if len(id) > maxVideoIDLength {
		return fmt.Errorf("%w: id longer than %d characters", ErrInvalidVideoID, maxVideoIDLength)
	}
	if !videoIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidVideoID, id)
	}
	return nil
}
