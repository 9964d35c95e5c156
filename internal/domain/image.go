package domain

import (
	"time"

	"github.com/google/uuid"
)

// Image is an uploaded photo stored in object storage under Key.
// URL is the public address derived from Key at read time.
type Image struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Key         string    `json:"key"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}
