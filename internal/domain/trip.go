// Package domain contains the core data types for the travel planner.
// This package has no dependencies on other internal packages and is
// imported by every other internal package (repo, service, handler, planner).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the root scoping entity: every list item belongs to exactly one trip.
// The original product called these "days"; a trip is user-created and user-named.
type Trip struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
