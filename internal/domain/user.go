package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an account holder. PasswordHash is empty for accounts created
// through OAuth sign-in and is never serialized.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
