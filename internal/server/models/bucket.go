package models

import (
	"time"

	"github.com/google/uuid"
)

// Bucket is a storage container owned by one user. Name doubles as the
// backing object-store bucket.
type Bucket struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"-"`
}
