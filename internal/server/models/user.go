package models

import "time"

// User is an identity known to the identity store. Email is the identity.
type User struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"-"`
}
