// Package models defines server-side records persisted in the database.
// JSON tags describe the external representation: storage-only fields are
// tagged `json:"-"` and never leave the server.
package models

import "time"

// PublicKey is a secp256k1 public key registered to one user. Key is the
// hex string exactly as supplied and is the record's identity.
type PublicKey struct {
	Key       string    `json:"key"`
	Owner     string    `json:"owner"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"-"`
}
