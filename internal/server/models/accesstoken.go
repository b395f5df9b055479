package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/credbridge/internal/common"
	"github.com/google/uuid"
)

// Operation is the single action an access token authorizes.
type Operation string

const (
	OperationPush Operation = "PUSH"
	OperationPull Operation = "PULL"
)

// ParseOperation accepts exactly "PUSH" or "PULL". Matching is case-sensitive.
func ParseOperation(s string) (Operation, error) {
	switch op := Operation(s); op {
	case OperationPush, OperationPull:
		return op, nil
	default:
		return "", fmt.Errorf("%w: operation: `%s` is not a valid enum value", common.ErrInvalidOperation, s)
	}
}

// AccessToken is a bearer credential for one operation on one bucket.
// A zero Expires means the token does not expire.
type AccessToken struct {
	Token     string    `json:"token"`
	Bucket    uuid.UUID `json:"bucket"`
	Operation Operation `json:"operation"`
	Expires   time.Time `json:"expires,omitzero"`
	CreatedAt time.Time `json:"-"`
}

// Expired reports whether the token has an expiry at or before now.
func (t *AccessToken) Expired(now time.Time) bool {
	return !t.Expires.IsZero() && !now.Before(t.Expires)
}

// ObjectGrant is a redeemed access token: a presigned URL for one object.
type ObjectGrant struct {
	Operation Operation `json:"operation"`
	Method    string    `json:"method"`
	URL       string    `json:"url"`
	Expires   time.Time `json:"expires"`
}
