package auth

import (
	"errors"
	"time"
)

// ErrInvalidToken is returned for malformed, forged and expired tokens alike.
var ErrInvalidToken = errors.New("invalid auth token")

// Strategy issues and verifies actor tokens that carry a customer ID.
// Verification never touches storage; resolving the customer is up to the
// caller.
type Strategy interface {
	IssueToken(customerID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tune a Strategy. Zero values select a 24h TTL and the wall clock.
type Options struct {
	TTL time.Duration
	Now func() time.Time
}
