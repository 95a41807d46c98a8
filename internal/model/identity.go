package model

import (
	"fmt"
	"regexp"
	"time"
)

// Identity is a validated handle for a match participant or admin
type Identity string

// Identities are lowercase handles: 3-64 chars, alphanumeric start,
// then alphanumerics, underscores or hyphens. Colons are excluded so
// identities compose safely into storage keys.
var identityPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{2,63}$`)

// ParseIdentity validates a raw address string and returns it as an Identity
func ParseIdentity(s string) (Identity, error) {
	if !identityPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentity, s)
	}
	return Identity(s), nil
}

// RegisteredIdentity is an identity protected by a passphrase. Claiming a
// registered identity requires logging in; unregistered identities may be
// claimed freely.
type RegisteredIdentity struct {
	Address        Identity  `json:"address"`
	PassphraseHash string    `json:"passphrase_hash"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
