package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned by Verify when the plaintext does not
// match the stored digest.
var ErrPasswordMismatch = errors.New("password does not match")

// Hasher performs one-way password hashing and verification using bcrypt.
// The cost factor is embedded in each digest, so hashes produced under an
// older cost remain verifiable after the configured cost changes.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the given bcrypt cost. Costs outside the
// bcrypt-supported range fall back to the default cost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt digest of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify compares plaintext against a stored digest. A mismatch returns
// ErrPasswordMismatch; any other error means the stored digest is
// malformed and must surface as an internal failure, not as a wrong
// password, so corruption is visible in diagnostics.
func (h *Hasher) Verify(plaintext, digest string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return fmt.Errorf("verify password hash: %w", err)
}
