package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"secalert/internal/cache"
)

const refreshTokenKeyPrefix = "auth:refresh_jti:"

// rotateScript compares the stored JTI against the presented one and, on a
// match (or no record at all), installs the replacement in the same step.
// Of two concurrent refreshes presenting the same JTI exactly one gets 1.
const rotateScript = `local current = redis.call('GET', KEYS[1])
if current == false or current == ARGV[1] then
  redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
  return 1
end
return 0`

// TokenStoreInterface tracks the latest issued refresh token (by JTI) per
// user so a successful refresh retires the presented token. The store is
// advisory: when the backing cache cannot answer, validation falls back to
// stateless expiry-only semantics rather than rejecting every session.
type TokenStoreInterface interface {
	// SaveLatestRefresh records tokenID as the only currently-honored
	// refresh token for the user, superseding whatever was stored before.
	SaveLatestRefresh(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error
	// RotateIfLatest atomically replaces oldID with newID. It reports
	// false when oldID is no longer the recorded latest token.
	RotateIfLatest(ctx context.Context, userID uuid.UUID, oldID, newID string, ttl time.Duration) (bool, error)
}

// TokenStore tracks refresh-token rotation state in Redis.
type TokenStore struct {
	cache *cache.Client
}

var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

func (s *TokenStore) SaveLatestRefresh(ctx context.Context, userID uuid.UUID, tokenID string, ttl time.Duration) error {
	return s.cache.Set(ctx, refreshTokenKeyPrefix+userID.String(), []byte(tokenID), ttl)
}

// RotateIfLatest runs the compare-and-rotate script against the user's
// record. An absent record (expired, never written) counts as a match: the
// caller then relies on the token's own signed expiry alone. A nil script
// result means redis is unavailable; rotation proceeds under the same
// stateless fallback.
func (s *TokenStore) RotateIfLatest(ctx context.Context, userID uuid.UUID, oldID, newID string, ttl time.Duration) (bool, error) {
	res, err := s.cache.Eval(ctx, rotateScript,
		[]string{refreshTokenKeyPrefix + userID.String()},
		oldID, newID, ttl.Milliseconds())
	if err != nil || res == nil {
		return true, nil
	}
	n, ok := res.(int64)
	if !ok {
		return true, nil
	}
	return n == 1, nil
}
