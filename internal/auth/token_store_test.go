package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTokenStore_FailsOpenWithoutRedis(t *testing.T) {
	store := NewTokenStore(nil)
	userID := uuid.New()

	assert.NoError(t, store.SaveLatestRefresh(context.Background(), userID, "token-1", time.Minute))

	// With no backing cache, rotation degrades to the stateless baseline
	// and accepts the presented token.
	rotated, err := store.RotateIfLatest(context.Background(), userID, "token-1", "token-2", time.Minute)
	assert.NoError(t, err)
	assert.True(t, rotated)
}
