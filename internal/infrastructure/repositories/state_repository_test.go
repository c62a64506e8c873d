package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidsht/Membership-Model-sub002/domain"
)

func newTestRepo(t *testing.T) (domain.ClientStateRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewClientStateRepository(client, time.Hour), mr
}

func TestRememberedEmailRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	email, err := repo.RememberedEmail(ctx)
	require.NoError(t, err)
	assert.Empty(t, email, "absent marker reads as empty, not as an error")

	require.NoError(t, repo.SaveRememberedEmail(ctx, "maya@example.com"))

	email, err = repo.RememberedEmail(ctx)
	require.NoError(t, err)
	assert.Equal(t, "maya@example.com", email)

	require.NoError(t, repo.ClearRememberedEmail(ctx))
	email, err = repo.RememberedEmail(ctx)
	require.NoError(t, err)
	assert.Empty(t, email)
}

func TestRememberedSessionRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	_, remembered, err := repo.RememberedSession(ctx)
	require.NoError(t, err)
	assert.False(t, remembered)

	require.NoError(t, repo.SaveRememberedSession(ctx, "saved-token"))

	token, remembered, err := repo.RememberedSession(ctx)
	require.NoError(t, err)
	assert.True(t, remembered)
	assert.Equal(t, "saved-token", token)

	require.NoError(t, repo.ClearRememberedSession(ctx))
	_, remembered, err = repo.RememberedSession(ctx)
	require.NoError(t, err)
	assert.False(t, remembered)
}

func TestMarkersExpireWithTTL(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveRememberedEmail(ctx, "maya@example.com"))
	require.NoError(t, repo.SaveRememberedSession(ctx, "saved-token"))

	mr.FastForward(2 * time.Hour)

	email, err := repo.RememberedEmail(ctx)
	require.NoError(t, err)
	assert.Empty(t, email)

	_, remembered, err := repo.RememberedSession(ctx)
	require.NoError(t, err)
	assert.False(t, remembered)
}

func TestRememberedSessionCorruptPayload(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	mr.Set("client_state:remembered_session", "not-json")

	_, _, err := repo.RememberedSession(ctx)
	assert.Error(t, err)
}
