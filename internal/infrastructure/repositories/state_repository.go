package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vidsht/Membership-Model-sub002/domain"
)

// ClientStateRepositoryImpl implements domain.ClientStateRepository using
// Redis. It holds the two persisted client-side markers: the remembered login
// email (form prefill) and the remembered-session token, which decides
// whether a failed startup probe counts as expected or as an expired session.
type ClientStateRepositoryImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// rememberedSession is the stored remembered-session marker
type rememberedSession struct {
	Token        string    `json:"token"`
	RememberedAt time.Time `json:"remembered_at"`
}

// NewClientStateRepository creates a new client state repository
func NewClientStateRepository(client *redis.Client, ttl time.Duration) domain.ClientStateRepository {
	return &ClientStateRepositoryImpl{
		client: client,
		prefix: "client_state:",
		ttl:    ttl,
	}
}

func (r *ClientStateRepositoryImpl) emailKey() string   { return r.prefix + "remembered_email" }
func (r *ClientStateRepositoryImpl) sessionKey() string { return r.prefix + "remembered_session" }

// SaveRememberedEmail implements domain.ClientStateRepository
func (r *ClientStateRepositoryImpl) SaveRememberedEmail(ctx context.Context, email string) error {
	return r.client.Set(ctx, r.emailKey(), email, r.ttl).Err()
}

// RememberedEmail implements domain.ClientStateRepository. An absent marker
// is not an error; it returns the empty string.
func (r *ClientStateRepositoryImpl) RememberedEmail(ctx context.Context) (string, error) {
	email, err := r.client.Get(ctx, r.emailKey()).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read remembered email: %w", err)
	}
	return email, nil
}

// ClearRememberedEmail implements domain.ClientStateRepository
func (r *ClientStateRepositoryImpl) ClearRememberedEmail(ctx context.Context) error {
	return r.client.Del(ctx, r.emailKey()).Err()
}

// SaveRememberedSession implements domain.ClientStateRepository
func (r *ClientStateRepositoryImpl) SaveRememberedSession(ctx context.Context, token string) error {
	data, err := json.Marshal(rememberedSession{
		Token:        token,
		RememberedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal remembered session: %w", err)
	}
	return r.client.Set(ctx, r.sessionKey(), data, r.ttl).Err()
}

// RememberedSession implements domain.ClientStateRepository
func (r *ClientStateRepositoryImpl) RememberedSession(ctx context.Context) (string, bool, error) {
	data, err := r.client.Get(ctx, r.sessionKey()).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read remembered session: %w", err)
	}

	var session rememberedSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return "", false, fmt.Errorf("failed to unmarshal remembered session: %w", err)
	}
	return session.Token, true, nil
}

// ClearRememberedSession implements domain.ClientStateRepository
func (r *ClientStateRepositoryImpl) ClearRememberedSession(ctx context.Context) error {
	return r.client.Del(ctx, r.sessionKey()).Err()
}

// Compile-time interface compliance verification
var _ domain.ClientStateRepository = (*ClientStateRepositoryImpl)(nil)
