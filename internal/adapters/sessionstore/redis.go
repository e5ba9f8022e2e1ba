package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/mirall/archetype/internal/domain/session"
)

const defaultKeyPrefix = "assess:session:"

// RedisOption applies a configuration option to the Redis store.
type RedisOption func(*RedisStore)

// WithRedisTTL overrides the resumability window.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(r *RedisStore) {
		if ttl > 0 {
			r.ttl = ttl
		}
	}
}

// WithKeyPrefix overrides the key namespace.
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *RedisStore) {
		if prefix != "" {
			r.prefix = prefix
		}
	}
}

// RedisStore persists snapshots in Redis with the TTL enforced by key
// expiry, so abandoned sessions vanish without a sweeper.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	r := &RedisStore{
		client: client,
		prefix: defaultKeyPrefix,
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}

// Save implements Store.
func (r *RedisStore) Save(ctx context.Context, snap session.Snapshot) error {
	if err := snap.Validate(); err != nil {
		return err
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := r.client.Set(ctx, r.key(snap.ID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("save session %s: %w", snap.ID, err)
	}
	return nil
}

// Load implements Store. Key expiry already drops stale records; the
// SavedAt check guards against records written with a longer TTL by an
// older deployment.
func (r *RedisStore) Load(ctx context.Context, id string) (session.Snapshot, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return session.Snapshot{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return session.Snapshot{}, fmt.Errorf("load session %s: %w", id, err)
	}

	var snap session.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// A corrupt record is unrecoverable; drop it so the session
		// restarts fresh.
		_ = r.client.Del(ctx, r.key(id)).Err()
		return session.Snapshot{}, fmt.Errorf("%w: %s: %w", session.ErrMalformedSnapshot, id, err)
	}
	if err := snap.Validate(); err != nil {
		_ = r.client.Del(ctx, r.key(id)).Err()
		return session.Snapshot{}, err
	}
	if snap.Expired(time.Now(), r.ttl) {
		_ = r.client.Del(ctx, r.key(id)).Err()
		return session.Snapshot{}, fmt.Errorf("%w: %s", ErrExpired, id)
	}
	return snap, nil
}

// Delete implements Store.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, r.key(id)).Err(); err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	return nil
}

// Close implements Store.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
