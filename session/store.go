package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by Load when no session exists for the ID, or the
// stored session has passed its own expiry.
var ErrNotFound = errors.New("session not found")

// ErrUnavailable is returned when the backing store cannot be reached. A
// failed Save must block any response that depends on the session being
// durable (notably the token-stripping redirect).
var ErrUnavailable = errors.New("session store unavailable")

// Store persists sessions keyed by ID. Implementations must make Destroy
// idempotent: destroying a missing session is not an error.
type Store interface {
	Load(ctx context.Context, id string) (*Session, error)
	Save(ctx context.Context, sess *Session) error
	Destroy(ctx context.Context, id string) error
}

// RedisStore is a Redis-backed [Store]. Sessions are stored as JSON under
// prefix:id with the store-level retention TTL; the session's own ExpiresAt
// is enforced on read, so a record can be retained past its live window but
// never served from it.
type RedisStore struct {
	redis    redis.UniversalClient
	prefix   string
	storeTTL time.Duration
}

// NewRedisStore creates a [RedisStore]. prefix sets the key namespace and
// storeTTL the retention ceiling for every saved record.
func NewRedisStore(client redis.UniversalClient, prefix string, storeTTL time.Duration) *RedisStore {
	return &RedisStore{
		redis:    client,
		prefix:   prefix,
		storeTTL: storeTTL,
	}
}

func (s *RedisStore) key(id string) string {
	return s.prefix + ":" + id
}

// Save persists the session with the retention TTL.
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, s.key(sess.ID), data, s.storeTTL).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

// Load retrieves a session by ID. A record past its own expiry is deleted
// and reported as [ErrNotFound].
func (s *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	data, err := s.redis.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("%w: corrupt record: %v", ErrNotFound, err)
	}
	sess.ID = id

	if sess.Expired(time.Now()) {
		if err := s.Destroy(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}

	return &sess, nil
}

// Destroy removes a session. Removing a missing session is a no-op.
func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Ping returns a point-in-time availability check and latency.
func (s *RedisStore) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := s.redis.Ping(ctx).Err(); err != nil {
		return time.Since(start), fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return time.Since(start), nil
}
