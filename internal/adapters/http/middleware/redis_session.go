package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "volunteer:admin_session:"

// RedisSessionStore keeps admin sessions in Redis so they survive restarts
// and are shared between server instances. Expiry is left to Redis.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ SessionStore = (*RedisSessionStore)(nil)

// NewRedisSessionStore connects to Redis and checks it answers.
// PRE: addr is host:port
// POST: Returns a ready store or the ping error
func NewRedisSessionStore(ctx context.Context, addr, password string, db int) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}
	return &RedisSessionStore{client: client, ttl: SessionTTL}, nil
}

func redisKey(token string) string {
	return redisKeyPrefix + token
}

// Create stores a new session with the session TTL.
func (rs *RedisSessionStore) Create(ctx context.Context) (Session, error) {
	s := Session{Token: uuid.NewString(), CreatedAt: time.Now().UTC()}
	if err := rs.client.Set(ctx, redisKey(s.Token), s.CreatedAt.Format(time.RFC3339Nano), rs.ttl).Err(); err != nil {
		return Session{}, fmt.Errorf("store session: %w", err)
	}
	return s, nil
}

// Get retrieves a session by token.
func (rs *RedisSessionStore) Get(ctx context.Context, token string) (Session, bool, error) {
	val, err := rs.client.Get(ctx, redisKey(token)).Result()
	if errors.Is(err, redis.Nil) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("load session: %w", err)
	}
	created, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return Session{}, false, fmt.Errorf("corrupt session %s: %w", token, err)
	}
	return Session{Token: token, CreatedAt: created}, true, nil
}

// Delete removes a session by token.
func (rs *RedisSessionStore) Delete(ctx context.Context, token string) error {
	return rs.client.Del(ctx, redisKey(token)).Err()
}

// Close releases the Redis connection pool.
func (rs *RedisSessionStore) Close() error {
	return rs.client.Close()
}
