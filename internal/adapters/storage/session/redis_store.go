package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domain "flightdesk/internal/domain/session"
)

const redisKeyPrefix = "flightdesk:session:"

// RedisStore implements Store on Redis. Expiry rides on the key TTL, so
// DeleteExpired is a no-op here.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a session store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisClient builds a Redis client from address, password and db number.
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (s *RedisStore) Get(ctx context.Context, token string) (domain.Session, error) {
	data, err := s.client.Get(ctx, redisKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("redis get: %w", err)
	}

	var entity domain.Session
	if err := json.Unmarshal(data, &entity); err != nil {
		return domain.Session{}, fmt.Errorf("decoding session: %w", err)
	}
	if entity.Expired(time.Now()) {
		_ = s.Delete(ctx, token)
		return domain.Session{}, domain.ErrExpired
	}
	return entity, nil
}

func (s *RedisStore) Save(ctx context.Context, entity domain.Session) error {
	data, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	ttl := time.Until(entity.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session already expired")
	}
	if err := s.client.Set(ctx, redisKeyPrefix+entity.Token, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, redisKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: Redis evicts sessions via key TTL.
func (s *RedisStore) DeleteExpired(ctx context.Context) error { return nil }
