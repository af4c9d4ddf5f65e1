package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:"

// RedisStore счётчики в Redis, общие для всех экземпляров сервиса
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore создает хранилище поверх готового клиента
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

// NewRedisClient создает клиента Redis
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
}

// Allow INCR ключа окна; первый запрос окна задаёт TTL ключа
func (s *RedisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	fullKey := keyPrefix + key

	count, err := s.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("%w: Allow - incr: %v", ErrStore, err)
	}

	if count == 1 {
		if err := s.client.PExpire(ctx, fullKey, window).Err(); err != nil {
			return false, 0, fmt.Errorf("%w: Allow - pexpire: %v", ErrStore, err)
		}
	}

	if count <= int64(limit) {
		return true, 0, nil
	}

	retryAfter, err := s.client.PTTL(ctx, fullKey).Result()
	if err != nil {
		return false, 0, fmt.Errorf("%w: Allow - pttl: %v", ErrStore, err)
	}
	if retryAfter <= 0 {
		// ключ остался без TTL (например, упал PEXPIRE): задаём его заново
		_ = s.client.PExpire(ctx, fullKey, window).Err()
		retryAfter = window
	}
	return false, retryAfter, nil
}
