package localstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis хранит данные сессий в Redis. Каждая запись живёт ttl с момента последней записи.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis создаёт хранилище поверх клиента Redis. Без ttl используется Retention.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = Retention
	}
	return &Redis{client: client, ttl: ttl}
}

// Get возвращает значение или ErrNotFound.
func (r *Redis) Get(ctx context.Context, sessionID, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, redisKey(sessionID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return data, nil
}

// Set сохраняет значение и продлевает его срок жизни.
func (r *Redis) Set(ctx context.Context, sessionID, key string, value []byte) error {
	if err := r.client.Set(ctx, redisKey(sessionID, key), value, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Remove удаляет значение.
func (r *Redis) Remove(ctx context.Context, sessionID, key string) error {
	if err := r.client.Del(ctx, redisKey(sessionID, key)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// Close закрывает клиент Redis.
func (r *Redis) Close() error {
	return r.client.Close()
}

func redisKey(sessionID, key string) string {
	return fmt.Sprintf("storefront:%s:%s", sessionID, key)
}
