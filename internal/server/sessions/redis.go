package sessions

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRegistry is a Registry backed by redis, for deployments where the
// server runs more than one instance or must survive restarts. Token keys
// carry a TTL equal to the refresh-token validity, so redis garbage-collects
// entries the signature check would reject anyway. A per-user set supports
// RevokeByUserID.
type RedisRegistry struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisRegistry(client *redis.Client, ttl time.Duration) *RedisRegistry {
	return &RedisRegistry{client: client, ttl: ttl}
}

func tokenKey(token string) string { return "refresh:" + token }

func userKey(userID int64) string {
	return fmt.Sprintf("user_tokens:%d", userID)
}

func (r *RedisRegistry) Register(ctx context.Context, token string, userID int64) error {
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, tokenKey(token), strconv.FormatInt(userID, 10), r.ttl)
	pipe.SAdd(ctx, userKey(userID), token)
	pipe.Expire(ctx, userKey(userID), r.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis register: %w", err)
	}
	return nil
}

func (r *RedisRegistry) IsLive(ctx context.Context, token string) (bool, error) {
	n, err := r.client.Exists(ctx, tokenKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

func (r *RedisRegistry) Revoke(ctx context.Context, token string) error {
	val, err := r.client.Get(ctx, tokenKey(token)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis get: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return fmt.Errorf("corrupt registry value %q: %w", val, err)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, tokenKey(token))
	pipe.SRem(ctx, userKey(userID), token)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis revoke: %w", err)
	}
	return nil
}

func (r *RedisRegistry) RevokeByUserID(ctx context.Context, userID int64) error {
	tokens, err := r.client.SMembers(ctx, userKey(userID)).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("redis smembers: %w", err)
	}

	pipe := r.client.TxPipeline()
	for _, token := range tokens {
		pipe.Del(ctx, tokenKey(token))
	}
	pipe.Del(ctx, userKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis revoke by user: %w", err)
	}
	return nil
}
