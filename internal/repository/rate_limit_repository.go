package repository

import (
	"context"
	"crypto/sha256"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RateLimitRepository interface {
	// CheckRateLimit reports whether another request under key is
	// allowed within the fixed window. Fails open on store errors.
	CheckRateLimit(ctx context.Context, key string, requests int, window time.Duration) (bool, error)
}

type rateLimitRepository struct {
	client *redis.Client
}

func NewRateLimitRepository(client *redis.Client) RateLimitRepository {
	return &rateLimitRepository{client: client}
}

func (r *rateLimitRepository) CheckRateLimit(ctx context.Context, key string, requests int, window time.Duration) (bool, error) {
	// Hash the key for privacy
	hasher := sha256.New()
	hasher.Write([]byte(key))
	hashedKey := fmt.Sprintf("ratelimit:%x", hasher.Sum(nil))

	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	count, err := r.client.Incr(ctx, hashedKey).Result()
	if err != nil {
		return true, err
	}
	if count == 1 {
		if err := r.client.Expire(ctx, hashedKey, window).Err(); err != nil {
			return true, err
		}
	}

	return count <= int64(requests), nil
}

// NoopRateLimit is used when no Redis is configured; every request is
// allowed.
type NoopRateLimit struct{}

func (NoopRateLimit) CheckRateLimit(context.Context, string, int, time.Duration) (bool, error) {
	return true, nil
}
