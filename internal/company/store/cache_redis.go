package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ownergraph/internal/company/models"
)

const profileKeyPrefix = "ownergraph:profile:"

// RedisCache is a Redis-backed ProfileCache for deployments where multiple
// instances should share resolver state.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache constructs a Redis-backed profile cache.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Find returns a cached profile, or (nil, nil) when the key is absent.
func (c *RedisCache) Find(ctx context.Context, number string) (*models.CompanyProfile, error) {
	payload, err := c.client.Get(ctx, profileKeyPrefix+number).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get profile: %w", err)
	}

	var profile models.CompanyProfile
	if err := json.Unmarshal(payload, &profile); err != nil {
		return nil, fmt.Errorf("unmarshal cached profile: %w", err)
	}
	return &profile, nil
}

// Save stores the profile with the configured TTL.
func (c *RedisCache) Save(ctx context.Context, profile *models.CompanyProfile) error {
	if profile == nil || profile.Number == "" {
		return nil
	}
	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return c.client.Set(ctx, profileKeyPrefix+profile.Number, payload, c.ttl).Err()
}
