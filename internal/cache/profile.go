// Package cache provides a Redis-backed cache for hourly productivity
// profiles, so schedule optimization does not recompute them from raw focus
// sessions on every request.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultProfileTTL is how long a cached productivity profile stays valid
	DefaultProfileTTL = 1 * time.Hour

	profileKeyPrefix = "profile:"
)

// ProfileCache caches per-user hourly productivity profiles in Redis
type ProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache creates a profile cache on an existing Redis client
func NewProfileCache(client *redis.Client) *ProfileCache {
	return &ProfileCache{
		client: client,
		ttl:    DefaultProfileTTL,
	}
}

func profileKey(userID uuid.UUID) string {
	return profileKeyPrefix + userID.String()
}

// Get returns the cached profile for a user, or nil on a cache miss
func (c *ProfileCache) Get(ctx context.Context, userID uuid.UUID) (map[int]float64, error) {
	raw, err := c.client.Get(ctx, profileKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached profile: %w", err)
	}

	var profile map[int]float64
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("failed to decode cached profile: %w", err)
	}

	return profile, nil
}

// Set stores a profile for a user with the cache TTL
func (c *ProfileCache) Set(ctx context.Context, userID uuid.UUID, profile map[int]float64) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to encode profile: %w", err)
	}

	if err := c.client.Set(ctx, profileKey(userID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache profile: %w", err)
	}

	return nil
}

// Invalidate drops the cached profile for a user. Called when new focus
// session data arrives.
func (c *ProfileCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if err := c.client.Del(ctx, profileKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate profile: %w", err)
	}
	return nil
}

// GetOrCompute returns the cached profile, falling back to compute and
// caching the result. Cache errors degrade to computing directly.
func (c *ProfileCache) GetOrCompute(ctx context.Context, userID uuid.UUID, compute func(ctx context.Context) (map[int]float64, error)) (map[int]float64, error) {
	cached, err := c.Get(ctx, userID)
	if err == nil && cached != nil {
		return cached, nil
	}

	profile, err := compute(ctx)
	if err != nil {
		return nil, err
	}

	// Best effort; a failed write just means a recompute next time
	_ = c.Set(ctx, userID, profile)

	return profile, nil
}
