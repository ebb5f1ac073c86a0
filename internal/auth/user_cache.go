package auth

import (
	"context"
	"encoding/json"
	"fmt"

	"raone/internal/cache"
	"raone/internal/model"
)

const userKeyPrefix = "user:"

// UserCache is the ephemeral session cache: a password-less user snapshot
// keyed by id. It is written only at login, activation and profile update;
// the session middleware reads it but never repopulates it, keeping the cache
// write path centralized.
type UserCache interface {
	Put(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uint) (*model.User, error)
	Delete(ctx context.Context, id uint) error
}

// RedisUserCache stores user snapshots in Redis without expiry. The wrapped
// client fails safe, so a dead Redis turns every lookup into a miss.
type RedisUserCache struct {
	cache *cache.Client
}

// NewRedisUserCache creates a Redis-backed user cache.
func NewRedisUserCache(c *cache.Client) *RedisUserCache {
	return &RedisUserCache{cache: c}
}

// Put stores the snapshot under the user's id. The password hash is dropped
// before serialization by the model's json tag.
func (c *RedisUserCache) Put(ctx context.Context, user *model.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user snapshot: %w", err)
	}
	return c.cache.Set(ctx, userKey(user.ID), payload, 0)
}

// Get returns the cached snapshot, or nil on a miss.
func (c *RedisUserCache) Get(ctx context.Context, id uint) (*model.User, error) {
	data, err := c.cache.Get(ctx, userKey(id))
	if err != nil || data == nil {
		return nil, nil
	}
	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		// corrupt entry: treat as a miss
		return nil, nil
	}
	return &user, nil
}

// Delete drops the snapshot.
func (c *RedisUserCache) Delete(ctx context.Context, id uint) error {
	return c.cache.Delete(ctx, userKey(id))
}

func userKey(id uint) string {
	return fmt.Sprintf("%s%d", userKeyPrefix, id)
}
