// Copyright (c) 2026 SnapDuel. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package photo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/snapduel/internal/platform/constants"
)

// RedisRankingCache implements [RankingCache] on Redis strings holding JSON.
type RedisRankingCache struct {
	client *redis.Client
}

// NewRedisRankingCache constructs a ranking cache on client.
func NewRedisRankingCache(client *redis.Client) *RedisRankingCache {
	return &RedisRankingCache{client: client}
}

// Get returns the cached ranking for key. A miss is (nil, false, nil).
func (cache *RedisRankingCache) Get(context context.Context, key string) ([]*Photo, bool, error) {
	raw, err := cache.client.Get(context, constants.RedisPrefixRanking+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ranking cache get: %w", err)
	}

	var photos []*Photo
	if err := json.Unmarshal(raw, &photos); err != nil {
		return nil, false, fmt.Errorf("ranking cache decode: %w", err)
	}

	return photos, true, nil
}

// Set stores photos under key for ttl.
func (cache *RedisRankingCache) Set(context context.Context, key string, photos []*Photo, ttl time.Duration) error {
	raw, err := json.Marshal(photos)
	if err != nil {
		return fmt.Errorf("ranking cache encode: %w", err)
	}

	if err := cache.client.Set(context, constants.RedisPrefixRanking+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("ranking cache set: %w", err)
	}

	return nil
}

// Invalidate drops every cached ranking.
func (cache *RedisRankingCache) Invalidate(context context.Context) error {
	iter := cache.client.Scan(context, 0, constants.RedisPrefixRanking+"*", 100).Iterator()

	var keys []string
	for iter.Next(context) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("ranking cache scan: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := cache.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("ranking cache delete: %w", err)
	}

	return nil
}
