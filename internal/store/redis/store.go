package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/linkbridge/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultTagsTTL is used when SetTags receives a non-positive TTL
	DefaultTagsTTL = 5 * time.Minute

	scanBatch = 100
)

// TagStore caches tag listings in Redis. It implements dispatch.TagCache.
type TagStore struct {
	client redis.UniversalClient
	scope  string
}

// NewTagStore creates a tag store whose keys live under scope (see Scope)
func NewTagStore(client redis.UniversalClient, scope string) *TagStore {
	return &TagStore{
		client: client,
		scope:  scope,
	}
}

// GetTags returns the cached listing. ok is false on a cache miss.
func (s *TagStore) GetTags(ctx context.Context, key string) ([]domain.Tag, bool, error) {
	data, err := s.client.Get(ctx, TagsKey(s.scope, key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil // Cache miss
		}
		return nil, false, fmt.Errorf("failed to get cached tags: %w", err)
	}

	var tags []domain.Tag
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal cached tags: %w", err)
	}
	if tags == nil {
		tags = []domain.Tag{}
	}
	return tags, true, nil
}

// SetTags stores a listing for ttl
func (s *TagStore) SetTags(ctx context.Context, key string, tags []domain.Tag, ttl time.Duration) error {
	if tags == nil {
		tags = []domain.Tag{}
	}
	if ttl <= 0 {
		ttl = DefaultTagsTTL
	}

	data, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}

	if err := s.client.Set(ctx, TagsKey(s.scope, key), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache tags: %w", err)
	}
	return nil
}

// InvalidateTags removes every listing of the scope
func (s *TagStore) InvalidateTags(ctx context.Context) error {
	iter := s.client.Scan(ctx, 0, ScopePrefix(s.scope)+"*", scanBatch).Iterator()

	keys := make([]string, 0, scanBatch)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cached tags: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached tags: %w", err)
	}
	return nil
}
