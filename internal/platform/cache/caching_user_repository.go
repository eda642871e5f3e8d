// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"messagely_backend/internal/feature/users/domain/entity"
	"messagely_backend/internal/feature/users/usecase"
)

// CachingUserRepository decorates a users repository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Profiles are non-sensitive reads, so a
// short staleness window is acceptable; writes call Invalidate to shrink it.
type CachingUserRepository struct {
	inner     usecase.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates a users repository with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "users".
// A nil client degrades to a passthrough.
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "users"
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindAll retrieves all profiles, checking cache first then falling back to
// the database.
func (c *CachingUserRepository) FindAll(ctx context.Context) ([]entity.Profile, error) {
	if c.rdb == nil {
		return c.inner.FindAll(ctx)
	}

	key := c.listKey()

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Profile
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := c.inner.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// FindByUsername retrieves a single profile, checking cache first then
// falling back to the database. Misses of nonexistent users are not cached:
// the inner repository's not-found error passes straight through.
func (c *CachingUserRepository) FindByUsername(ctx context.Context, username string) (*entity.Profile, error) {
	if c.rdb == nil {
		return c.inner.FindByUsername(ctx, username)
	}

	key := c.profileKey(username)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Profile
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Invalidate drops the list entry and the per-profile entries for the given
// usernames. Best effort: cache failures never surface to callers.
func (c *CachingUserRepository) Invalidate(ctx context.Context, usernames ...string) {
	if c.rdb == nil {
		return
	}
	keys := make([]string, 0, len(usernames)+1)
	keys = append(keys, c.listKey())
	for _, u := range usernames {
		keys = append(keys, c.profileKey(u))
	}
	_ = c.rdb.Del(ctx, keys...).Err()
}

// listKey is the cache key for the full profile listing.
func (c *CachingUserRepository) listKey() string {
	return c.namespace + ":all"
}

// profileKey is the cache key for a single profile.
func (c *CachingUserRepository) profileKey(username string) string {
	return fmt.Sprintf("%s:profile:%s", c.namespace, safe(username))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
