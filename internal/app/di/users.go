// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"messagely_backend/internal/feature/users/adapters"
	"messagely_backend/internal/platform/cache"
)

// NewUserReader builds the users read repository, decorated with the Redis
// profile cache. With a nil Redis client the decorator is a passthrough, so
// callers never branch on cache availability.
func NewUserReader(rdb *redis.Client, db *gorm.DB, ttl time.Duration) *cache.CachingUserRepository {
	inner := adapters.NewUserReader(db)
	return cache.NewCachingUserRepository(rdb, ttl, inner, "users")
}
