// util/cache_service.go

package util

import (
	"context"
	"time"

	"github.com/MichaelGetu-git/Security-Project/db"
	"github.com/MichaelGetu-git/Security-Project/model"
)

// Cache is the subject cache and lock facade the services depend on.
type Cache interface {
	GetUser(ctx context.Context, userID int64) (*model.User, error)
	SetUser(ctx context.Context, user model.User) error
	DeleteUser(ctx context.Context, userID int64) error
	Lock(ctx context.Context, name string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, name string) error
	Allow(ctx context.Context, key string, limit int, per time.Duration) (bool, error)
}

// CacheService is the Redis-backed Cache.
type CacheService struct{}

func NewCacheService() *CacheService {
	return &CacheService{}
}

func (c *CacheService) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	return db.GetCachedUser(ctx, userID)
}

func (c *CacheService) SetUser(ctx context.Context, user model.User) error {
	return db.CacheUser(ctx, &user)
}

func (c *CacheService) DeleteUser(ctx context.Context, userID int64) error {
	return db.DeleteCachedUser(ctx, userID)
}

func (c *CacheService) Lock(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	return db.LockResource(ctx, name, ttl)
}

func (c *CacheService) Unlock(ctx context.Context, name string) error {
	return db.UnlockResource(ctx, name)
}

func (c *CacheService) Allow(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	return db.RateLimit(ctx, key, limit, per)
}
