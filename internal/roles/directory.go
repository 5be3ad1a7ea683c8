// Package roles resolves role membership for users. The source of truth is
// the relational role_user table; a Redis cache sits in front of it so the
// per-request hydration done by the auth middleware does not hit Postgres on
// every call.
package roles

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/customer-care/internal/domain"
	"github.com/spec-kit/customer-care/internal/repository"
)

const cacheKeyPrefix = "roles:user:"

// Directory answers role-membership questions.
type Directory struct {
	roles  repository.RoleRepository
	cache  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewDirectory builds a directory. cache may be nil, in which case every
// lookup goes to the repository.
func NewDirectory(roleRepo repository.RoleRepository, cache *redis.Client, ttl time.Duration, logger *zap.Logger) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Directory{roles: roleRepo, cache: cache, ttl: ttl, logger: logger}
}

// Roles returns the user's current role set, consulting the cache first.
// Cache failures degrade to the relational lookup rather than erroring.
func (d *Directory) Roles(ctx context.Context, userID string) ([]domain.Role, error) {
	if cached, ok := d.fromCache(ctx, userID); ok {
		return cached, nil
	}

	roles, err := d.roles.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	d.toCache(ctx, userID, roles)
	return roles, nil
}

// HasRole reports whether the user holds at least one of the given roles.
// A user with no roles at all simply yields false.
func (d *Directory) HasRole(ctx context.Context, userID string, names ...domain.RoleName) (bool, error) {
	roles, err := d.Roles(ctx, userID)
	if err != nil {
		return false, err
	}
	user := domain.User{ID: userID, Roles: roles}
	return user.HasRole(names...), nil
}

// Hydrate loads the role set onto the user so downstream policy decisions
// stay pure.
func (d *Directory) Hydrate(ctx context.Context, user *domain.User) error {
	roles, err := d.Roles(ctx, user.ID)
	if err != nil {
		return err
	}
	user.Roles = roles
	return nil
}

// Invalidate drops the cached role set after membership changes.
func (d *Directory) Invalidate(ctx context.Context, userID string) {
	if d.cache == nil {
		return
	}
	if err := d.cache.Del(ctx, cacheKeyPrefix+userID).Err(); err != nil {
		d.logger.Warn("role cache invalidate failed", zap.String("user_id", userID), zap.Error(err))
	}
}

func (d *Directory) fromCache(ctx context.Context, userID string) ([]domain.Role, bool) {
	if d.cache == nil || d.ttl <= 0 {
		return nil, false
	}
	raw, err := d.cache.Get(ctx, cacheKeyPrefix+userID).Bytes()
	if err != nil {
		if err != redis.Nil {
			d.logger.Warn("role cache read failed", zap.String("user_id", userID), zap.Error(err))
		}
		return nil, false
	}
	var roles []domain.Role
	if err := json.Unmarshal(raw, &roles); err != nil {
		return nil, false
	}
	return roles, true
}

func (d *Directory) toCache(ctx context.Context, userID string, roles []domain.Role) {
	if d.cache == nil || d.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(roles)
	if err != nil {
		return
	}
	if err := d.cache.Set(ctx, cacheKeyPrefix+userID, raw, d.ttl).Err(); err != nil {
		d.logger.Warn("role cache write failed", zap.String("user_id", userID), zap.Error(err))
	}
}
