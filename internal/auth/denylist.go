package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records revoked token IDs in Redis until their natural expiry.
// It backs logout; without it a token stays valid for its full lifetime.
type Denylist struct {
	redisdb *redis.Client
}

type DenylistConfig struct {
	Addr     string
	Password string
	DB       int
}

func NewDenylist(cfg DenylistConfig) *Denylist {
	redisdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	return &Denylist{redisdb: redisdb}
}

func denyKey(jti string) string {
	return "revoked:" + jti
}

// Revoke marks the token's JTI as dead for the remainder of its lifetime.
// Already-expired tokens need no entry.
func (d *Denylist) Revoke(ctx context.Context, claims *Claims) error {
	if claims.JTI == "" || claims.ExpiresAt == nil {
		return nil
	}

	ttl := time.Until(claims.ExpiresAt.Time)

	if ttl <= 0 {
		return nil
	}

	return d.redisdb.Set(ctx, denyKey(claims.JTI), "1", ttl).Err()
}

func (d *Denylist) Contains(ctx context.Context, jti string) (bool, error) {
	n, err := d.redisdb.Exists(ctx, denyKey(jti)).Result()

	if err != nil {
		return false, err
	}

	return n > 0, nil
}

// Ping checks redis connectivity.

func (d *Denylist) Ping(ctx context.Context) error {
	return d.redisdb.Ping(ctx).Err()
}

func (d *Denylist) Close() error {
	return d.redisdb.Close()
}
