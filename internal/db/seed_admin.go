package db

import (
	"context"
	"errors"
	"time"

	"github.com/Krtikgoswami/project001/internal/config"
	"github.com/Krtikgoswami/project001/internal/domain/user"
	"github.com/Krtikgoswami/project001/internal/security"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureAdminUser seeds a bootstrap admin from config so a fresh deployment
// has an account that can reach the dashboard. No-op when unset or present.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var dummy string

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, cfg.AdminEmail).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	now := time.Now().UTC()

	_, err = pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, role, created_at, updated_at)
         VALUES ($1, $2, $3, $4, $5, $6, $7)
         ON CONFLICT (email) DO NOTHING`,
		uuid.NewString(), cfg.AdminEmail, hash, cfg.AdminName, user.RoleAdmin, now, now,
	)

	return err
}
