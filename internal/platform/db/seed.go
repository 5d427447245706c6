package db

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"hrportal/internal/domain/auth"
	"hrportal/internal/platform/config"
)

// Seed creates the initial admin account when the users table is empty.
// Without it a fresh install has nobody able to approve the first
// registrations.
func Seed(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	email := strings.ToLower(strings.TrimSpace(cfg.SeedAdminEmail))
	if email == "" || cfg.SeedAdminPassword == "" {
		return nil
	}

	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(1) FROM users").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.SeedAdminPassword)
	if err != nil {
		return err
	}

	var userID string
	err = pool.QueryRow(ctx, `
    INSERT INTO users (email, name, password_hash, role, department)
    VALUES ($1, 'Administrator', $2, $3, 'HR')
    RETURNING id
  `, email, hash, string(auth.RoleAdmin)).Scan(&userID)
	if err != nil {
		return err
	}
	if _, err := pool.Exec(ctx, `
    INSERT INTO user_roles (user_id, role) VALUES ($1, $2)
  `, userID, string(auth.RoleAdmin)); err != nil {
		return err
	}

	slog.Info("seeded initial admin account", "email", email)
	return nil
}
