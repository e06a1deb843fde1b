package db

import (
	"context"
	"fmt"

	"student_admin_backend/middleware"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SeedAdmin creates the bootstrap admin account unless the email is taken.
// It reports whether a row was inserted.
func SeedAdmin(ctx context.Context, db *sqlx.DB, name, email, password string) (bool, error) {
	if password == "" {
		return false, nil
	}

	hash, err := middleware.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("error hashing admin password: %w", err)
	}

	res, err := db.ExecContext(ctx,
		`INSERT INTO admins (id, name, email, password_hash) VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING`,
		uuid.NewString(), name, email, hash,
	)
	if err != nil {
		return false, fmt.Errorf("error seeding admin: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("error seeding admin: %w", err)
	}
	return n > 0, nil
}
