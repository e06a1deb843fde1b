package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"student_admin_backend/models"
)

type AdminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (models.Admin, error) {
	return r.getOne(ctx, `SELECT id, name, email, password_hash, created_at FROM admins WHERE email = $1`, email)
}

func (r *AdminRepository) GetByID(ctx context.Context, id string) (models.Admin, error) {
	return r.getOne(ctx, `SELECT id, name, email, password_hash, created_at FROM admins WHERE id = $1`, id)
}

func (r *AdminRepository) getOne(ctx context.Context, query string, arg interface{}) (models.Admin, error) {
	var a models.Admin
	err := r.db.GetContext(ctx, &a, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Admin{}, ErrNotFound
	}
	if err != nil {
		return models.Admin{}, fmt.Errorf("error fetching admin: %w", err)
	}
	return a, nil
}
