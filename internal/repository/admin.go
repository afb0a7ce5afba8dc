package repository

import (
	"context"
	"strings"
	"time"

	"github.com/01moynul/baaje-storefront/internal/models"
	"github.com/jmoiron/sqlx"
)

const adminSelect = `SELECT id, email, password_hash, name, created_at, updated_at FROM admins`

type AdminRepository struct {
	db *sqlx.DB
}

// GetByEmail matches the email case-insensitively.
func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (models.Admin, error) {
	var a models.Admin
	err := r.db.GetContext(ctx, &a, adminSelect+" WHERE email = ?", strings.ToLower(strings.TrimSpace(email)))
	return a, classify(err, "Admin", "load")
}

func (r *AdminRepository) Get(ctx context.Context, id int64) (models.Admin, error) {
	var a models.Admin
	err := r.db.GetContext(ctx, &a, adminSelect+" WHERE id = ?", id)
	return a, classify(err, "Admin", "load")
}

func (r *AdminRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM admins")
	return n, classify(err, "Admin", "count")
}

// Create stores a new admin. The email is lowercased.
func (r *AdminRepository) Create(ctx context.Context, a models.Admin) (models.Admin, error) {
	now := time.Now()
	a.Email = strings.ToLower(strings.TrimSpace(a.Email))
	a.CreatedAt, a.UpdatedAt = now, now

	query := `
        INSERT INTO admins (email, password_hash, name, created_at, updated_at)
        VALUES (:email, :password_hash, :name, :created_at, :updated_at)
    `
	res, err := r.db.NamedExecContext(ctx, query, a)
	if err != nil {
		return models.Admin{}, classify(err, "Admin", "create")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Admin{}, classify(err, "Admin", "create")
	}
	a.ID = id
	return a, nil
}
