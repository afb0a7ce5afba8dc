package repository

import (
	"context"
	"time"

	"github.com/01moynul/baaje-storefront/internal/models"
	"github.com/01moynul/baaje-storefront/internal/payload"
	"github.com/jmoiron/sqlx"
)

var bannerColumns = columnMap{
	"title":       "title",
	"subtitle":    "subtitle",
	"description": "description",
	"image":       "image",
	"link":        "link",
	"buttonText":  "button_text",
	"order":       "sort_order",
	"isActive":    "is_active",
}

const bannerSelect = `SELECT id, title, subtitle, description, image, link, button_text, sort_order, is_active, created_at, updated_at FROM banners`

type BannerRepository struct {
	db *sqlx.DB
}

func (r *BannerRepository) ListActive(ctx context.Context) ([]models.Banner, error) {
	banners := []models.Banner{}
	err := r.db.SelectContext(ctx, &banners, bannerSelect+" WHERE is_active = 1 ORDER BY sort_order ASC, id ASC")
	if err != nil {
		return nil, classify(err, "Banner", "list")
	}
	return banners, nil
}

func (r *BannerRepository) Get(ctx context.Context, id int64) (models.Banner, error) {
	var b models.Banner
	err := r.db.GetContext(ctx, &b, bannerSelect+" WHERE id = ?", id)
	return b, classify(err, "Banner", "load")
}

func (r *BannerRepository) Create(ctx context.Context, b models.Banner) (models.Banner, error) {
	now := time.Now()
	b.CreatedAt, b.UpdatedAt = now, now

	query := `
        INSERT INTO banners (title, subtitle, description, image, link, button_text, sort_order, is_active, created_at, updated_at)
        VALUES (:title, :subtitle, :description, :image, :link, :button_text, :sort_order, :is_active, :created_at, :updated_at)
    `
	res, err := r.db.NamedExecContext(ctx, query, b)
	if err != nil {
		return models.Banner{}, classify(err, "Banner", "create")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Banner{}, classify(err, "Banner", "create")
	}
	return r.Get(ctx, id)
}

func (r *BannerRepository) Update(ctx context.Context, id int64, set payload.UpdateSet) (models.Banner, error) {
	if err := execUpdate(ctx, r.db, "banners", "Banner", bannerColumns, set, id); err != nil {
		return models.Banner{}, err
	}
	return r.Get(ctx, id)
}

// Delete removes the banner and returns the row as it was.
func (r *BannerRepository) Delete(ctx context.Context, id int64) (models.Banner, error) {
	b, err := r.Get(ctx, id)
	if err != nil {
		return models.Banner{}, err
	}
	if err := deleteByID(ctx, r.db, "banners", "Banner", id); err != nil {
		return models.Banner{}, err
	}
	return b, nil
}
