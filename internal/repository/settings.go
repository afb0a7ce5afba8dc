package repository

import (
	"context"
	"time"

	"github.com/01moynul/baaje-storefront/internal/models"
	"github.com/01moynul/baaje-storefront/internal/payload"
	"github.com/jmoiron/sqlx"
)

// settingsID is the primary key of the only site_settings row.
const settingsID int64 = 1

var settingsColumns = columnMap{
	"siteName":        "site_name",
	"siteDescription": "site_description",
	"email":           "email",
	"phone":           "phone",
	"address":         "address",
	"facebook":        "facebook",
	"twitter":         "twitter",
	"instagram":       "instagram",
	"linkedin":        "linkedin",
	"logo":            "logo",
	"favicon":         "favicon",
	"currency":        "currency",
	"freeShipping":    "free_shipping",
}

const settingsSelect = `SELECT id, site_name, site_description, email, phone, address, facebook, twitter, instagram,
    linkedin, logo, favicon, currency, free_shipping, created_at, updated_at FROM site_settings`

type SettingsRepository struct {
	db *sqlx.DB
}

// Get returns the settings row, writing the defaults first when the table is
// empty. INSERT IGNORE on the fixed id keeps concurrent first reads from
// creating two rows.
func (r *SettingsRepository) Get(ctx context.Context) (models.SiteSettings, error) {
	if err := r.ensure(ctx); err != nil {
		return models.SiteSettings{}, err
	}
	var s models.SiteSettings
	err := r.db.GetContext(ctx, &s, settingsSelect+" WHERE id = ?", settingsID)
	return s, classify(err, "Settings", "load")
}

// Update writes set over the settings row, creating it first if needed.
func (r *SettingsRepository) Update(ctx context.Context, set payload.UpdateSet) (models.SiteSettings, error) {
	if err := r.ensure(ctx); err != nil {
		return models.SiteSettings{}, err
	}
	if err := execUpdate(ctx, r.db, "site_settings", "Settings", settingsColumns, set, settingsID); err != nil {
		return models.SiteSettings{}, err
	}
	return r.Get(ctx)
}

func (r *SettingsRepository) ensure(ctx context.Context) error {
	s := models.DefaultSiteSettings()
	s.ID = settingsID
	now := time.Now()
	s.CreatedAt, s.UpdatedAt = now, now

	query := `
        INSERT IGNORE INTO site_settings (id, site_name, site_description, currency, free_shipping, created_at, updated_at)
        VALUES (:id, :site_name, :site_description, :currency, :free_shipping, :created_at, :updated_at)
    `
	_, err := r.db.NamedExecContext(ctx, query, s)
	return classify(err, "Settings", "create")
}
