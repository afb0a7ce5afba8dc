package handlers

import (
	"context"
	"time"

	"github.com/01moynul/baaje-storefront/internal/cache"
	"github.com/01moynul/baaje-storefront/internal/models"
	"github.com/01moynul/baaje-storefront/internal/payload"
	"go.uber.org/zap"
)

type CategoryStore interface {
	ListActive(ctx context.Context) ([]models.Category, error)
	Get(ctx context.Context, id int64) (models.Category, error)
	GetWithProducts(ctx context.Context, id int64) (models.Category, error)
	Create(ctx context.Context, c models.Category) (models.Category, error)
	Update(ctx context.Context, id int64, set payload.UpdateSet) (models.Category, error)
	Delete(ctx context.Context, id int64) (models.Category, error)
}

type ProductStore interface {
	List(ctx context.Context, f models.ProductFilter) ([]models.Product, error)
	Get(ctx context.Context, id int64) (models.Product, error)
	Create(ctx context.Context, p models.Product) (models.Product, error)
	Update(ctx context.Context, id int64, set payload.UpdateSet) (models.Product, error)
	Delete(ctx context.Context, id int64) (models.Product, error)
}

type BannerStore interface {
	ListActive(ctx context.Context) ([]models.Banner, error)
	Get(ctx context.Context, id int64) (models.Banner, error)
	Create(ctx context.Context, b models.Banner) (models.Banner, error)
	Update(ctx context.Context, id int64, set payload.UpdateSet) (models.Banner, error)
	Delete(ctx context.Context, id int64) (models.Banner, error)
}

type SettingsStore interface {
	Get(ctx context.Context) (models.SiteSettings, error)
	Update(ctx context.Context, set payload.UpdateSet) (models.SiteSettings, error)
}

type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (models.Admin, error)
	Get(ctx context.Context, id int64) (models.Admin, error)
}

type StatsStore interface {
	Stats(ctx context.Context) (models.CatalogStats, error)
}

type TokenIssuer interface {
	GenerateToken(adminID int64) (string, time.Time, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Categories CategoryStore
	Products   ProductStore
	Banners    BannerStore
	Settings   SettingsStore
	Admins     AdminStore
	Stats      StatsStore
	Tokens     TokenIssuer
	DB         Pinger
	Files      payload.FileStore
	Cache      cache.Cache
	Log        *zap.Logger

	// NumericPolicy decides how unparseable optional numbers are treated.
	NumericPolicy payload.NumericPolicy
}

// readThrough serves key from the cache, falling back to load and storing
// its result. Cache failures are logged and otherwise ignored.
func readThrough[T any](ctx context.Context, h *Handlers, key string, load func(context.Context) (T, error)) (T, error) {
	var v T
	found, err := h.Cache.Get(ctx, key, &v)
	if err != nil {
		h.Log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}
	if found {
		return v, nil
	}

	v, err = load(ctx)
	if err != nil {
		return v, err
	}
	if err := h.Cache.Set(ctx, key, v); err != nil {
		h.Log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}

func (h *Handlers) invalidate(ctx context.Context, keys ...string) {
	if err := h.Cache.Delete(ctx, keys...); err != nil {
		h.Log.Warn("cache invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// removeFiles deletes stored uploads that are no longer referenced. Failures
// only leave an orphaned file behind, so they are logged.
func (h *Handlers) removeFiles(ctx context.Context, paths ...string) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := h.Files.Remove(ctx, p); err != nil {
			h.Log.Warn("failed to remove stored file", zap.String("path", p), zap.Error(err))
		}
	}
}
