package repository

import (
	"context"

	"github.com/01moynul/baaje-storefront/internal/models"
)

// We use COALESCE(..., 0) so an empty catalog sums to 0 instead of NULL.
const statsQuery = `
	SELECT
		(SELECT COUNT(*) FROM products) AS total_products,
		(SELECT COUNT(*) FROM products WHERE is_active = 1) AS active_products,
		(SELECT COUNT(*) FROM products WHERE is_active = 1 AND is_featured = 1) AS featured_products,
		(SELECT COUNT(*) FROM products WHERE is_active = 1 AND stock <= ?) AS low_stock_count,
		(SELECT COUNT(*) FROM categories) AS categories,
		(SELECT COUNT(*) FROM banners WHERE is_active = 1) AS active_banners,
		(SELECT COALESCE(SUM(COALESCE(sale_price, price) * stock), 0)
			FROM products WHERE is_active = 1) AS inventory_value`

// Stats computes the admin dashboard KPIs in one round trip.
func (s *Store) Stats(ctx context.Context) (models.CatalogStats, error) {
	var stats models.CatalogStats
	if err := s.DB.GetContext(ctx, &stats, statsQuery, models.LowStockThreshold); err != nil {
		return models.CatalogStats{}, classify(err, "Stats", "load")
	}
	return stats, nil
}
