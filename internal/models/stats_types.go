package models

import "github.com/shopspring/decimal"

// LowStockThreshold is the stock level at or below which a product counts as low.
const LowStockThreshold = 5

// CatalogStats are the KPIs shown on the admin dashboard.
type CatalogStats struct {
	TotalProducts    int `json:"totalProducts" db:"total_products"`
	ActiveProducts   int `json:"activeProducts" db:"active_products"`
	FeaturedProducts int `json:"featuredProducts" db:"featured_products"`
	LowStockCount    int `json:"lowStockCount" db:"low_stock_count"`
	Categories       int `json:"categories" db:"categories"`
	ActiveBanners    int `json:"activeBanners" db:"active_banners"`

	// Sum of the effective price (sale price when set) times stock over
	// active products.
	InventoryValue decimal.Decimal `json:"inventoryValue" db:"inventory_value"`
}
