package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the model for the 'products' table.
// Images and Tags are JSON array text columns; see StringList.
type Product struct {
	ID          int64               `json:"id" db:"id"`
	Name        string              `json:"name" db:"name"`
	Slug        string              `json:"slug" db:"slug"`
	Description *string             `json:"description" db:"description"`
	Price       decimal.Decimal     `json:"price" db:"price"`
	SalePrice   decimal.NullDecimal `json:"salePrice" db:"sale_price"`
	Stock       int                 `json:"stock" db:"stock"`
	SKU         *string             `json:"sku" db:"sku"`
	CategoryID  int64               `json:"categoryId" db:"category_id"`
	Images      StringList          `json:"images" db:"images"`
	Tags        StringList          `json:"tags" db:"tags"`
	IsFeatured  bool                `json:"isFeatured" db:"is_featured"`
	IsActive    bool                `json:"isActive" db:"is_active"`
	CreatedAt   time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time           `json:"updatedAt" db:"updated_at"`

	// Joined from 'categories' as "category.*" columns
	Category CategoryRef `json:"category" db:"category"`
}

// ProductFilter narrows the public product listing.
type ProductFilter struct {
	CategoryID   *int64
	FeaturedOnly bool
	Search       string
	Limit        int
	Offset       int
}
