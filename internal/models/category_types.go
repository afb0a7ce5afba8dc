package models

import "time"

// Category defines the struct for the 'categories' table
type Category struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Description *string   `json:"description" db:"description"`
	Image       *string   `json:"image" db:"image"`
	Order       int       `json:"order" db:"sort_order"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	// Populated by the listing query only
	ProductCount int `json:"productCount" db:"product_count"`

	// Joins (Not in DB table, populated manually)
	Products []Product `json:"products,omitempty" db:"-"`
}

// CategoryRef is the short category shape embedded in product responses.
type CategoryRef struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
	Slug string `json:"slug" db:"slug"`
}
