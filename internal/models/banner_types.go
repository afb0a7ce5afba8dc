package models

import "time"

// Banner defines the struct for the 'banners' table
type Banner struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Subtitle    *string   `json:"subtitle" db:"subtitle"`
	Description *string   `json:"description" db:"description"`
	Image       string    `json:"image" db:"image"`
	Link        *string   `json:"link" db:"link"`
	ButtonText  *string   `json:"buttonText" db:"button_text"`
	Order       int       `json:"order" db:"sort_order"`
	IsActive    bool      `json:"isActive" db:"is_active"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}
