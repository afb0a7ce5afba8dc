package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Defaults used when the settings row is created on first access.
const (
	DefaultSiteName        = "Baaje Electronics"
	DefaultSiteDescription = "Your trusted online electronics store"
	DefaultCurrency        = "USD"
)

// DefaultFreeShipping is the order total above which shipping is free.
var DefaultFreeShipping = decimal.NewFromInt(55)

// SiteSettings is the singleton row of the 'site_settings' table.
type SiteSettings struct {
	ID              int64           `json:"id" db:"id"`
	SiteName        string          `json:"siteName" db:"site_name"`
	SiteDescription *string         `json:"siteDescription" db:"site_description"`
	Email           *string         `json:"email" db:"email"`
	Phone           *string         `json:"phone" db:"phone"`
	Address         *string         `json:"address" db:"address"`
	Facebook        *string         `json:"facebook" db:"facebook"`
	Twitter         *string         `json:"twitter" db:"twitter"`
	Instagram       *string         `json:"instagram" db:"instagram"`
	Linkedin        *string         `json:"linkedin" db:"linkedin"`
	Logo            *string         `json:"logo" db:"logo"`
	Favicon         *string         `json:"favicon" db:"favicon"`
	Currency        string          `json:"currency" db:"currency"`
	FreeShipping    decimal.Decimal `json:"freeShipping" db:"free_shipping"`
	CreatedAt       time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time       `json:"updatedAt" db:"updated_at"`
}

// DefaultSiteSettings returns the row written when no settings exist yet.
func DefaultSiteSettings() SiteSettings {
	desc := DefaultSiteDescription
	return SiteSettings{
		SiteName:        DefaultSiteName,
		SiteDescription: &desc,
		Currency:        DefaultCurrency,
		FreeShipping:    DefaultFreeShipping,
	}
}
