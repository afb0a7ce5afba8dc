package payload

import (
	"github.com/01moynul/baaje-storefront/internal/models"
	"github.com/shopspring/decimal"
)

// SettingsSchema declares the form fields of the site settings update.
var SettingsSchema = Schema{
	"siteName":        {Kind: String, Required: true},
	"siteDescription": {Kind: String},
	"email":           {Kind: String},
	"phone":           {Kind: String},
	"address":         {Kind: String},
	"facebook":        {Kind: String},
	"twitter":         {Kind: String},
	"instagram":       {Kind: String},
	"linkedin":        {Kind: String},
	"currency":        {Kind: String, Required: true},
	"freeShipping":    {Kind: Float},
}

type SettingsPatch struct {
	SiteName        Optional[string]
	SiteDescription Optional[string]
	Email           Optional[string]
	Phone           Optional[string]
	Address         Optional[string]
	Facebook        Optional[string]
	Twitter         Optional[string]
	Instagram       Optional[string]
	Linkedin        Optional[string]
	Currency        Optional[string]
	FreeShipping    Optional[decimal.Decimal]
	Logo            Optional[string]
	Favicon         Optional[string]
}

func SettingsPatchFrom(v Values) SettingsPatch {
	return SettingsPatch{
		SiteName:        Get[string](v, "siteName"),
		SiteDescription: Get[string](v, "siteDescription"),
		Email:           Get[string](v, "email"),
		Phone:           Get[string](v, "phone"),
		Address:         Get[string](v, "address"),
		Facebook:        Get[string](v, "facebook"),
		Twitter:         Get[string](v, "twitter"),
		Instagram:       Get[string](v, "instagram"),
		Linkedin:        Get[string](v, "linkedin"),
		Currency:        Get[string](v, "currency"),
		FreeShipping:    Get[decimal.Decimal](v, "freeShipping"),
	}
}

// MergeSettings returns the fields of p that must be written over the
// settings row.
func MergeSettings(_ models.SiteSettings, p SettingsPatch) (UpdateSet, error) {
	if p.Email.Set {
		if err := checkVar("email", p.Email.Value, "omitempty,email"); err != nil {
			return UpdateSet{}, err
		}
	}
	if p.Currency.Set {
		if err := checkVar("currency", p.Currency.Value, "max=8"); err != nil {
			return UpdateSet{}, err
		}
	}
	if p.FreeShipping.Set {
		if err := checkNonNegative("freeShipping", p.FreeShipping.Value); err != nil {
			return UpdateSet{}, err
		}
	}

	var set UpdateSet
	Put(&set, "siteName", p.SiteName)
	Put(&set, "siteDescription", p.SiteDescription)
	Put(&set, "email", p.Email)
	Put(&set, "phone", p.Phone)
	Put(&set, "address", p.Address)
	Put(&set, "facebook", p.Facebook)
	Put(&set, "twitter", p.Twitter)
	Put(&set, "instagram", p.Instagram)
	Put(&set, "linkedin", p.Linkedin)
	Put(&set, "currency", p.Currency)
	Put(&set, "freeShipping", p.FreeShipping)
	Put(&set, "logo", p.Logo)
	Put(&set, "favicon", p.Favicon)
	return set, nil
}
