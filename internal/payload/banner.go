package payload

import (
	"github.com/01moynul/baaje-storefront/internal/apperr"
	"github.com/01moynul/baaje-storefront/internal/models"
)

// BannerSchema declares the form fields of banner writes.
var BannerSchema = Schema{
	"title":       {Kind: String, Required: true},
	"subtitle":    {Kind: String},
	"description": {Kind: String},
	"link":        {Kind: String},
	"buttonText":  {Kind: String},
	"order":       {Kind: Int},
	"isActive":    {Kind: Bool},
}

type BannerPatch struct {
	Title       Optional[string]
	Subtitle    Optional[string]
	Description Optional[string]
	Link        Optional[string]
	ButtonText  Optional[string]
	Order       Optional[int]
	IsActive    Optional[bool]
	Image       Optional[string]
}

func BannerPatchFrom(v Values) BannerPatch {
	return BannerPatch{
		Title:       Get[string](v, "title"),
		Subtitle:    Get[string](v, "subtitle"),
		Description: Get[string](v, "description"),
		Link:        Get[string](v, "link"),
		ButtonText:  Get[string](v, "buttonText"),
		Order:       Map(Get[int64](v, "order"), toInt),
		IsActive:    Get[bool](v, "isActive"),
	}
}

// NewBanner builds a banner for insertion. The image must already be resolved.
func NewBanner(p BannerPatch) (models.Banner, error) {
	if !p.Image.Set || p.Image.Value == "" {
		return models.Banner{}, apperr.Validation("Banner image is required")
	}
	if !p.Title.Set {
		return models.Banner{}, apperr.Validation("title is required")
	}
	if err := checkVar("title", p.Title.Value, "max=191"); err != nil {
		return models.Banner{}, err
	}

	return models.Banner{
		Title:       p.Title.Value,
		Subtitle:    ptr(p.Subtitle),
		Description: ptr(p.Description),
		Image:       p.Image.Value,
		Link:        ptr(p.Link),
		ButtonText:  ptr(p.ButtonText),
		Order:       p.Order.OrElse(0),
		IsActive:    p.IsActive.OrElse(true),
	}, nil
}

// MergeBanner returns the fields of p that must be written. Banners have no
// derived fields, so the existing row does not influence the result.
func MergeBanner(_ models.Banner, p BannerPatch) (UpdateSet, error) {
	var set UpdateSet
	if p.Title.Set {
		if err := checkVar("title", p.Title.Value, "max=191"); err != nil {
			return UpdateSet{}, err
		}
	}
	Put(&set, "title", p.Title)
	Put(&set, "subtitle", p.Subtitle)
	Put(&set, "description", p.Description)
	Put(&set, "link", p.Link)
	Put(&set, "buttonText", p.ButtonText)
	Put(&set, "order", p.Order)
	Put(&set, "isActive", p.IsActive)
	Put(&set, "image", p.Image)
	return set, nil
}
