package payload

import (
	"github.com/01moynul/baaje-storefront/internal/apperr"
	"github.com/01moynul/baaje-storefront/internal/models"
	"github.com/shopspring/decimal"
)

// ProductSchema declares the form fields of product writes.
var ProductSchema = Schema{
	"name":           {Kind: String, Required: true},
	"description":    {Kind: String},
	"price":          {Kind: Float, Required: true},
	"salePrice":      {Kind: Float, Nullable: true},
	"stock":          {Kind: Int},
	"sku":            {Kind: String},
	"categoryId":     {Kind: Int, Required: true},
	"tags":           {Kind: List},
	"existingImages": {Kind: List},
	"isFeatured":     {Kind: Bool},
	"isActive":       {Kind: Bool},
}

// ProductPatch is a product write with per-field presence.
// RetainedImages is the caller's list of already stored images to keep;
// Images is the final list produced by ResolveImages.
type ProductPatch struct {
	Name           Optional[string]
	Description    Optional[string]
	Price          Optional[decimal.Decimal]
	SalePrice      Optional[decimal.NullDecimal]
	Stock          Optional[int]
	SKU            Optional[string]
	CategoryID     Optional[int64]
	Tags           Optional[[]string]
	RetainedImages Optional[[]string]
	Images         Optional[[]string]
	IsFeatured     Optional[bool]
	IsActive       Optional[bool]
}

func ProductPatchFrom(v Values) ProductPatch {
	return ProductPatch{
		Name:           Get[string](v, "name"),
		Description:    Get[string](v, "description"),
		Price:          Get[decimal.Decimal](v, "price"),
		SalePrice:      Get[decimal.NullDecimal](v, "salePrice"),
		Stock:          Map(Get[int64](v, "stock"), toInt),
		SKU:            Get[string](v, "sku"),
		CategoryID:     Get[int64](v, "categoryId"),
		Tags:           Get[[]string](v, "tags"),
		RetainedImages: Get[[]string](v, "existingImages"),
		IsFeatured:     Get[bool](v, "isFeatured"),
		IsActive:       Get[bool](v, "isActive"),
	}
}

type productRules struct {
	Name       string `json:"name" validate:"required,max=191"`
	Stock      int    `json:"stock" validate:"gte=0"`
	SKU        string `json:"sku" validate:"max=64"`
	CategoryID int64  `json:"categoryId" validate:"gt=0"`
}

// NewProduct builds a product for insertion.
func NewProduct(p ProductPatch) (models.Product, error) {
	switch {
	case !p.Name.Set:
		return models.Product{}, apperr.Validation("name is required")
	case !p.Price.Set:
		return models.Product{}, apperr.Validation("price is required")
	case !p.CategoryID.Set:
		return models.Product{}, apperr.Validation("categoryId is required")
	}

	rules := productRules{
		Name:       p.Name.Value,
		Stock:      p.Stock.OrElse(0),
		SKU:        p.SKU.Value,
		CategoryID: p.CategoryID.Value,
	}
	if err := checkStruct(rules); err != nil {
		return models.Product{}, err
	}
	if err := checkPricing(p.Price.Value, p.SalePrice.Value); err != nil {
		return models.Product{}, err
	}
	s, err := slugFor(p.Name.Value)
	if err != nil {
		return models.Product{}, err
	}

	return models.Product{
		Name:        p.Name.Value,
		Slug:        s,
		Description: ptr(p.Description),
		Price:       p.Price.Value,
		SalePrice:   p.SalePrice.Value,
		Stock:       rules.Stock,
		SKU:         ptr(p.SKU),
		CategoryID:  p.CategoryID.Value,
		Images:      models.StringList(p.Images.OrElse([]string{})),
		Tags:        models.StringList(p.Tags.OrElse([]string{})),
		IsFeatured:  p.IsFeatured.OrElse(false),
		IsActive:    p.IsActive.OrElse(true),
	}, nil
}

// MergeProduct returns the fields of p that must be written over existing.
// The sale price is checked against whichever price will be stored.
func MergeProduct(existing models.Product, p ProductPatch) (UpdateSet, error) {
	var set UpdateSet
	if err := putName(&set, "name", p.Name, existing.Slug); err != nil {
		return UpdateSet{}, err
	}
	Put(&set, "description", p.Description)

	if p.Price.Set || p.SalePrice.Set {
		price := p.Price.OrElse(existing.Price)
		sale := p.SalePrice.OrElse(existing.SalePrice)
		if err := checkPricing(price, sale); err != nil {
			return UpdateSet{}, err
		}
	}
	Put(&set, "price", p.Price)
	Put(&set, "salePrice", p.SalePrice)

	if p.Stock.Set {
		if err := checkVar("stock", p.Stock.Value, "gte=0"); err != nil {
			return UpdateSet{}, err
		}
	}
	Put(&set, "stock", p.Stock)

	if p.SKU.Set {
		if err := checkVar("sku", p.SKU.Value, "max=64"); err != nil {
			return UpdateSet{}, err
		}
	}
	Put(&set, "sku", p.SKU)

	if p.CategoryID.Set {
		if err := checkVar("categoryId", p.CategoryID.Value, "gt=0"); err != nil {
			return UpdateSet{}, err
		}
	}
	Put(&set, "categoryId", p.CategoryID)

	Put(&set, "tags", Map(p.Tags, toStringList))
	Put(&set, "images", Map(p.Images, toStringList))
	Put(&set, "isFeatured", p.IsFeatured)
	Put(&set, "isActive", p.IsActive)
	return set, nil
}

func checkPricing(price decimal.Decimal, sale decimal.NullDecimal) error {
	if err := checkNonNegative("price", price); err != nil {
		return err
	}
	if !sale.Valid {
		return nil
	}
	if err := checkNonNegative("salePrice", sale.Decimal); err != nil {
		return err
	}
	if sale.Decimal.GreaterThan(price) {
		return apperr.Validation("salePrice must not exceed price")
	}
	return nil
}

func toStringList(l []string) models.StringList { return models.StringList(l) }
