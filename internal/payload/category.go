package payload

import (
	"github.com/01moynul/baaje-storefront/internal/apperr"
	"github.com/01moynul/baaje-storefront/internal/models"
)

// CategorySchema declares the form fields of category writes.
var CategorySchema = Schema{
	"name":        {Kind: String, Required: true},
	"description": {Kind: String},
	"order":       {Kind: Int},
	"isActive":    {Kind: Bool},
}

// CategoryPatch is a category write with per-field presence.
type CategoryPatch struct {
	Name        Optional[string]
	Description Optional[string]
	Order       Optional[int]
	IsActive    Optional[bool]
	Image       Optional[string]
}

// CategoryPatchFrom reads a patch out of normalized values. Image is filled
// by the resolver.
func CategoryPatchFrom(v Values) CategoryPatch {
	return CategoryPatch{
		Name:        Get[string](v, "name"),
		Description: Get[string](v, "description"),
		Order:       Map(Get[int64](v, "order"), toInt),
		IsActive:    Get[bool](v, "isActive"),
	}
}

// NewCategory builds a category for insertion.
func NewCategory(p CategoryPatch) (models.Category, error) {
	if !p.Name.Set {
		return models.Category{}, apperr.Validation("name is required")
	}
	if err := checkVar("name", p.Name.Value, "max=191"); err != nil {
		return models.Category{}, err
	}
	s, err := slugFor(p.Name.Value)
	if err != nil {
		return models.Category{}, err
	}

	return models.Category{
		Name:        p.Name.Value,
		Slug:        s,
		Description: ptr(p.Description),
		Image:       ptr(p.Image),
		Order:       p.Order.OrElse(0),
		IsActive:    p.IsActive.OrElse(true),
	}, nil
}

// MergeCategory returns the fields of p that must be written over existing.
func MergeCategory(existing models.Category, p CategoryPatch) (UpdateSet, error) {
	var set UpdateSet
	if err := putName(&set, "name", p.Name, existing.Slug); err != nil {
		return UpdateSet{}, err
	}
	Put(&set, "description", p.Description)
	Put(&set, "order", p.Order)
	Put(&set, "isActive", p.IsActive)
	Put(&set, "image", p.Image)
	return set, nil
}

// putName writes the name and, when it changes the slug, the derived slug.
func putName(set *UpdateSet, field string, name Optional[string], currentSlug string) error {
	if !name.Set {
		return nil
	}
	if err := checkVar(field, name.Value, "max=191"); err != nil {
		return err
	}
	s, err := slugFor(name.Value)
	if err != nil {
		return err
	}
	set.Set(field, name.Value)
	if s != currentSlug {
		set.Set("slug", s)
	}
	return nil
}

func toInt(n int64) int { return int(n) }

func ptr[T any](o Optional[T]) *T {
	if !o.Set {
		return nil
	}
	v := o.Value
	return &v
}
