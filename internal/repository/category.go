package repository

import (
	"context"
	"time"

	"github.com/01moynul/baaje-storefront/internal/apperr"
	"github.com/01moynul/baaje-storefront/internal/models"
	"github.com/01moynul/baaje-storefront/internal/payload"
	"github.com/jmoiron/sqlx"
)

// msgCategoryInUse answers a delete of a category that still has products.
const msgCategoryInUse = "Cannot delete category with existing products"

// categoryDetailProducts caps the products embedded in a category lookup.
const categoryDetailProducts = 20

var categoryColumns = columnMap{
	"name":        "name",
	"slug":        "slug",
	"description": "description",
	"image":       "image",
	"order":       "sort_order",
	"isActive":    "is_active",
}

const categorySelect = `SELECT id, name, slug, description, image, sort_order, is_active, created_at, updated_at FROM categories`

type CategoryRepository struct {
	db *sqlx.DB
}

// ListActive returns active categories by display order, each with the number
// of products that reference it.
func (r *CategoryRepository) ListActive(ctx context.Context) ([]models.Category, error) {
	query := `
        SELECT c.id, c.name, c.slug, c.description, c.image, c.sort_order, c.is_active,
               c.created_at, c.updated_at,
               (SELECT COUNT(*) FROM products p WHERE p.category_id = c.id) AS product_count
        FROM categories c
        WHERE c.is_active = 1
        ORDER BY c.sort_order ASC, c.id ASC
    `
	categories := []models.Category{}
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, classify(err, "Category", "list")
	}
	return categories, nil
}

// Get loads one category.
func (r *CategoryRepository) Get(ctx context.Context, id int64) (models.Category, error) {
	var c models.Category
	err := r.db.GetContext(ctx, &c, categorySelect+" WHERE id = ?", id)
	return c, classify(err, "Category", "load")
}

// GetWithProducts loads a category and up to 20 of its active products.
func (r *CategoryRepository) GetWithProducts(ctx context.Context, id int64) (models.Category, error) {
	c, err := r.Get(ctx, id)
	if err != nil {
		return models.Category{}, err
	}

	products := []models.Product{}
	query := productSelect + ` WHERE p.category_id = ? AND p.is_active = 1 ORDER BY p.created_at DESC LIMIT ?`
	if err := r.db.SelectContext(ctx, &products, query, id, categoryDetailProducts); err != nil {
		return models.Category{}, classify(err, "Category", "load")
	}
	c.Products = products
	return c, nil
}

// Create inserts c and returns the stored row.
func (r *CategoryRepository) Create(ctx context.Context, c models.Category) (models.Category, error) {
	now := time.Now()
	c.CreatedAt, c.UpdatedAt = now, now

	query := `
        INSERT INTO categories (name, slug, description, image, sort_order, is_active, created_at, updated_at)
        VALUES (:name, :slug, :description, :image, :sort_order, :is_active, :created_at, :updated_at)
    `
	res, err := r.db.NamedExecContext(ctx, query, c)
	if err != nil {
		return models.Category{}, classify(err, "Category", "create")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Category{}, classify(err, "Category", "create")
	}
	return r.Get(ctx, id)
}

// Update writes set to the category and returns the stored row.
func (r *CategoryRepository) Update(ctx context.Context, id int64, set payload.UpdateSet) (models.Category, error) {
	if err := execUpdate(ctx, r.db, "categories", "Category", categoryColumns, set, id); err != nil {
		return models.Category{}, err
	}
	return r.Get(ctx, id)
}

// Delete removes the category unless products still reference it. The check
// and the delete share a transaction so a concurrent product insert cannot
// slip in between.
func (r *CategoryRepository) Delete(ctx context.Context, id int64) (models.Category, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Category{}, classify(err, "Category", "delete")
	}
	defer tx.Rollback()

	var c models.Category
	if err := tx.GetContext(ctx, &c, categorySelect+" WHERE id = ? FOR UPDATE", id); err != nil {
		return models.Category{}, classify(err, "Category", "delete")
	}

	var n int
	if err := tx.GetContext(ctx, &n, "SELECT COUNT(*) FROM products WHERE category_id = ?", id); err != nil {
		return models.Category{}, classify(err, "Category", "delete")
	}
	if n > 0 {
		return models.Category{}, apperr.Conflict(msgCategoryInUse, nil)
	}

	if err := deleteByID(ctx, tx, "categories", "Category", id); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			return models.Category{}, apperr.Conflict(msgCategoryInUse, err)
		}
		return models.Category{}, err
	}
	if err := tx.Commit(); err != nil {
		return models.Category{}, classify(err, "Category", "delete")
	}
	return c, nil
}
