package repository

import (
	"context"
	"strings"
	"time"

	"github.com/01moynul/baaje-storefront/internal/models"
	"github.com/01moynul/baaje-storefront/internal/payload"
	"github.com/jmoiron/sqlx"
)

var productColumns = columnMap{
	"name":        "name",
	"slug":        "slug",
	"description": "description",
	"price":       "price",
	"salePrice":   "sale_price",
	"stock":       "stock",
	"sku":         "sku",
	"categoryId":  "category_id",
	"images":      "images",
	"tags":        "tags",
	"isFeatured":  "is_featured",
	"isActive":    "is_active",
}

// productSelect joins the owning category as "category.*" columns so sqlx
// fills models.Product.Category.
const productSelect = "SELECT p.id, p.name, p.slug, p.description, p.price, p.sale_price, p.stock, p.sku, " +
	"p.category_id, p.images, p.tags, p.is_featured, p.is_active, p.created_at, p.updated_at, " +
	"c.id AS `category.id`, c.name AS `category.name`, c.slug AS `category.slug` " +
	"FROM products p JOIN categories c ON c.id = p.category_id"

type ProductRepository struct {
	db *sqlx.DB
}

// List returns active products, newest first, narrowed by f.
func (r *ProductRepository) List(ctx context.Context, f models.ProductFilter) ([]models.Product, error) {
	var qb strings.Builder
	var args []any

	qb.WriteString(productSelect)
	qb.WriteString(" WHERE p.is_active = 1")

	if f.CategoryID != nil {
		qb.WriteString(" AND p.category_id = ?")
		args = append(args, *f.CategoryID)
	}
	if f.FeaturedOnly {
		qb.WriteString(" AND p.is_featured = 1")
	}
	if f.Search != "" {
		qb.WriteString(" AND (p.name LIKE ? OR p.description LIKE ?)")
		term := "%" + escapeLike(f.Search) + "%"
		args = append(args, term, term)
	}

	qb.WriteString(" ORDER BY p.created_at DESC, p.id DESC")

	switch {
	case f.Limit > 0:
		qb.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, f.Limit, f.Offset)
	case f.Offset > 0:
		// MySQL has no OFFSET without LIMIT.
		qb.WriteString(" LIMIT 18446744073709551615 OFFSET ?")
		args = append(args, f.Offset)
	}

	products := []models.Product{}
	if err := r.db.SelectContext(ctx, &products, qb.String(), args...); err != nil {
		return nil, classify(err, "Product", "list")
	}
	return products, nil
}

// Get loads one product regardless of its active flag.
func (r *ProductRepository) Get(ctx context.Context, id int64) (models.Product, error) {
	var p models.Product
	err := r.db.GetContext(ctx, &p, productSelect+" WHERE p.id = ?", id)
	return p, classify(err, "Product", "load")
}

// Create inserts p and returns the stored row with its category.
func (r *ProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	now := time.Now()
	p.CreatedAt, p.UpdatedAt = now, now
	if p.Images == nil {
		p.Images = models.StringList{}
	}
	if p.Tags == nil {
		p.Tags = models.StringList{}
	}

	query := `
        INSERT INTO products (name, slug, description, price, sale_price, stock, sku, category_id,
                              images, tags, is_featured, is_active, created_at, updated_at)
        VALUES (:name, :slug, :description, :price, :sale_price, :stock, :sku, :category_id,
                :images, :tags, :is_featured, :is_active, :created_at, :updated_at)
    `
	res, err := r.db.NamedExecContext(ctx, query, p)
	if err != nil {
		return models.Product{}, classify(err, "Product", "create")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Product{}, classify(err, "Product", "create")
	}
	return r.Get(ctx, id)
}

// Update writes set to the product and returns the stored row.
func (r *ProductRepository) Update(ctx context.Context, id int64, set payload.UpdateSet) (models.Product, error) {
	if err := execUpdate(ctx, r.db, "products", "Product", productColumns, set, id); err != nil {
		return models.Product{}, err
	}
	return r.Get(ctx, id)
}

// Delete removes the product and returns the row as it was.
func (r *ProductRepository) Delete(ctx context.Context, id int64) (models.Product, error) {
	p, err := r.Get(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	if err := deleteByID(ctx, r.db, "products", "Product", id); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
