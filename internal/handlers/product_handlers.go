package handlers

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/01moynul/baaje-storefront/internal/apperr"
	"github.com/01moynul/baaje-storefront/internal/cache"
	"github.com/01moynul/baaje-storefront/internal/models"
	"github.com/01moynul/baaje-storefront/internal/payload"
	"github.com/01moynul/baaje-storefront/internal/storage"
	"github.com/gin-gonic/gin"
)

// maxListLimit caps the page size of the public product listing.
const maxListLimit = 100

// ListProducts is the handler for GET /api/products
// Supports ?categoryId=, ?featured=true, ?search=, ?limit= and ?offset=.
func (h *Handlers) ListProducts(c *gin.Context) {
	filter, err := productFilter(c)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	products, err := h.Products.List(c.Request.Context(), filter)
	if err != nil {
		h.fail(c, err, "Failed to fetch products")
		return
	}
	respond(c, http.StatusOK, "", products)
}

func productFilter(c *gin.Context) (models.ProductFilter, error) {
	f := models.ProductFilter{
		FeaturedOnly: c.Query("featured") == "true",
		Search:       strings.TrimSpace(c.Query("search")),
	}

	if v := c.Query("categoryId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return f, apperr.Validation("categoryId must be a positive integer")
		}
		f.CategoryID = &id
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return f, apperr.Validation("limit must be a positive integer")
		}
		f.Limit = min(n, maxListLimit)
	}
	if v := c.Query("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return f, apperr.Validation("offset must be a non-negative integer")
		}
		f.Offset = n
	}
	return f, nil
}

// GetProduct is the handler for GET /api/products/:id
func (h *Handlers) GetProduct(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	product, err := h.Products.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to fetch product")
		return
	}
	respond(c, http.StatusOK, "", product)
}

// CreateProduct is the handler for POST /api/products
// Images come from the "images" files only; existingImages is ignored.
func (h *Handlers) CreateProduct(c *gin.Context) {
	ctx := c.Request.Context()
	const fallback = "Failed to create product"

	// 1. --- Read & Validate Fields ---
	values, err := h.readPayload(c, payload.ProductSchema)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	uploads, err := multiUpload(c, "images", storage.ProductRule, storage.MaxProductImages)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	patch := payload.ProductPatchFrom(values)
	patch.RetainedImages = payload.Optional[[]string]{}
	if _, err := payload.NewProduct(patch); err != nil {
		h.fail(c, err, fallback)
		return
	}

	// 2. --- Store Images ---
	var stored []string
	patch.Images, stored, err = payload.ResolveImages(ctx, h.Files, payload.ProductImages, patch.RetainedImages, uploads)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}

	// 3. --- Insert ---
	product, err := payload.NewProduct(patch)
	if err == nil {
		product, err = h.Products.Create(ctx, product)
	}
	if err != nil {
		payload.Discard(ctx, h.Files, stored)
		h.fail(c, err, fallback)
		return
	}

	h.invalidate(ctx, cache.KeyCategories)
	respond(c, http.StatusCreated, "Product created successfully", product)
}

// UpdateProduct is the handler for PUT /api/products/:id
// The stored image list becomes existingImages followed by the new uploads;
// stored files that drop out of the list are removed. existingImages can only
// keep images the product already has.
func (h *Handlers) UpdateProduct(c *gin.Context) {
	ctx := c.Request.Context()
	const fallback = "Failed to update product"

	id, err := parseID(c)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	values, err := h.readPayload(c, payload.ProductSchema)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	uploads, err := multiUpload(c, "images", storage.ProductRule, storage.MaxProductImages)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}

	existing, err := h.Products.Get(ctx, id)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	patch := payload.ProductPatchFrom(values)
	patch.RetainedImages = payload.Map(patch.RetainedImages, func(paths []string) []string {
		return ownImages(existing.Images, paths)
	})
	if _, err := payload.MergeProduct(existing, patch); err != nil {
		h.fail(c, err, fallback)
		return
	}

	var stored []string
	patch.Images, stored, err = payload.ResolveImages(ctx, h.Files, payload.ProductImages, patch.RetainedImages, uploads)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	set, err := payload.MergeProduct(existing, patch)
	if err != nil {
		payload.Discard(ctx, h.Files, stored)
		h.fail(c, err, fallback)
		return
	}

	product, err := h.Products.Update(ctx, id, set)
	if err != nil {
		payload.Discard(ctx, h.Files, stored)
		h.fail(c, err, fallback)
		return
	}
	if set.Has("images") {
		h.removeFiles(ctx, droppedImages(existing.Images, patch.Images.Value)...)
	}

	h.invalidate(ctx, cache.KeyCategories)
	respond(c, http.StatusOK, "Product updated successfully", product)
}

// DeleteProduct is the handler for DELETE /api/products/:id
func (h *Handlers) DeleteProduct(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := parseID(c)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	deleted, err := h.Products.Delete(ctx, id)
	if err != nil {
		h.fail(c, err, "Failed to delete product")
		return
	}
	h.removeFiles(ctx, deleted.Images...)

	h.invalidate(ctx, cache.KeyCategories)
	respond(c, http.StatusOK, "Product deleted successfully", nil)
}

// droppedImages returns the entries of before that are missing from after.
func droppedImages(before, after []string) []string {
	var dropped []string
	for _, p := range before {
		if !slices.Contains(after, p) {
			dropped = append(dropped, p)
		}
	}
	return dropped
}

// ownImages keeps the entries of retained that are among the product's stored
// images, so one product cannot adopt (and later delete) another's files.
func ownImages(stored, retained []string) []string {
	own := make([]string, 0, len(retained))
	for _, p := range retained {
		if slices.Contains(stored, p) && !slices.Contains(own, p) {
			own = append(own, p)
		}
	}
	return own
}
