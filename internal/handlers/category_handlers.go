package handlers

import (
	"context"
	"net/http"

	"github.com/01moynul/baaje-storefront/internal/cache"
	"github.com/01moynul/baaje-storefront/internal/models"
	"github.com/01moynul/baaje-storefront/internal/payload"
	"github.com/01moynul/baaje-storefront/internal/storage"
	"github.com/gin-gonic/gin"
)

// ListCategories is the handler for GET /api/categories.
func (h *Handlers) ListCategories(c *gin.Context) {
	categories, err := readThrough(c.Request.Context(), h, cache.KeyCategories,
		func(ctx context.Context) ([]models.Category, error) {
			return h.Categories.ListActive(ctx)
		})
	if err != nil {
		h.fail(c, err, "Failed to fetch categories")
		return
	}
	respond(c, http.StatusOK, "", categories)
}

// GetCategory is the handler for GET /api/categories/:id.
func (h *Handlers) GetCategory(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	category, err := h.Categories.GetWithProducts(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Failed to fetch category")
		return
	}
	respond(c, http.StatusOK, "", category)
}

// CreateCategory is the handler for POST /api/categories.
func (h *Handlers) CreateCategory(c *gin.Context) {
	ctx := c.Request.Context()
	const fallback = "Failed to create category"

	// 1. --- Read & Validate Fields ---
	values, err := h.readPayload(c, payload.CategorySchema)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	upload, err := singleUpload(c, "image", storage.CategoryRule)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	patch := payload.CategoryPatchFrom(values)
	if _, err := payload.NewCategory(patch); err != nil {
		h.fail(c, err, fallback)
		return
	}

	// 2. --- Store Image ---
	patch.Image, err = payload.ResolveImage(ctx, h.Files, payload.CategoryImages, upload)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}

	// 3. --- Insert ---
	category, err := payload.NewCategory(patch)
	if err == nil {
		category, err = h.Categories.Create(ctx, category)
	}
	if err != nil {
		h.removeFiles(ctx, patch.Image.Value)
		h.fail(c, err, fallback)
		return
	}

	h.invalidate(ctx, cache.KeyCategories)
	respond(c, http.StatusCreated, "Category created successfully", category)
}

// UpdateCategory is the handler for PUT /api/categories/:id.
// A new image replaces the stored one, which is then removed.
func (h *Handlers) UpdateCategory(c *gin.Context) {
	ctx := c.Request.Context()
	const fallback = "Failed to update category"

	id, err := parseID(c)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	values, err := h.readPayload(c, payload.CategorySchema)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	upload, err := singleUpload(c, "image", storage.CategoryRule)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}

	existing, err := h.Categories.Get(ctx, id)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	patch := payload.CategoryPatchFrom(values)
	if _, err := payload.MergeCategory(existing, patch); err != nil {
		h.fail(c, err, fallback)
		return
	}

	patch.Image, err = payload.ResolveImage(ctx, h.Files, payload.CategoryImages, upload)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	set, err := payload.MergeCategory(existing, patch)
	if err != nil {
		h.removeFiles(ctx, patch.Image.Value)
		h.fail(c, err, fallback)
		return
	}

	category, err := h.Categories.Update(ctx, id, set)
	if err != nil {
		h.removeFiles(ctx, patch.Image.Value)
		h.fail(c, err, fallback)
		return
	}
	if patch.Image.Set && existing.Image != nil && *existing.Image != patch.Image.Value {
		h.removeFiles(ctx, *existing.Image)
	}

	h.invalidate(ctx, cache.KeyCategories)
	respond(c, http.StatusOK, "Category updated successfully", category)
}

// DeleteCategory is the handler for DELETE /api/categories/:id.
// Categories that still own products are kept.
func (h *Handlers) DeleteCategory(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := parseID(c)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	deleted, err := h.Categories.Delete(ctx, id)
	if err != nil {
		h.fail(c, err, "Failed to delete category")
		return
	}
	if deleted.Image != nil {
		h.removeFiles(ctx, *deleted.Image)
	}

	h.invalidate(ctx, cache.KeyCategories)
	respond(c, http.StatusOK, "Category deleted successfully", nil)
}
