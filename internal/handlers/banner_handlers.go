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

// ListBanners is the handler for GET /api/banners.
func (h *Handlers) ListBanners(c *gin.Context) {
	banners, err := readThrough(c.Request.Context(), h, cache.KeyBanners,
		func(ctx context.Context) ([]models.Banner, error) {
			return h.Banners.ListActive(ctx)
		})
	if err != nil {
		h.fail(c, err, "Failed to fetch banners")
		return
	}
	respond(c, http.StatusOK, "", banners)
}

// CreateBanner is the handler for POST /api/banners. The image is required.
func (h *Handlers) CreateBanner(c *gin.Context) {
	ctx := c.Request.Context()
	const fallback = "Failed to create banner"

	values, err := h.readPayload(c, payload.BannerSchema)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	upload, err := singleUpload(c, "image", storage.BannerRule)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}

	// Validate with a placeholder so field errors surface before the file is stored.
	patch := payload.BannerPatchFrom(values)
	if upload != nil {
		patch.Image = payload.Some(upload.Filename)
	}
	if _, err := payload.NewBanner(patch); err != nil {
		h.fail(c, err, fallback)
		return
	}

	patch.Image, err = payload.ResolveImage(ctx, h.Files, payload.BannerImages, upload)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	banner, err := payload.NewBanner(patch)
	if err == nil {
		banner, err = h.Banners.Create(ctx, banner)
	}
	if err != nil {
		h.removeFiles(ctx, patch.Image.Value)
		h.fail(c, err, fallback)
		return
	}

	h.invalidate(ctx, cache.KeyBanners)
	respond(c, http.StatusCreated, "Banner created successfully", banner)
}

// UpdateBanner is the handler for PUT /api/banners/:id.
func (h *Handlers) UpdateBanner(c *gin.Context) {
	ctx := c.Request.Context()
	const fallback = "Failed to update banner"

	id, err := parseID(c)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	values, err := h.readPayload(c, payload.BannerSchema)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	upload, err := singleUpload(c, "image", storage.BannerRule)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}

	existing, err := h.Banners.Get(ctx, id)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	patch := payload.BannerPatchFrom(values)
	if _, err := payload.MergeBanner(existing, patch); err != nil {
		h.fail(c, err, fallback)
		return
	}

	patch.Image, err = payload.ResolveImage(ctx, h.Files, payload.BannerImages, upload)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	set, err := payload.MergeBanner(existing, patch)
	if err != nil {
		h.removeFiles(ctx, patch.Image.Value)
		h.fail(c, err, fallback)
		return
	}

	banner, err := h.Banners.Update(ctx, id, set)
	if err != nil {
		h.removeFiles(ctx, patch.Image.Value)
		h.fail(c, err, fallback)
		return
	}
	if patch.Image.Set && existing.Image != patch.Image.Value {
		h.removeFiles(ctx, existing.Image)
	}

	h.invalidate(ctx, cache.KeyBanners)
	respond(c, http.StatusOK, "Banner updated successfully", banner)
}

// DeleteBanner is the handler for DELETE /api/banners/:id.
func (h *Handlers) DeleteBanner(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := parseID(c)
	if err != nil {
		h.fail(c, err, "")
		return
	}

	deleted, err := h.Banners.Delete(ctx, id)
	if err != nil {
		h.fail(c, err, "Failed to delete banner")
		return
	}
	h.removeFiles(ctx, deleted.Image)

	h.invalidate(ctx, cache.KeyBanners)
	respond(c, http.StatusOK, "Banner deleted successfully", nil)
}
