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

// GetSettings is the handler for GET /api/settings. The row is created with
// defaults on first access.
func (h *Handlers) GetSettings(c *gin.Context) {
	settings, err := readThrough(c.Request.Context(), h, cache.KeySettings,
		func(ctx context.Context) (models.SiteSettings, error) {
			return h.Settings.Get(ctx)
		})
	if err != nil {
		h.fail(c, err, "Failed to fetch settings")
		return
	}
	respond(c, http.StatusOK, "", settings)
}

// UpdateSettings is the handler for PUT /api/settings.
// "logo" and "favicon" files replace the stored ones.
func (h *Handlers) UpdateSettings(c *gin.Context) {
	ctx := c.Request.Context()
	const fallback = "Failed to update settings"

	values, err := h.readPayload(c, payload.SettingsSchema)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	logo, err := singleUpload(c, "logo", storage.SettingsRule)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	favicon, err := singleUpload(c, "favicon", storage.SettingsRule)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}

	existing, err := h.Settings.Get(ctx)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	patch := payload.SettingsPatchFrom(values)
	if _, err := payload.MergeSettings(existing, patch); err != nil {
		h.fail(c, err, fallback)
		return
	}

	// Stored files of this request, removed again if the write fails.
	var stored []string
	patch.Logo, err = payload.ResolveImage(ctx, h.Files, payload.SettingsImages, logo)
	if err != nil {
		h.fail(c, err, fallback)
		return
	}
	if patch.Logo.Set {
		stored = append(stored, patch.Logo.Value)
	}
	patch.Favicon, err = payload.ResolveImage(ctx, h.Files, payload.SettingsImages, favicon)
	if err != nil {
		payload.Discard(ctx, h.Files, stored)
		h.fail(c, err, fallback)
		return
	}
	if patch.Favicon.Set {
		stored = append(stored, patch.Favicon.Value)
	}

	set, err := payload.MergeSettings(existing, patch)
	if err != nil {
		payload.Discard(ctx, h.Files, stored)
		h.fail(c, err, fallback)
		return
	}
	settings, err := h.Settings.Update(ctx, set)
	if err != nil {
		payload.Discard(ctx, h.Files, stored)
		h.fail(c, err, fallback)
		return
	}

	if patch.Logo.Set && existing.Logo != nil && *existing.Logo != patch.Logo.Value {
		h.removeFiles(ctx, *existing.Logo)
	}
	if patch.Favicon.Set && existing.Favicon != nil && *existing.Favicon != patch.Favicon.Value {
		h.removeFiles(ctx, *existing.Favicon)
	}

	h.invalidate(ctx, cache.KeySettings)
	respond(c, http.StatusOK, "Settings updated successfully", settings)
}
