package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

//
// --- Admin Dashboard Stats ---
//

// GetDashboardStats returns KPI data for the admin dashboard
// GET /api/admin/stats
func (h *Handlers) GetDashboardStats(c *gin.Context) {
	stats, err := h.Stats.Stats(c.Request.Context())
	if err != nil {
		h.fail(c, err, "Failed to load dashboard stats")
		return
	}
	respond(c, http.StatusOK, "", stats)
}
