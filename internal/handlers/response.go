package handlers

import (
	"github.com/01moynul/baaje-storefront/internal/apperr"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respond writes the {success, message, data} envelope. Empty message and
// nil data are left out.
func respond(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// fail maps err to its status and client message. Upstream failures answer
// with fallback and are logged with their cause.
func (h *Handlers) fail(c *gin.Context, err error, fallback string) {
	kind := apperr.KindOf(err)
	if kind == apperr.KindUpstream {
		h.Log.Error(fallback,
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		)
	}
	_ = c.Error(err)
	c.JSON(apperr.Status(kind), gin.H{
		"success": false,
		"message": apperr.MessageOf(err, fallback),
	})
}
