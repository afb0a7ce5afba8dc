package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/01moynul/baaje-storefront/internal/storage"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ObjectOpener reads stored uploads back; *storage.MinioStore implements it.
type ObjectOpener interface {
	Open(ctx context.Context, path string) (*storage.Object, error)
}

// ServeObjects streams uploads kept in object storage under
// GET /uploads/*filepath. Local uploads are served as static files instead.
func ServeObjects(objects ObjectOpener, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := "/uploads/" + strings.TrimPrefix(c.Param("filepath"), "/")

		obj, err := objects.Open(c.Request.Context(), path)
		if err != nil {
			if !storage.IsNotFound(err) {
				log.Warn("failed to open upload", zap.String("path", path), zap.Error(err))
			}
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "File not found"})
			return
		}
		defer obj.Close()

		c.Header("Cache-Control", "public, max-age=86400")
		c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj, nil)
	}
}
