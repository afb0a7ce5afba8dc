package routes

import (
	"net/http"
	"time"

	"github.com/01moynul/baaje-storefront/internal/handlers"
	"github.com/01moynul/baaje-storefront/internal/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options carries what the router needs besides the handlers.
type Options struct {
	Tokens  middleware.TokenValidator
	Limiter middleware.AttemptCounter
	Log     *zap.Logger

	// AllowedOrigins lists the browser origins allowed to call the API.
	// Empty allows any origin.
	AllowedOrigins []string

	// TrustedProxies are the only peers whose forwarding headers decide the
	// client IP. Empty trusts none.
	TrustedProxies []string

	// Exactly one of UploadDir and Objects is set: local uploads are served
	// from disk, object storage uploads are streamed from the bucket.
	UploadDir string
	Objects   handlers.ObjectOpener
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func trustedProxies(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	return list
}

func SetupRouter(h *handlers.Handlers, opts Options) *gin.Engine {
	router := gin.New()
	if err := router.SetTrustedProxies(trustedProxies(opts.TrustedProxies)); err != nil {
		opts.Log.Warn("invalid trusted proxies, trusting none", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}

	// Logging and recovery wrap everything, CORS must answer preflights
	// before any route is matched.
	router.Use(middleware.RequestLogger(opts.Log), middleware.Recovery(opts.Log))
	router.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	// --- Uploaded files ---
	switch {
	case opts.Objects != nil:
		router.GET("/uploads/*filepath", handlers.ServeObjects(opts.Objects, opts.Log))
	case opts.UploadDir != "":
		router.Static("/uploads", opts.UploadDir)
	}

	requireAdmin := middleware.AuthMiddleware(opts.Tokens)

	api := router.Group("/api")
	{
		api.GET("/health", h.Health)

		// --- Admin ---
		admin := api.Group("/admin")
		admin.POST("/login", middleware.LoginRateLimit(opts.Limiter, opts.Log), h.Login)
		admin.GET("/me", requireAdmin, h.Me)
		admin.GET("/stats", requireAdmin, h.GetDashboardStats)

		// --- Products ---
		products := api.Group("/products")
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.POST("", requireAdmin, h.CreateProduct)
		products.PUT("/:id", requireAdmin, h.UpdateProduct)
		products.DELETE("/:id", requireAdmin, h.DeleteProduct)

		// --- Categories ---
		categories := api.Group("/categories")
		categories.GET("", h.ListCategories)
		categories.GET("/:id", h.GetCategory)
		categories.POST("", requireAdmin, h.CreateCategory)
		categories.PUT("/:id", requireAdmin, h.UpdateCategory)
		categories.DELETE("/:id", requireAdmin, h.DeleteCategory)

		// --- Banners ---
		banners := api.Group("/banners")
		banners.GET("", h.ListBanners)
		banners.POST("", requireAdmin, h.CreateBanner)
		banners.PUT("/:id", requireAdmin, h.UpdateBanner)
		banners.DELETE("/:id", requireAdmin, h.DeleteBanner)

		// --- Settings ---
		api.GET("/settings", h.GetSettings)
		api.PUT("/settings", requireAdmin, h.UpdateSettings)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Route not found"})
	})

	return router
}
