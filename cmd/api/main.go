package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/01moynul/baaje-storefront/internal/auth"
	"github.com/01moynul/baaje-storefront/internal/cache"
	"github.com/01moynul/baaje-storefront/internal/config"
	"github.com/01moynul/baaje-storefront/internal/database"
	"github.com/01moynul/baaje-storefront/internal/handlers"
	"github.com/01moynul/baaje-storefront/internal/logger"
	"github.com/01moynul/baaje-storefront/internal/models"
	"github.com/01moynul/baaje-storefront/internal/payload"
	"github.com/01moynul/baaje-storefront/internal/repository"
	"github.com/01moynul/baaje-storefront/internal/routes"
	"github.com/01moynul/baaje-storefront/internal/storage"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg := config.LoadEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zl, err := logger.New(logger.Config{
		IsDevelopment:     cfg.IsDevelopment(),
		Level:             cfg.Logger.Level,
		Encoding:          cfg.Logger.Encoding,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Prices are rendered as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	policy, err := payload.ParseNumericPolicy(cfg.Payload.NumericPolicy)
	if err != nil {
		return err
	}

	// 1. --- Database ---
	db, err := database.Open(ctx, database.Config{
		DSN:             cfg.MySQL.DSN,
		MaxOpenConns:    cfg.MySQL.MaxOpenConns,
		MaxIdleConns:    cfg.MySQL.MaxIdleConns,
		ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer db.Close()
	zl.Info("connected to database")

	store := repository.New(db)
	if err := seedAdmin(ctx, store.Admins, cfg.Admin, zl); err != nil {
		return err
	}

	// 2. --- Upload Storage ---
	opts := routes.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		TrustedProxies: cfg.Server.TrustedProxies,
		Log:            zl,
	}
	var files payload.FileStore
	switch cfg.Storage.Driver {
	case "minio":
		objects, err := storage.NewMinioStore(ctx, storage.MinioConfig{
			Endpoint:  cfg.Storage.MinioEndpoint,
			AccessKey: cfg.Storage.MinioAccessKey,
			SecretKey: cfg.Storage.MinioSecretKey,
			Bucket:    cfg.Storage.MinioBucket,
			UseSSL:    cfg.Storage.MinioUseSSL,
		})
		if err != nil {
			return err
		}
		files, opts.Objects = objects, objects
	default:
		local, err := storage.NewLocalStore(cfg.Server.UploadDir)
		if err != nil {
			return err
		}
		files, opts.UploadDir = local, local.Root
	}
	zl.Info("upload storage ready", zap.String("driver", cfg.Storage.Driver))

	// 3. --- Cache ---
	var c cache.Cache = cache.Noop{}
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedis(ctx, cache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			return err
		}
		defer rc.Close()
		c = rc
		zl.Info("redis cache enabled", zap.String("addr", cfg.Redis.Addr))
	}

	// --- Application Setup ---
	tokens := auth.NewIssuer(cfg.JWT.SecretKey, cfg.JWT.TTL)
	app := &handlers.Handlers{
		Categories:    store.Categories,
		Products:      store.Products,
		Banners:       store.Banners,
		Settings:      store.Settings,
		Admins:        store.Admins,
		Stats:         store,
		Tokens:        tokens,
		DB:            store,
		Files:         files,
		Cache:         c,
		Log:           zl,
		NumericPolicy: policy,
	}
	opts.Tokens = tokens
	opts.Limiter = c

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := routes.SetupRouter(app, opts)

	// --- Start Server ---
	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		zl.Info("starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.Server.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// seedAdmin creates the first admin from ADMIN_EMAIL and ADMIN_PASSWORD when
// the admins table is empty.
func seedAdmin(ctx context.Context, admins *repository.AdminRepository, cfg config.AdminConfig, zl *zap.Logger) error {
	if cfg.Email == "" || cfg.Password == "" {
		return nil
	}
	n, err := admins.Count(ctx)
	if err != nil || n > 0 {
		return err
	}

	var password models.Password
	if err := password.Set(cfg.Password); err != nil {
		return err
	}
	admin, err := admins.Create(ctx, models.Admin{
		Email:        cfg.Email,
		PasswordHash: password.Hash,
		Name:         cfg.Name,
	})
	if err != nil {
		return err
	}
	zl.Info("seeded admin account", zap.String("email", admin.Email))
	return nil
}
