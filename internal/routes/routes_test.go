package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/01moynul/baaje-storefront/internal/apperr"
	"github.com/01moynul/baaje-storefront/internal/cache"
	"github.com/01moynul/baaje-storefront/internal/handlers"
	"github.com/01moynul/baaje-storefront/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type rejectAll struct{}

func (rejectAll) ValidateToken(string) (int64, error) { return 0, errors.New("invalid") }

type noAdmins struct{}

func (noAdmins) GetByEmail(context.Context, string) (models.Admin, error) {
	return models.Admin{}, apperr.NotFound("Admin not found")
}

func (noAdmins) Get(context.Context, int64) (models.Admin, error) {
	return models.Admin{}, apperr.NotFound("Admin not found")
}

func newRouter(t *testing.T, opts Options) *gin.Engine {
	t.Helper()
	opts.Tokens = rejectAll{}
	opts.Limiter = cache.Noop{}
	opts.Log = zap.NewNop()
	h := &handlers.Handlers{DB: okPinger{}, Cache: cache.Noop{}, Log: zap.NewNop()}
	return SetupRouter(h, opts)
}

func TestSetupRouter(t *testing.T) {
	uploads := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(uploads, "products"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(uploads, "products", "p.png"), []byte("png"), 0o644))

	router := newRouter(t, Options{UploadDir: uploads, AllowedOrigins: []string{"http://shop.test"}})

	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
		expectedBody   string
	}{
		{name: "health", method: http.MethodGet, path: "/api/health", expectedStatus: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/api/nope", expectedStatus: http.StatusNotFound, expectedBody: `"message":"Route not found"`},
		{name: "create product needs auth", method: http.MethodPost, path: "/api/products", expectedStatus: http.StatusUnauthorized},
		{name: "update settings needs auth", method: http.MethodPut, path: "/api/settings", expectedStatus: http.StatusUnauthorized},
		{name: "delete category needs auth", method: http.MethodDelete, path: "/api/categories/1", expectedStatus: http.StatusUnauthorized},
		{name: "stats need auth", method: http.MethodGet, path: "/api/admin/stats", expectedStatus: http.StatusUnauthorized},
		{name: "local upload served", method: http.MethodGet, path: "/uploads/products/p.png", expectedStatus: http.StatusOK, expectedBody: "png"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()

			// Act
			router.ServeHTTP(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatus, rec.Code)
			if tc.expectedBody != "" {
				assert.Contains(t, rec.Body.String(), tc.expectedBody)
			}
		})
	}
}

func TestCORSPreflight(t *testing.T) {
	router := newRouter(t, Options{AllowedOrigins: []string{"http://shop.test"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://shop.test")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://shop.test", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestLoginRateLimitKeysOnPeerAddress(t *testing.T) {
	testCases := []struct {
		name           string
		trustedProxies []string
		expectedStatus []int
	}{
		{
			name:           "forwarded header from untrusted peer is ignored",
			expectedStatus: []int{401, 401, 401, 401, 401, 429, 429},
		},
		{
			name:           "trusted proxy forwards distinct clients",
			trustedProxies: []string{"203.0.113.0/24"},
			expectedStatus: []int{401, 401, 401, 401, 401, 401, 401},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mr := miniredis.RunT(t)
			limiter, err := cache.NewRedis(context.Background(), cache.Config{Addr: mr.Addr(), TTL: time.Minute})
			require.NoError(t, err)
			t.Cleanup(func() { limiter.Close() })

			h := &handlers.Handlers{Admins: noAdmins{}, DB: okPinger{}, Cache: cache.Noop{}, Log: zap.NewNop()}
			router := SetupRouter(h, Options{
				Tokens:         rejectAll{},
				Limiter:        limiter,
				Log:            zap.NewNop(),
				TrustedProxies: tc.trustedProxies,
			})

			// Act
			var got []int
			for i := range tc.expectedStatus {
				req := httptest.NewRequest(http.MethodPost, "/api/admin/login",
					strings.NewReader(`{"email":"admin@baaje.test","password":"wrong"}`))
				req.Header.Set("Content-Type", "application/json")
				req.RemoteAddr = "203.0.113.9:40000"
				req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
				rec := httptest.NewRecorder()
				router.ServeHTTP(rec, req)
				got = append(got, rec.Code)
			}

			// Assert
			assert.Equal(t, tc.expectedStatus, got)
		})
	}
}
