package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/01moynul/baaje-storefront/internal/apperr"
	"github.com/01moynul/baaje-storefront/internal/models"
	"github.com/01moynul/baaje-storefront/internal/payload"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

// --- Mock stores ---

type MockCategoryStore struct {
	items     map[int64]models.Category
	listCalls int
	created   []models.Category
	lastSet   payload.UpdateSet
	createErr error
	deleteErr error
}

func (m *MockCategoryStore) ListActive(context.Context) ([]models.Category, error) {
	m.listCalls++
	out := []models.Category{}
	for _, c := range m.items {
		out = append(out, c)
	}
	return out, nil
}

func (m *MockCategoryStore) Get(_ context.Context, id int64) (models.Category, error) {
	c, ok := m.items[id]
	if !ok {
		return models.Category{}, apperr.NotFound("Category not found")
	}
	return c, nil
}

func (m *MockCategoryStore) GetWithProducts(ctx context.Context, id int64) (models.Category, error) {
	return m.Get(ctx, id)
}

func (m *MockCategoryStore) Create(_ context.Context, c models.Category) (models.Category, error) {
	if m.createErr != nil {
		return models.Category{}, m.createErr
	}
	c.ID = int64(len(m.created) + 100)
	m.created = append(m.created, c)
	return c, nil
}

func (m *MockCategoryStore) Update(ctx context.Context, id int64, set payload.UpdateSet) (models.Category, error) {
	m.lastSet = set
	return m.Get(ctx, id)
}

func (m *MockCategoryStore) Delete(ctx context.Context, id int64) (models.Category, error) {
	if m.deleteErr != nil {
		return models.Category{}, m.deleteErr
	}
	c, err := m.Get(ctx, id)
	if err != nil {
		return models.Category{}, err
	}
	delete(m.items, id)
	return c, nil
}

type MockProductStore struct {
	items      map[int64]models.Product
	lastFilter models.ProductFilter
	created    []models.Product
	lastSet    payload.UpdateSet
	createErr  error
	updateErr  error
}

func (m *MockProductStore) List(_ context.Context, f models.ProductFilter) ([]models.Product, error) {
	m.lastFilter = f
	return []models.Product{}, nil
}

func (m *MockProductStore) Get(_ context.Context, id int64) (models.Product, error) {
	p, ok := m.items[id]
	if !ok {
		return models.Product{}, apperr.NotFound("Product not found")
	}
	return p, nil
}

func (m *MockProductStore) Create(_ context.Context, p models.Product) (models.Product, error) {
	if m.createErr != nil {
		return models.Product{}, m.createErr
	}
	p.ID = int64(len(m.created) + 1)
	m.created = append(m.created, p)
	return p, nil
}

func (m *MockProductStore) Update(ctx context.Context, id int64, set payload.UpdateSet) (models.Product, error) {
	if m.updateErr != nil {
		return models.Product{}, m.updateErr
	}
	m.lastSet = set
	return m.Get(ctx, id)
}

func (m *MockProductStore) Delete(ctx context.Context, id int64) (models.Product, error) {
	p, err := m.Get(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	delete(m.items, id)
	return p, nil
}

type MockBannerStore struct {
	items   map[int64]models.Banner
	created []models.Banner
	lastSet payload.UpdateSet
}

func (m *MockBannerStore) ListActive(context.Context) ([]models.Banner, error) {
	return []models.Banner{}, nil
}

func (m *MockBannerStore) Get(_ context.Context, id int64) (models.Banner, error) {
	b, ok := m.items[id]
	if !ok {
		return models.Banner{}, apperr.NotFound("Banner not found")
	}
	return b, nil
}

func (m *MockBannerStore) Create(_ context.Context, b models.Banner) (models.Banner, error) {
	b.ID = int64(len(m.created) + 1)
	m.created = append(m.created, b)
	return b, nil
}

func (m *MockBannerStore) Update(ctx context.Context, id int64, set payload.UpdateSet) (models.Banner, error) {
	m.lastSet = set
	return m.Get(ctx, id)
}

func (m *MockBannerStore) Delete(ctx context.Context, id int64) (models.Banner, error) {
	b, err := m.Get(ctx, id)
	if err != nil {
		return models.Banner{}, err
	}
	delete(m.items, id)
	return b, nil
}

type MockSettingsStore struct {
	current models.SiteSettings
	lastSet payload.UpdateSet
}

func (m *MockSettingsStore) Get(context.Context) (models.SiteSettings, error) {
	return m.current, nil
}

func (m *MockSettingsStore) Update(_ context.Context, set payload.UpdateSet) (models.SiteSettings, error) {
	m.lastSet = set
	return m.current, nil
}

type MockAdminStore struct {
	admin models.Admin
}

func (m *MockAdminStore) GetByEmail(_ context.Context, email string) (models.Admin, error) {
	if email != m.admin.Email {
		return models.Admin{}, apperr.NotFound("Admin not found")
	}
	return m.admin, nil
}

func (m *MockAdminStore) Get(_ context.Context, id int64) (models.Admin, error) {
	if id != m.admin.ID {
		return models.Admin{}, apperr.NotFound("Admin not found")
	}
	return m.admin, nil
}

type MockStatsStore struct {
	stats models.CatalogStats
	err   error
}

func (m MockStatsStore) Stats(context.Context) (models.CatalogStats, error) {
	return m.stats, m.err
}

type MockTokenIssuer struct{}

func (MockTokenIssuer) GenerateToken(adminID int64) (string, time.Time, error) {
	return fmt.Sprintf("token-%d", adminID), time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC), nil
}

type MockPinger struct {
	err error
}

func (m MockPinger) Ping(context.Context) error { return m.err }

// MockFileStore names files "<dir>/<prefix>-<filename>" and records removals.
type MockFileStore struct {
	saved   []string
	removed []string
}

func (m *MockFileStore) Save(_ context.Context, dst payload.Destination, u payload.Upload) (string, error) {
	prefix := dst.Prefix
	if prefix == "" {
		prefix = u.Field
	}
	path := fmt.Sprintf("/uploads/%s/%s-%s", dst.Dir, prefix, u.Filename)
	m.saved = append(m.saved, path)
	return path, nil
}

func (m *MockFileStore) Remove(_ context.Context, path string) error {
	m.removed = append(m.removed, path)
	return nil
}

// MockCache keeps JSON values in memory.
type MockCache struct {
	values  map[string][]byte
	deleted []string
}

func (m *MockCache) Get(_ context.Context, key string, dst any) (bool, error) {
	b, ok := m.values[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, dst)
}

func (m *MockCache) Set(_ context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.values[key] = b
	return nil
}

func (m *MockCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
		m.deleted = append(m.deleted, k)
	}
	return nil
}

func (m *MockCache) Incr(context.Context, string, time.Duration) (int64, error) {
	return 0, errors.New("not supported")
}

func (m *MockCache) Count(context.Context, string) (int64, error) { return 0, nil }

// --- Test harness ---

type testEnv struct {
	h          *Handlers
	router     *gin.Engine
	categories *MockCategoryStore
	products   *MockProductStore
	banners    *MockBannerStore
	settings   *MockSettingsStore
	admins     *MockAdminStore
	files      *MockFileStore
	cache      *MockCache
}

func newTestEnv() *testEnv {
	env := &testEnv{
		categories: &MockCategoryStore{items: map[int64]models.Category{}},
		products:   &MockProductStore{items: map[int64]models.Product{}},
		banners:    &MockBannerStore{items: map[int64]models.Banner{}},
		settings:   &MockSettingsStore{current: models.DefaultSiteSettings()},
		admins:     &MockAdminStore{},
		files:      &MockFileStore{},
		cache:      &MockCache{values: map[string][]byte{}},
	}
	env.h = &Handlers{
		Categories: env.categories,
		Products:   env.products,
		Banners:    env.banners,
		Settings:   env.settings,
		Admins:     env.admins,
		Stats:      MockStatsStore{},
		Tokens:     MockTokenIssuer{},
		DB:         MockPinger{},
		Files:      env.files,
		Cache:      env.cache,
		Log:        zap.NewNop(),
	}
	env.router = env.routes()
	return env
}

// routes mirrors the public API without the auth gate.
func (env *testEnv) routes() *gin.Engine {
	h := env.h
	r := gin.New()
	r.GET("/api/health", h.Health)
	r.POST("/api/admin/login", h.Login)
	r.GET("/api/admin/stats", h.GetDashboardStats)
	r.GET("/api/products", h.ListProducts)
	r.GET("/api/products/:id", h.GetProduct)
	r.POST("/api/products", h.CreateProduct)
	r.PUT("/api/products/:id", h.UpdateProduct)
	r.DELETE("/api/products/:id", h.DeleteProduct)
	r.GET("/api/categories", h.ListCategories)
	r.GET("/api/categories/:id", h.GetCategory)
	r.POST("/api/categories", h.CreateCategory)
	r.PUT("/api/categories/:id", h.UpdateCategory)
	r.DELETE("/api/categories/:id", h.DeleteCategory)
	r.GET("/api/banners", h.ListBanners)
	r.POST("/api/banners", h.CreateBanner)
	r.PUT("/api/banners/:id", h.UpdateBanner)
	r.DELETE("/api/banners/:id", h.DeleteBanner)
	r.GET("/api/settings", h.GetSettings)
	r.PUT("/api/settings", h.UpdateSettings)
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (env *testEnv) do(t *testing.T, req *http.Request) (int, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	var body envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec.Code, body
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

type filePart struct {
	field    string
	filename string
	data     []byte
}

func multipartRequest(t *testing.T, method, target string, fields [][2]string, files []filePart) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, f := range fields {
		require.NoError(t, w.WriteField(f[0], f[1]))
	}
	for _, f := range files {
		part, err := w.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}
