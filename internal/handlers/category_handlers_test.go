package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/01moynul/baaje-storefront/internal/apperr"
	"github.com/01moynul/baaje-storefront/internal/cache"
	"github.com/01moynul/baaje-storefront/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestListCategoriesIsCachedUntilWrite(t *testing.T) {
	// Arrange
	env := newTestEnv()
	env.categories.items[1] = models.Category{ID: 1, Name: "Phones", Slug: "phones", IsActive: true}
	list := func() {
		status, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(body.Data), `"slug":"phones"`)
	}

	// Act & Assert
	list()
	list()
	assert.Equal(t, 1, env.categories.listCalls)

	status, _ := env.do(t, jsonRequest(http.MethodPost, "/api/categories", `{"name":"Audio"}`))
	require.Equal(t, http.StatusCreated, status)
	assert.Contains(t, env.cache.deleted, cache.KeyCategories)

	list()
	assert.Equal(t, 2, env.categories.listCalls)
}

func TestCreateCategory(t *testing.T) {
	testCases := []struct {
		name           string
		fields         [][2]string
		files          []filePart
		createErr      error
		expectedStatus int
		expectedMsg    string
		checkResponse  func(t *testing.T, env *testEnv)
	}{
		{
			name:           "with image",
			fields:         [][2]string{{"name", "Smart Watches"}, {"order", "5"}},
			files:          []filePart{{field: "image", filename: "watch.png", data: pngBytes}},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "Category created successfully",
			checkResponse: func(t *testing.T, env *testEnv) {
				require.Len(t, env.categories.created, 1)
				c := env.categories.created[0]
				assert.Equal(t, "smart-watches", c.Slug)
				assert.Equal(t, 5, c.Order)
				assert.True(t, c.IsActive)
				require.NotNil(t, c.Image)
				assert.Equal(t, "/uploads/categories/category-watch.png", *c.Image)
			},
		},
		{
			name:           "without image",
			fields:         [][2]string{{"name", "Cameras"}, {"isActive", "false"}},
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, env *testEnv) {
				require.Len(t, env.categories.created, 1)
				assert.Nil(t, env.categories.created[0].Image)
				assert.False(t, env.categories.created[0].IsActive)
			},
		},
		{
			name:           "name without letters or digits",
			fields:         [][2]string{{"name", "!!!"}},
			files:          []filePart{{field: "image", filename: "x.png", data: pngBytes}},
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, env *testEnv) {
				assert.Empty(t, env.files.saved)
			},
		},
		{
			name:           "image too large",
			fields:         [][2]string{{"name", "Cameras"}},
			files:          []filePart{{field: "image", filename: "big.png", data: append(append([]byte{}, pngBytes...), make([]byte, 2<<20)...)}},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "image must be at most 2 MB",
		},
		{
			name:           "duplicate slug",
			fields:         [][2]string{{"name", "Cameras"}},
			files:          []filePart{{field: "image", filename: "cam.png", data: pngBytes}},
			createErr:      apperr.Conflict("Category already exists", nil),
			expectedStatus: http.StatusConflict,
			expectedMsg:    "Category already exists",
			checkResponse: func(t *testing.T, env *testEnv) {
				assert.Equal(t, []string{"/uploads/categories/category-cam.png"}, env.files.removed)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			env := newTestEnv()
			env.categories.createErr = tc.createErr
			req := multipartRequest(t, http.MethodPost, "/api/categories", tc.fields, tc.files)

			// Act
			status, body := env.do(t, req)

			// Assert
			assert.Equal(t, tc.expectedStatus, status)
			if tc.expectedMsg != "" {
				assert.Equal(t, tc.expectedMsg, body.Message)
			}
			if tc.checkResponse != nil {
				tc.checkResponse(t, env)
			}
		})
	}
}

func TestUpdateCategoryReplacesImage(t *testing.T) {
	// Arrange
	env := newTestEnv()
	env.categories.items[3] = models.Category{ID: 3, Name: "Phones", Slug: "phones", Image: strPtr("/uploads/categories/old.png")}
	req := multipartRequest(t, http.MethodPut, "/api/categories/3",
		[][2]string{{"name", "Phones"}, {"description", "Smartphones"}},
		[]filePart{{field: "image", filename: "new.png", data: pngBytes}})

	// Act
	status, body := env.do(t, req)

	// Assert
	require.Equal(t, http.StatusOK, status, body.Message)
	assert.Equal(t, "Category updated successfully", body.Message)
	assert.Equal(t, []string{"name", "description", "image"}, env.categories.lastSet.Fields())
	image, _ := env.categories.lastSet.Get("image")
	assert.Equal(t, "/uploads/categories/category-new.png", image)
	assert.Equal(t, []string{"/uploads/categories/old.png"}, env.files.removed)
}

func TestUpdateCategoryWithoutImageKeepsIt(t *testing.T) {
	env := newTestEnv()
	env.categories.items[3] = models.Category{ID: 3, Name: "Phones", Slug: "phones", Image: strPtr("/uploads/categories/old.png")}

	status, _ := env.do(t, jsonRequest(http.MethodPut, "/api/categories/3", `{"name":"","order":2}`))

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"order"}, env.categories.lastSet.Fields())
	assert.Empty(t, env.files.saved)
	assert.Empty(t, env.files.removed)
}

func TestDeleteCategory(t *testing.T) {
	t.Run("blocked by products", func(t *testing.T) {
		env := newTestEnv()
		env.categories.items[3] = models.Category{ID: 3, Name: "Phones"}
		env.categories.deleteErr = apperr.Conflict("Cannot delete category with existing products", nil)

		status, body := env.do(t, httptest.NewRequest(http.MethodDelete, "/api/categories/3", nil))

		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "Cannot delete category with existing products", body.Message)
		assert.Empty(t, env.files.removed)
	})

	t.Run("removes image", func(t *testing.T) {
		env := newTestEnv()
		env.categories.items[3] = models.Category{ID: 3, Name: "Phones", Image: strPtr("/uploads/categories/p.png")}

		status, body := env.do(t, httptest.NewRequest(http.MethodDelete, "/api/categories/3", nil))

		assert.Equal(t, http.StatusOK, status)
		assert.Equal(t, "Category deleted successfully", body.Message)
		assert.Equal(t, []string{"/uploads/categories/p.png"}, env.files.removed)
		assert.Contains(t, env.cache.deleted, cache.KeyCategories)
	})

	t.Run("missing", func(t *testing.T) {
		env := newTestEnv()

		status, body := env.do(t, httptest.NewRequest(http.MethodDelete, "/api/categories/3", nil))

		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "Category not found", body.Message)
	})
}
