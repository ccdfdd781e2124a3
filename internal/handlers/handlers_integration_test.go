package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"prodcats/internal/apperrors"
	"prodcats/internal/handlers"
	"prodcats/internal/models"
	"prodcats/internal/repositories"
	"prodcats/internal/services"
)

// setupApp builds a Fiber app backed by a per-test in-memory SQLite database
// with the full handler/service/repository stack and a seeded catalog.
func setupApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Category{}, &models.Product{}))

	productRepo := repositories.NewGORMProductRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)

	productService := services.NewProductService(productRepo, categoryRepo, nil)
	categoryService := services.NewCategoryService(categoryRepo, nil)

	app := fiber.New(fiber.Config{
		ErrorHandler: apperrors.ErrorHandler,
	})
	api := app.Group("/api")
	handlers.NewProductHandler(productService).RegisterRoutes(api)
	handlers.NewCategoryHandler(categoryService).RegisterRoutes(api)

	seedTestCatalog(t, db)
	return app, db
}

// seedTestCatalog inserts two categories (one inactive), three active
// products, and one soft-deleted product.
func seedTestCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()

	electronics := models.Category{Name: "Electronics", Description: "Devices", IsActive: true}
	toys := models.Category{Name: "Toys", Description: "Discontinued", IsActive: false}
	require.NoError(t, db.Create(&electronics).Error)
	require.NoError(t, db.Create(&toys).Error)

	products := []models.Product{
		{Name: "Wireless Headphones", Description: "Bluetooth headphones with noise cancellation", Price: 99.99, CategoryID: electronics.ID, StockQuantity: 50, IsActive: true},
		{Name: "Wireless Mouse", Description: "Ergonomic mouse", Price: 25.00, CategoryID: electronics.ID, StockQuantity: 0, IsActive: true},
		{Name: "Headphones Stand", Description: "Aluminium stand for wireless headphones", Price: 19.50, CategoryID: electronics.ID, StockQuantity: 10, IsActive: true},
		{Name: "Old Receiver", Description: "Discontinued receiver", Price: 49.99, CategoryID: electronics.ID, StockQuantity: 3, IsActive: false},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

type errorBody struct {
	Message string              `json:"message"`
	Details string              `json:"details"`
	Errors  map[string][]string `json:"errors"`
}

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestGetProducts_ListsOnlyActiveWithCategoryName(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var products []models.ProductView
	decodeBody(t, resp, &products)
	require.Len(t, products, 3)
	for _, p := range products {
		assert.True(t, p.IsActive)
		assert.Equal(t, "Electronics", p.CategoryName)
	}
}

func TestSearchProducts_Envelope(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/products/search?searchTerm=wireless+headphones&sortBy=price&sortOrder=desc&pageSize=1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.SearchProductsResult
	decodeBody(t, resp, &result)
	assert.Equal(t, int64(2), result.TotalCount)
	assert.Equal(t, 1, result.PageNumber)
	assert.Equal(t, 1, result.PageSize)
	assert.Equal(t, 2, result.TotalPages)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Wireless Headphones", result.Items[0].Name)
}

func TestSearchProducts_DefaultsWhenNoParams(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/products/search", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result models.SearchProductsResult
	decodeBody(t, resp, &result)
	assert.Equal(t, int64(3), result.TotalCount)
	assert.Equal(t, 1, result.PageNumber)
	assert.Equal(t, 10, result.PageSize)
	assert.Equal(t, 1, result.TotalPages)
	// Default ordering is ascending id.
	require.Len(t, result.Items, 3)
	assert.Equal(t, "Wireless Headphones", result.Items[0].Name)
	assert.Equal(t, "Headphones Stand", result.Items[2].Name)
}

func TestSearchProducts_InvalidParamsReturnFieldErrors(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/products/search?minPrice=cheap&inStock=maybe", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errorBody
	decodeBody(t, resp, &body)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Contains(t, body.Errors, "minPrice")
	assert.Contains(t, body.Errors, "inStock")
}

func TestGetProductByID(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/products/1", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var product models.ProductView
	decodeBody(t, resp, &product)
	assert.Equal(t, "Wireless Headphones", product.Name)
	assert.Equal(t, "Electronics", product.CategoryName)

	// The soft-deleted row and a missing id both read as 404.
	resp = doJSON(t, app, http.MethodGet, "/api/products/4", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = doJSON(t, app, http.MethodGet, "/api/products/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateProduct(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"name":          "Soundbar",
		"description":   "Compact soundbar",
		"price":         149.00,
		"categoryId":    1,
		"stockQuantity": 8,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var product models.ProductView
	location := resp.Header.Get("Location")
	decodeBody(t, resp, &product)
	assert.Equal(t, fmt.Sprintf("/api/products/%d", product.ID), location)
	assert.Equal(t, "Electronics", product.CategoryName)
	assert.True(t, product.IsActive)

	resp = doJSON(t, app, http.MethodGet, location, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateProduct_ValidationErrors(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]interface{}{
		"price":      -5.00,
		"categoryId": 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errorBody
	decodeBody(t, resp, &body)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Contains(t, body.Errors, "Name")
	assert.Contains(t, body.Errors, "Price")
}

func TestCreateProduct_InactiveCategory(t *testing.T) {
	app, _ := setupApp(t)

	// Category 2 exists but is inactive; 99 does not exist. Both are 400.
	for _, categoryID := range []int{2, 99} {
		resp := doJSON(t, app, http.MethodPost, "/api/products", map[string]interface{}{
			"name":       "Toy Car",
			"price":      5.00,
			"categoryId": categoryID,
		})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body errorBody
		decodeBody(t, resp, &body)
		assert.Equal(t, "Category not found or inactive.", body.Message)
	}
}

func TestUpdateProduct_PartialLeavesOtherFieldsUntouched(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPut, "/api/products/1", map[string]interface{}{
		"price": 10.00,
	})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/products/1", nil)
	var product models.ProductView
	decodeBody(t, resp, &product)
	assert.Equal(t, 10.00, product.Price)
	assert.Equal(t, "Wireless Headphones", product.Name)
	assert.Equal(t, "Bluetooth headphones with noise cancellation", product.Description)
	assert.Equal(t, uint(1), product.CategoryID)
	assert.Equal(t, 50, product.StockQuantity)
}

func TestUpdateProduct_NotFound(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPut, "/api/products/999", map[string]interface{}{"price": 10.00})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteProduct_SoftDelete(t *testing.T) {
	app, db := setupApp(t)

	resp := doJSON(t, app, http.MethodDelete, "/api/products/1", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	// Gone from every API read path.
	resp = doJSON(t, app, http.MethodGet, "/api/products/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/products", nil)
	var products []models.ProductView
	decodeBody(t, resp, &products)
	assert.Len(t, products, 2)

	resp = doJSON(t, app, http.MethodGet, "/api/products/search?searchTerm=headphones", nil)
	var result models.SearchProductsResult
	decodeBody(t, resp, &result)
	assert.Equal(t, int64(1), result.TotalCount)

	// But the row itself persists with the flag cleared.
	var row models.Product
	require.NoError(t, db.First(&row, 1).Error)
	assert.False(t, row.IsActive)

	// Deleting again is a 404: the row is no longer addressable.
	resp = doJSON(t, app, http.MethodDelete, "/api/products/1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCategories_ListAndGet(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/categories", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var categories []models.CategoryView
	decodeBody(t, resp, &categories)
	require.Len(t, categories, 1)
	assert.Equal(t, "Electronics", categories[0].Name)

	// An inactive category stays reachable by id.
	resp = doJSON(t, app, http.MethodGet, "/api/categories/2", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var category models.CategoryView
	decodeBody(t, resp, &category)
	assert.False(t, category.IsActive)

	resp = doJSON(t, app, http.MethodGet, "/api/categories/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateCategory(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/categories", map[string]interface{}{
		"name":        "Books",
		"description": "Reading materials",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var category models.CategoryView
	location := resp.Header.Get("Location")
	decodeBody(t, resp, &category)
	assert.Equal(t, fmt.Sprintf("/api/categories/%d", category.ID), location)
	assert.True(t, category.IsActive)

	resp = doJSON(t, app, http.MethodPost, "/api/categories", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body errorBody
	decodeBody(t, resp, &body)
	assert.Contains(t, body.Errors, "Name")
}

func TestUpdateCategory_ReactivatesThroughPatch(t *testing.T) {
	app, _ := setupApp(t)

	resp := doJSON(t, app, http.MethodPut, "/api/categories/2", map[string]interface{}{
		"isActive": true,
	})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, app, http.MethodGet, "/api/categories/2", nil)
	var category models.CategoryView
	decodeBody(t, resp, &category)
	assert.True(t, category.IsActive)
	assert.Equal(t, "Toys", category.Name)

	resp = doJSON(t, app, http.MethodPut, "/api/categories/999", map[string]interface{}{"name": "Ghost"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
