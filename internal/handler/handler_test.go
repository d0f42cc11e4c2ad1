package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-stockroom/internal/model"
	"go-stockroom/internal/repository"
	"go-stockroom/internal/service"
	"go-stockroom/internal/ws"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&model.Category{},
		&model.Supplier{},
		&model.Product{},
		&model.Inventory{},
		&model.Supply{},
		&model.SupplyItem{},
		&model.StockHistoryEntry{},
	))

	hub := ws.NewHub()
	go hub.Run()

	catalog := service.NewCatalogService(
		repository.NewProductRepo(db),
		repository.NewCategoryRepo(db),
		repository.NewSupplierRepo(db),
		hub,
	)

	productHandler := NewProductHandler(catalog)
	categoryHandler := NewCategoryHandler(catalog)

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Get("/products", productHandler.GetProducts)
	api.Post("/products", productHandler.CreateProduct)
	api.Post("/categories", categoryHandler.CreateCategory)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestErrorTaxonomyStatusCodes(t *testing.T) {
	app := newTestApp(t)

	resp := postJSON(t, app, "/api/v1/categories", `{"name":"Drinks"}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// missing required fields: validation, 400
	resp = postJSON(t, app, "/api/v1/products", `{"sku":"GT-001","category":"Drinks"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// unknown category name: reference not found, 404
	resp = postJSON(t, app, "/api/v1/products",
		`{"name":"Green Tea","sku":"GT-001","category":"Nope","purchase_price":2.5,"retail_price":4,"min_stock":10}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = postJSON(t, app, "/api/v1/products",
		`{"name":"Green Tea","sku":"GT-001","category":"Drinks","purchase_price":2.5,"retail_price":4,"min_stock":10}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// duplicate SKU: constraint violation, 409
	resp = postJSON(t, app, "/api/v1/products",
		`{"name":"Black Tea","sku":"GT-001","category":"Drinks","purchase_price":2,"retail_price":3,"min_stock":5}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
