package service

import (
	"testing"

	"go-stockroom/internal/model"
	"go-stockroom/internal/repository"
	"go-stockroom/internal/ws"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db        *gorm.DB
	catalog   CatalogService
	inventory InventoryService
	supply    SupplyService
	report    ReportService
}

// newTestEnv wires the full service stack against an in-memory store with
// the same driver and foreign-key pragma as production.
func newTestEnv(t *testing.T) *testEnv {
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

	categoryRepo := repository.NewCategoryRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	productRepo := repository.NewProductRepo(db)
	inventoryRepo := repository.NewInventoryRepo(db)
	supplyRepo := repository.NewSupplyRepo(db)
	historyRepo := repository.NewStockHistoryRepo(db)

	return &testEnv{
		db:        db,
		catalog:   NewCatalogService(productRepo, categoryRepo, supplierRepo, hub),
		inventory: NewInventoryService(productRepo, inventoryRepo, historyRepo, db, hub),
		supply:    NewSupplyService(supplyRepo, supplierRepo, productRepo, inventoryRepo, historyRepo, db, hub),
		report:    NewReportService(productRepo, inventoryRepo, supplyRepo, historyRepo),
	}
}

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func (e *testEnv) mustCategory(t *testing.T, name string) *model.Category {
	t.Helper()
	category, err := e.catalog.CreateCategory(&CategoryInput{Name: name})
	require.NoError(t, err)
	return category
}

func (e *testEnv) mustSupplier(t *testing.T, name string) *model.Supplier {
	t.Helper()
	supplier, err := e.catalog.CreateSupplier(&SupplierInput{Name: name})
	require.NoError(t, err)
	return supplier
}

func (e *testEnv) mustProduct(t *testing.T, name, sku, category string, minStock int) *model.Product {
	t.Helper()
	product, err := e.catalog.CreateProduct(&ProductInput{
		Name:          name,
		SKU:           sku,
		Category:      category,
		PurchasePrice: fptr(10),
		RetailPrice:   fptr(15),
		MinStock:      iptr(minStock),
	})
	require.NoError(t, err)
	return product
}

func (e *testEnv) mustAdjust(t *testing.T, productID uint, quantity int, reason string) {
	t.Helper()
	_, err := e.inventory.AdjustStock(productID, &AdjustStockInput{
		NewQuantity: iptr(quantity),
		Reason:      reason,
	})
	require.NoError(t, err)
}

func (e *testEnv) quantityOf(t *testing.T, productID uint) *int {
	t.Helper()
	rows, err := e.inventory.ListInventory("")
	require.NoError(t, err)
	for _, row := range rows {
		if row.ProductID == productID {
			return row.Quantity
		}
	}
	t.Fatalf("product %d not in inventory listing", productID)
	return nil
}
