package repository

import (
	"errors"
	"time"

	"go-stockroom/internal/model"

	"gorm.io/gorm"
)

// InventoryRow is one line of the stock overview: every product, left-joined
// with its quantity. Quantity stays nil when no inventory row exists yet —
// the caller decides whether nil means zero.
type InventoryRow struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Quantity  *int   `json:"quantity"`
	MinStock  int    `json:"min_stock"`
}

type InventoryRepository interface {
	ListRows(sortBy string) ([]InventoryRow, error)
	FindByProduct(tx *gorm.DB, productID uint) (*model.Inventory, error)
	SetQuantity(tx *gorm.DB, productID uint, quantity int) error
}

type inventoryRepo struct {
	db *gorm.DB
}

func NewInventoryRepo(db *gorm.DB) InventoryRepository {
	return &inventoryRepo{db}
}

var inventorySortColumns = map[string]string{
	"id":        "products.id",
	"name":      "products.name",
	"sku":       "products.sku",
	"quantity":  "inventory.quantity",
	"min_stock": "products.min_stock",
}

func (r *inventoryRepo) ListRows(sortBy string) ([]InventoryRow, error) {
	q := r.db.Model(&model.Product{}).
		Select("products.id, products.name, products.sku, inventory.quantity, products.min_stock").
		Joins("LEFT JOIN inventory ON inventory.product_id = products.id")
	if col, ok := inventorySortColumns[sortBy]; ok {
		q = q.Order(col)
	}

	rows, err := q.Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []InventoryRow
	for rows.Next() {
		var row InventoryRow
		if err := rows.Scan(&row.ProductID, &row.Name, &row.SKU, &row.Quantity, &row.MinStock); err != nil {
			return nil, err
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// FindByProduct runs on the given tx so callers can read-then-write inside
// one transaction.
func (r *inventoryRepo) FindByProduct(tx *gorm.DB, productID uint) (*model.Inventory, error) {
	var inv model.Inventory
	err := tx.First(&inv, "product_id = ?", productID).Error
	return &inv, err
}

// SetQuantity upserts the product's inventory row and stamps last_updated.
// The first adjustment or supply receipt creates the row.
func (r *inventoryRepo) SetQuantity(tx *gorm.DB, productID uint, quantity int) error {
	var inv model.Inventory
	err := tx.First(&inv, "product_id = ?", productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			inv = model.Inventory{
				ProductID:   productID,
				Quantity:    quantity,
				LastUpdated: time.Now(),
			}
			return tx.Create(&inv).Error
		}
		return err
	}

	return tx.Model(&inv).Updates(map[string]interface{}{
		"quantity":     quantity,
		"last_updated": time.Now(),
	}).Error
}
