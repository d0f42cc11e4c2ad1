package repository

import (
	"go-stockroom/internal/model"

	"gorm.io/gorm"
)

// ProductFilter narrows FindAll. Empty fields mean "no filter"; non-empty
// name/category are substring matches on product name and category name.
type ProductFilter struct {
	Name     string
	Category string
	SortBy   string
}

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll(filter ProductFilter) ([]model.Product, error)
	FindByID(id uint) (*model.Product, error)
	FindBySKU(sku string) (*model.Product, error)
	FindByName(name string) (*model.Product, error)
	Update(product *model.Product) error
	Delete(id uint) error
	CountAll() (int64, error)
	CountBelowMinStock() (int64, error)
	StockValuation() (float64, error)
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

var productSortColumns = map[string]string{
	"id":             "products.id",
	"name":           "products.name",
	"sku":            "products.sku",
	"category":       "categories.name",
	"purchase_price": "products.purchase_price",
	"retail_price":   "products.retail_price",
	"min_stock":      "products.min_stock",
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll(filter ProductFilter) ([]model.Product, error) {
	var products []model.Product

	q := r.db.Model(&model.Product{}).
		Joins("LEFT JOIN categories ON categories.id = products.category_id").
		Preload("Category").
		Preload("Supplier").
		Preload("Inventory")

	if filter.Name != "" {
		q = q.Where("products.name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Category != "" {
		q = q.Where("categories.name LIKE ?", "%"+filter.Category+"%")
	}
	if col, ok := productSortColumns[filter.SortBy]; ok {
		q = q.Order(col)
	}

	err := q.Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uint) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").Preload("Supplier").Preload("Inventory").
		First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindBySKU(sku string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "sku = ?", sku).Error
	return &product, err
}

func (r *productRepo) FindByName(name string) (*model.Product, error) {
	var product model.Product
	err := r.db.First(&product, "name = ?", name).Error
	return &product, err
}

func (r *productRepo) Update(product *model.Product) error {
	return r.db.Save(product).Error
}

func (r *productRepo) Delete(id uint) error {
	return r.db.Delete(&model.Product{}, id).Error
}

func (r *productRepo) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).Count(&count).Error
	return count, err
}

// CountBelowMinStock treats a missing inventory row as quantity zero, same
// rule as the stock report.
func (r *productRepo) CountBelowMinStock() (int64, error) {
	var count int64
	err := r.db.Model(&model.Product{}).
		Joins("LEFT JOIN inventory ON inventory.product_id = products.id").
		Where("COALESCE(inventory.quantity, 0) < products.min_stock").
		Count(&count).Error
	return count, err
}

func (r *productRepo) StockValuation() (float64, error) {
	var total float64
	err := r.db.Model(&model.Product{}).
		Joins("LEFT JOIN inventory ON inventory.product_id = products.id").
		Select("COALESCE(SUM(inventory.quantity * products.purchase_price), 0)").
		Scan(&total).Error
	return total, err
}
