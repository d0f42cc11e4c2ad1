package repository

import (
	"go-stockroom/internal/model"

	"gorm.io/gorm"
)

type SupplyRepository interface {
	Create(supply *model.Supply) error
	FindAll(sortBy string) ([]model.Supply, error)
	FindByID(id uint) (*model.Supply, error)
	FindItems(supplyID uint) ([]model.SupplyItem, error)
	AddItem(item *model.SupplyItem) error
	SetStatus(tx *gorm.DB, id uint, status model.SupplyStatus) error
}

type supplyRepo struct {
	db *gorm.DB
}

func NewSupplyRepo(db *gorm.DB) SupplyRepository {
	return &supplyRepo{db}
}

var supplySortColumns = map[string]string{
	"id":        "supplies.id",
	"date":      "supplies.date",
	"date_desc": "supplies.date DESC",
	"status":    "supplies.status",
	"supplier":  "suppliers.name",
}

func (r *supplyRepo) Create(supply *model.Supply) error {
	return r.db.Create(supply).Error
}

func (r *supplyRepo) FindAll(sortBy string) ([]model.Supply, error) {
	var supplies []model.Supply
	q := r.db.Model(&model.Supply{}).
		Joins("LEFT JOIN suppliers ON suppliers.id = supplies.supplier_id").
		Preload("Supplier")
	if col, ok := supplySortColumns[sortBy]; ok {
		q = q.Order(col)
	}
	err := q.Find(&supplies).Error
	return supplies, err
}

func (r *supplyRepo) FindByID(id uint) (*model.Supply, error) {
	var supply model.Supply
	err := r.db.Preload("Supplier").Preload("Items.Product").
		First(&supply, "id = ?", id).Error
	return &supply, err
}

func (r *supplyRepo) FindItems(supplyID uint) ([]model.SupplyItem, error) {
	var items []model.SupplyItem
	err := r.db.Preload("Product").
		Where("supply_id = ?", supplyID).
		Find(&items).Error
	return items, err
}

func (r *supplyRepo) AddItem(item *model.SupplyItem) error {
	return r.db.Create(item).Error
}

func (r *supplyRepo) SetStatus(tx *gorm.DB, id uint, status model.SupplyStatus) error {
	return tx.Model(&model.Supply{}).
		Where("id = ?", id).
		Update("status", status).Error
}
