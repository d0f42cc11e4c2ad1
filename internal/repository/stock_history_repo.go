package repository

import (
	"go-stockroom/internal/model"

	"gorm.io/gorm"
)

type StockHistoryRepository interface {
	Append(tx *gorm.DB, entry *model.StockHistoryEntry) error
	FindAll() ([]model.StockHistoryEntry, error)
	FindByProduct(productID uint) ([]model.StockHistoryEntry, error)
}

type stockHistoryRepo struct {
	db *gorm.DB
}

func NewStockHistoryRepo(db *gorm.DB) StockHistoryRepository {
	return &stockHistoryRepo{db}
}

// Append runs on the caller's tx: a history row must land in the same
// transaction as the quantity change it records.
func (r *stockHistoryRepo) Append(tx *gorm.DB, entry *model.StockHistoryEntry) error {
	return tx.Create(entry).Error
}

func (r *stockHistoryRepo) FindAll() ([]model.StockHistoryEntry, error) {
	var entries []model.StockHistoryEntry
	err := r.db.Preload("Product").Order("created_at DESC, id DESC").Find(&entries).Error
	return entries, err
}

func (r *stockHistoryRepo) FindByProduct(productID uint) ([]model.StockHistoryEntry, error) {
	var entries []model.StockHistoryEntry
	err := r.db.Preload("Product").
		Where("product_id = ?", productID).
		Order("created_at DESC, id DESC").
		Find(&entries).Error
	return entries, err
}
