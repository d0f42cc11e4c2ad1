package service

import (
	"errors"
	"fmt"
	"strconv"

	"go-stockroom/internal/model"
	"go-stockroom/internal/repository"
	"go-stockroom/internal/ws"

	"gorm.io/gorm"
)

// AdjustStockInput is the manual-correction form: an absolute new quantity
// and a mandatory reason for the ledger.
type AdjustStockInput struct {
	NewQuantity *int   `json:"new_quantity" validate:"required,gte=0"`
	Reason      string `json:"reason" validate:"required"`
}

type InventoryService interface {
	ListInventory(sortBy string) ([]repository.InventoryRow, error)
	AdjustStock(productID uint, input *AdjustStockInput) (*model.StockHistoryEntry, error)
	ListStockHistory() ([]model.StockHistoryEntry, error)
	ProductHistory(productID uint) ([]model.StockHistoryEntry, error)
}

type inventoryService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	historyRepo   repository.StockHistoryRepository
	db            *gorm.DB
	wsHub         *ws.Hub
}

func NewInventoryService(
	pRepo repository.ProductRepository,
	iRepo repository.InventoryRepository,
	hRepo repository.StockHistoryRepository,
	db *gorm.DB,
	hub *ws.Hub,
) InventoryService {
	return &inventoryService{
		productRepo:   pRepo,
		inventoryRepo: iRepo,
		historyRepo:   hRepo,
		db:            db,
		wsHub:         hub,
	}
}

func (s *inventoryService) ListInventory(sortBy string) ([]repository.InventoryRow, error) {
	rows, err := s.inventoryRepo.ListRows(sortBy)
	if err != nil {
		return nil, classifyStoreErr(err, "inventory", "")
	}
	return rows, nil
}

// AdjustStock sets the product's quantity and appends the delta to the
// ledger in one transaction. The previous quantity is re-read inside the
// transaction, not taken from whatever the caller last displayed, so the
// recorded delta is always against the stored value.
func (s *inventoryService) AdjustStock(productID uint, input *AdjustStockInput) (*model.StockHistoryEntry, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	var entry *model.StockHistoryEntry
	var product *model.Product
	var oldQuantity int

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var p model.Product
		if err := tx.First(&p, "id = ?", productID).Error; err != nil {
			return err
		}
		product = &p

		// Missing inventory row counts as zero; the upsert below creates it.
		oldQuantity = 0
		inv, err := s.inventoryRepo.FindByProduct(tx, productID)
		switch {
		case err == nil:
			oldQuantity = inv.Quantity
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		newQuantity := *input.NewQuantity
		if err := s.inventoryRepo.SetQuantity(tx, productID, newQuantity); err != nil {
			return err
		}

		entry = &model.StockHistoryEntry{
			ProductID:      productID,
			QuantityChange: newQuantity - oldQuantity,
			ChangeReason:   input.Reason,
		}
		return s.historyRepo.Append(tx, entry)
	})
	if err != nil {
		return nil, classifyStoreErr(err, "product", strconv.FormatUint(uint64(productID), 10))
	}

	newQuantity := *input.NewQuantity
	go s.wsHub.Notify(ws.StockEvent{
		Type:   "stock_update",
		Action: "stock_adjusted",
		Payload: map[string]interface{}{
			"product_id":   productID,
			"sku":          product.SKU,
			"old_quantity": oldQuantity,
			"new_quantity": newQuantity,
			"low_stock":    newQuantity < product.MinStock,
		},
		Message: fmt.Sprintf("Stock of '%s' set to %d (%s)", product.Name, newQuantity, input.Reason),
	})

	return entry, nil
}

func (s *inventoryService) ListStockHistory() ([]model.StockHistoryEntry, error) {
	entries, err := s.historyRepo.FindAll()
	if err != nil {
		return nil, classifyStoreErr(err, "stock history", "")
	}
	return entries, nil
}

func (s *inventoryService) ProductHistory(productID uint) ([]model.StockHistoryEntry, error) {
	if _, err := s.productRepo.FindByID(productID); err != nil {
		return nil, classifyStoreErr(err, "product", strconv.FormatUint(uint64(productID), 10))
	}
	entries, err := s.historyRepo.FindByProduct(productID)
	if err != nil {
		return nil, classifyStoreErr(err, "stock history", "")
	}
	return entries, nil
}
