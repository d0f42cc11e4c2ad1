package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"go-stockroom/internal/model"
	"go-stockroom/internal/repository"
	"go-stockroom/internal/ws"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SupplyInput struct {
	Supplier string `json:"supplier" validate:"required"`
	Date     string `json:"date" validate:"required"` // YYYY-MM-DD
	Status   string `json:"status" validate:"required,oneof=pending in_transit delivered cancelled"`
}

type SupplyItemInput struct {
	Product  string `json:"product" validate:"required"`
	Quantity *int   `json:"quantity" validate:"required,gt=0"`
}

// CompleteResult distinguishes "applied" from "was already delivered" —
// the latter is informational, not an error.
type CompleteResult struct {
	AlreadyDelivered bool `json:"already_delivered"`
	ItemsApplied     int  `json:"items_applied"`
}

type SupplyService interface {
	ListSupplies(sortBy string) ([]model.Supply, error)
	CreateSupply(input *SupplyInput) (*model.Supply, error)
	ListSupplyItems(supplyID uint) ([]model.SupplyItem, error)
	AddSupplyItem(supplyID uint, input *SupplyItemInput) (*model.SupplyItem, error)
	CompleteSupply(supplyID uint) (*CompleteResult, error)
}

type supplyService struct {
	supplyRepo    repository.SupplyRepository
	supplierRepo  repository.SupplierRepository
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	historyRepo   repository.StockHistoryRepository
	db            *gorm.DB
	wsHub         *ws.Hub
}

func NewSupplyService(
	sRepo repository.SupplyRepository,
	supRepo repository.SupplierRepository,
	pRepo repository.ProductRepository,
	iRepo repository.InventoryRepository,
	hRepo repository.StockHistoryRepository,
	db *gorm.DB,
	hub *ws.Hub,
) SupplyService {
	return &supplyService{
		supplyRepo:    sRepo,
		supplierRepo:  supRepo,
		productRepo:   pRepo,
		inventoryRepo: iRepo,
		historyRepo:   hRepo,
		db:            db,
		wsHub:         hub,
	}
}

func (s *supplyService) ListSupplies(sortBy string) ([]model.Supply, error) {
	supplies, err := s.supplyRepo.FindAll(sortBy)
	if err != nil {
		return nil, classifyStoreErr(err, "supply", "")
	}
	return supplies, nil
}

func (s *supplyService) CreateSupply(input *SupplyInput) (*model.Supply, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", input.Date)
	if err != nil {
		return nil, &ValidationError{Field: "SupplyInput.Date", Tag: "datetime"}
	}

	supplier, err := s.supplierRepo.FindByName(input.Supplier)
	if err != nil {
		return nil, classifyStoreErr(err, "supplier", input.Supplier)
	}

	supply := &model.Supply{
		Reference:  uuid.New().String(),
		SupplierID: supplier.ID,
		Date:       date,
		Status:     model.SupplyStatus(input.Status),
	}
	if err := s.supplyRepo.Create(supply); err != nil {
		return nil, classifyStoreErr(err, "supply", input.Supplier)
	}
	supply.Supplier = supplier
	return supply, nil
}

func (s *supplyService) ListSupplyItems(supplyID uint) ([]model.SupplyItem, error) {
	if _, err := s.supplyRepo.FindByID(supplyID); err != nil {
		return nil, classifyStoreErr(err, "supply", strconv.FormatUint(uint64(supplyID), 10))
	}
	items, err := s.supplyRepo.FindItems(supplyID)
	if err != nil {
		return nil, classifyStoreErr(err, "supply", strconv.FormatUint(uint64(supplyID), 10))
	}
	return items, nil
}

func (s *supplyService) AddSupplyItem(supplyID uint, input *SupplyItemInput) (*model.SupplyItem, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	if _, err := s.supplyRepo.FindByID(supplyID); err != nil {
		return nil, classifyStoreErr(err, "supply", strconv.FormatUint(uint64(supplyID), 10))
	}

	product, err := s.productRepo.FindByName(input.Product)
	if err != nil {
		return nil, classifyStoreErr(err, "product", input.Product)
	}

	item := &model.SupplyItem{
		SupplyID:  supplyID,
		ProductID: product.ID,
		Quantity:  *input.Quantity,
	}
	if err := s.supplyRepo.AddItem(item); err != nil {
		return nil, classifyStoreErr(err, "supply item", input.Product)
	}
	item.Product = product
	return item, nil
}

// CompleteSupply applies every line item to inventory, writes one ledger
// entry per item and marks the supply delivered — all inside a single
// transaction, so a failure midway leaves nothing applied. Re-completing a
// delivered supply changes nothing.
func (s *supplyService) CompleteSupply(supplyID uint) (*CompleteResult, error) {
	supply, err := s.supplyRepo.FindByID(supplyID)
	if err != nil {
		return nil, classifyStoreErr(err, "supply", strconv.FormatUint(uint64(supplyID), 10))
	}

	if supply.Status == model.SupplyDelivered {
		return &CompleteResult{AlreadyDelivered: true}, nil
	}

	reason := fmt.Sprintf("Supply %s delivered", supply.Reference)
	applied := 0

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range supply.Items {
			current := 0
			inv, err := s.inventoryRepo.FindByProduct(tx, item.ProductID)
			switch {
			case err == nil:
				current = inv.Quantity
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
			if err := s.inventoryRepo.SetQuantity(tx, item.ProductID, current+item.Quantity); err != nil {
				return err
			}

			entry := &model.StockHistoryEntry{
				ProductID:      item.ProductID,
				QuantityChange: item.Quantity,
				ChangeReason:   reason,
			}
			if err := s.historyRepo.Append(tx, entry); err != nil {
				return err
			}
			applied++
		}
		return s.supplyRepo.SetStatus(tx, supplyID, model.SupplyDelivered)
	})
	if err != nil {
		return nil, classifyStoreErr(err, "supply", strconv.FormatUint(uint64(supplyID), 10))
	}

	go s.wsHub.Notify(ws.StockEvent{
		Type:   "stock_update",
		Action: "supply_completed",
		Payload: map[string]interface{}{
			"supply_id": supplyID,
			"reference": supply.Reference,
			"items":     applied,
		},
		Message: fmt.Sprintf("Supply %s delivered, %d item(s) applied", supply.Reference, applied),
	})

	return &CompleteResult{ItemsApplied: applied}, nil
}
