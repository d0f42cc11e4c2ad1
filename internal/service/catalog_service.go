package service

import (
	"fmt"
	"strconv"

	"go-stockroom/internal/model"
	"go-stockroom/internal/repository"
	"go-stockroom/internal/ws"
)

// ProductInput carries the catalog form fields. Category and supplier are
// human-entered names, resolved to ids here — the UI never sees raw ids for
// them. Prices and min stock are pointers so "missing" and "zero" stay
// distinct.
type ProductInput struct {
	Name          string   `json:"name" validate:"required"`
	SKU           string   `json:"sku" validate:"required"`
	Category      string   `json:"category" validate:"required"`
	Description   string   `json:"description"`
	Manufacturer  string   `json:"manufacturer"`
	Supplier      string   `json:"supplier"`
	PurchasePrice *float64 `json:"purchase_price" validate:"required,gte=0"`
	RetailPrice   *float64 `json:"retail_price" validate:"required,gte=0"`
	MinStock      *int     `json:"min_stock" validate:"required,gte=0"`
}

type CategoryInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

type SupplierInput struct {
	Name        string `json:"name" validate:"required"`
	ContactInfo string `json:"contact_info"`
}

type CatalogService interface {
	ListProducts(filter repository.ProductFilter) ([]model.Product, error)
	CreateProduct(input *ProductInput) (*model.Product, error)
	UpdateProduct(id uint, input *ProductInput) (*model.Product, error)
	DeleteProduct(id uint) error

	ListCategories(sortBy string) ([]model.Category, error)
	CreateCategory(input *CategoryInput) (*model.Category, error)
	UpdateCategory(id uint, input *CategoryInput) (*model.Category, error)
	DeleteCategory(id uint) error

	ListSuppliers(sortBy string) ([]model.Supplier, error)
	CreateSupplier(input *SupplierInput) (*model.Supplier, error)
	UpdateSupplier(id uint, input *SupplierInput) (*model.Supplier, error)
	DeleteSupplier(id uint) error
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	wsHub        *ws.Hub
}

func NewCatalogService(
	pRepo repository.ProductRepository,
	cRepo repository.CategoryRepository,
	sRepo repository.SupplierRepository,
	hub *ws.Hub,
) CatalogService {
	return &catalogService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		supplierRepo: sRepo,
		wsHub:        hub,
	}
}

// === Products ===

func (s *catalogService) ListProducts(filter repository.ProductFilter) ([]model.Product, error) {
	products, err := s.productRepo.FindAll(filter)
	if err != nil {
		return nil, classifyStoreErr(err, "product", "")
	}
	return products, nil
}

func (s *catalogService) CreateProduct(input *ProductInput) (*model.Product, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.FindByName(input.Category)
	if err != nil {
		return nil, classifyStoreErr(err, "category", input.Category)
	}

	// Duplicate SKU check before insert so the caller gets a clean message;
	// the unique index still backstops it.
	if existing, err := s.productRepo.FindBySKU(input.SKU); err == nil && existing.ID != 0 {
		return nil, &ConstraintViolation{Err: fmt.Errorf("SKU '%s' already exists", input.SKU)}
	}

	product := &model.Product{
		Name:          input.Name,
		SKU:           input.SKU,
		Description:   input.Description,
		Manufacturer:  input.Manufacturer,
		PurchasePrice: *input.PurchasePrice,
		RetailPrice:   *input.RetailPrice,
		MinStock:      *input.MinStock,
		CategoryID:    &category.ID,
	}

	if input.Supplier != "" {
		supplier, err := s.supplierRepo.FindByName(input.Supplier)
		if err != nil {
			return nil, classifyStoreErr(err, "supplier", input.Supplier)
		}
		product.SupplierID = &supplier.ID
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, classifyStoreErr(err, "product", input.SKU)
	}

	go s.wsHub.Notify(ws.StockEvent{
		Type:   "stock_update",
		Action: "product_created",
		Payload: map[string]interface{}{
			"id":   product.ID,
			"sku":  product.SKU,
			"name": product.Name,
		},
		Message: fmt.Sprintf("Product '%s' created", product.Name),
	})

	return product, nil
}

func (s *catalogService) UpdateProduct(id uint, input *ProductInput) (*model.Product, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, classifyStoreErr(err, "product", strconv.FormatUint(uint64(id), 10))
	}

	category, err := s.categoryRepo.FindByName(input.Category)
	if err != nil {
		return nil, classifyStoreErr(err, "category", input.Category)
	}

	existing.Name = input.Name
	existing.SKU = input.SKU
	existing.Description = input.Description
	existing.Manufacturer = input.Manufacturer
	existing.PurchasePrice = *input.PurchasePrice
	existing.RetailPrice = *input.RetailPrice
	existing.MinStock = *input.MinStock
	existing.CategoryID = &category.ID

	// drop preloaded associations so Save only touches the product row
	existing.Category = nil
	existing.Inventory = nil
	existing.History = nil

	if input.Supplier != "" {
		supplier, err := s.supplierRepo.FindByName(input.Supplier)
		if err != nil {
			return nil, classifyStoreErr(err, "supplier", input.Supplier)
		}
		existing.SupplierID = &supplier.ID
	} else {
		existing.SupplierID = nil
	}
	existing.Supplier = nil

	if err := s.productRepo.Update(existing); err != nil {
		return nil, classifyStoreErr(err, "product", input.SKU)
	}

	go s.wsHub.Notify(ws.StockEvent{
		Type:   "stock_update",
		Action: "product_updated",
		Payload: map[string]interface{}{
			"id":   existing.ID,
			"sku":  existing.SKU,
			"name": existing.Name,
		},
		Message: fmt.Sprintf("Product '%s' updated", existing.Name),
	})

	return existing, nil
}

func (s *catalogService) DeleteProduct(id uint) error {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return classifyStoreErr(err, "product", strconv.FormatUint(uint64(id), 10))
	}

	if err := s.productRepo.Delete(id); err != nil {
		return classifyStoreErr(err, "product", existing.SKU)
	}

	go s.wsHub.Notify(ws.StockEvent{
		Type:   "stock_update",
		Action: "product_deleted",
		Payload: map[string]interface{}{
			"id":  id,
			"sku": existing.SKU,
		},
		Message: fmt.Sprintf("Product '%s' deleted", existing.Name),
	})

	return nil
}

// === Categories ===

func (s *catalogService) ListCategories(sortBy string) ([]model.Category, error) {
	categories, err := s.categoryRepo.FindAll(sortBy)
	if err != nil {
		return nil, classifyStoreErr(err, "category", "")
	}
	return categories, nil
}

func (s *catalogService) CreateCategory(input *CategoryInput) (*model.Category, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	category := &model.Category{Name: input.Name, Description: input.Description}
	if err := s.categoryRepo.Create(category); err != nil {
		return nil, classifyStoreErr(err, "category", input.Name)
	}
	return category, nil
}

func (s *catalogService) UpdateCategory(id uint, input *CategoryInput) (*model.Category, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	existing, err := s.categoryRepo.FindByID(id)
	if err != nil {
		return nil, classifyStoreErr(err, "category", strconv.FormatUint(uint64(id), 10))
	}

	existing.Name = input.Name
	existing.Description = input.Description
	if err := s.categoryRepo.Update(existing); err != nil {
		return nil, classifyStoreErr(err, "category", input.Name)
	}
	return existing, nil
}

func (s *catalogService) DeleteCategory(id uint) error {
	if _, err := s.categoryRepo.FindByID(id); err != nil {
		return classifyStoreErr(err, "category", strconv.FormatUint(uint64(id), 10))
	}
	if err := s.categoryRepo.Delete(id); err != nil {
		return classifyStoreErr(err, "category", strconv.FormatUint(uint64(id), 10))
	}
	return nil
}

// === Suppliers ===

func (s *catalogService) ListSuppliers(sortBy string) ([]model.Supplier, error) {
	suppliers, err := s.supplierRepo.FindAll(sortBy)
	if err != nil {
		return nil, classifyStoreErr(err, "supplier", "")
	}
	return suppliers, nil
}

func (s *catalogService) CreateSupplier(input *SupplierInput) (*model.Supplier, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	supplier := &model.Supplier{Name: input.Name, ContactInfo: input.ContactInfo}
	if err := s.supplierRepo.Create(supplier); err != nil {
		return nil, classifyStoreErr(err, "supplier", input.Name)
	}
	return supplier, nil
}

func (s *catalogService) UpdateSupplier(id uint, input *SupplierInput) (*model.Supplier, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}

	existing, err := s.supplierRepo.FindByID(id)
	if err != nil {
		return nil, classifyStoreErr(err, "supplier", strconv.FormatUint(uint64(id), 10))
	}

	existing.Name = input.Name
	existing.ContactInfo = input.ContactInfo
	if err := s.supplierRepo.Update(existing); err != nil {
		return nil, classifyStoreErr(err, "supplier", input.Name)
	}
	return existing, nil
}

// DeleteSupplier fails with ConstraintViolation while supplies still
// reference the supplier; product references are nulled by the schema.
func (s *catalogService) DeleteSupplier(id uint) error {
	if _, err := s.supplierRepo.FindByID(id); err != nil {
		return classifyStoreErr(err, "supplier", strconv.FormatUint(uint64(id), 10))
	}
	if err := s.supplierRepo.Delete(id); err != nil {
		return classifyStoreErr(err, "supplier", strconv.FormatUint(uint64(id), 10))
	}
	return nil
}
