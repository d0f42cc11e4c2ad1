package model

type Product struct {
	BaseModel
	SKU           string  `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Name          string  `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description   string  `json:"description"`
	Manufacturer  string  `gorm:"type:varchar(255)" json:"manufacturer"`
	PurchasePrice float64 `gorm:"not null" json:"purchase_price" validate:"gte=0"`
	RetailPrice   float64 `gorm:"not null" json:"retail_price" validate:"gte=0"`
	MinStock      int     `gorm:"not null;default:0" json:"min_stock" validate:"gte=0"`

	// Category/Supplier deletion nullifies the reference, it never takes the product with it
	CategoryID *uint     `json:"category_id,omitempty"`
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty" validate:"-"`
	SupplierID *uint     `json:"supplier_id,omitempty"`
	Supplier   *Supplier `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"supplier,omitempty" validate:"-"`

	// Relasi
	Inventory *Inventory          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"inventory,omitempty" validate:"-"`
	History   []StockHistoryEntry `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"history,omitempty" validate:"-"`
}
