package model

import "time"

type SupplyStatus string

const (
	SupplyPending   SupplyStatus = "pending"
	SupplyInTransit SupplyStatus = "in_transit"
	SupplyDelivered SupplyStatus = "delivered"
	SupplyCancelled SupplyStatus = "cancelled"
)

type Supply struct {
	BaseModel
	Reference  string       `gorm:"type:varchar(36);uniqueIndex;not null" json:"reference"`
	SupplierID uint         `gorm:"not null" json:"supplier_id"`
	Supplier   *Supplier    `json:"supplier,omitempty" validate:"-"`
	Date       time.Time    `gorm:"not null" json:"date"`
	Status     SupplyStatus `gorm:"type:varchar(20);not null" json:"status" validate:"required,oneof=pending in_transit delivered cancelled"`

	// Relasi
	Items []SupplyItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items,omitempty" validate:"-"`
}

type SupplyItem struct {
	BaseModel
	SupplyID  uint     `gorm:"not null" json:"supply_id"`
	Supply    *Supply  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"supply,omitempty" validate:"-"`
	ProductID uint     `gorm:"not null" json:"product_id"`
	Product   *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"product,omitempty" validate:"-"`
	Quantity  int      `gorm:"not null" json:"quantity" validate:"required,gt=0"` // Qty harus > 0
}
