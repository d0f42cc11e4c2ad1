package model

import "time"

// Inventory holds the current-quantity snapshot, one row per product.
// Rows appear on the first stock adjustment or supply receipt, never on
// product creation. Mutated only inside the stock/supply transactions.
type Inventory struct {
	BaseModel
	ProductID   uint      `gorm:"uniqueIndex;not null" json:"product_id"`
	Product     *Product  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"product,omitempty"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	LastUpdated time.Time `gorm:"not null" json:"last_updated"`
}

func (Inventory) TableName() string {
	return "inventory"
}
