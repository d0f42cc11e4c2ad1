package model

// StockHistoryEntry is the append-only ledger of quantity changes. Entries
// are written by stock adjustments and by supply completions, never updated
// or deleted. The entry's CreatedAt is the movement date.
type StockHistoryEntry struct {
	BaseModel
	ProductID      uint     `gorm:"not null;index" json:"product_id"`
	Product        *Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"product,omitempty"`
	QuantityChange int      `gorm:"not null" json:"quantity_change"`
	ChangeReason   string   `gorm:"type:varchar(255)" json:"change_reason"`
}

func (StockHistoryEntry) TableName() string {
	return "stock_history"
}
