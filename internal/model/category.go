package model

type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	Description string `json:"description"`

	// Relasi
	Products []Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"products,omitempty"`
}
