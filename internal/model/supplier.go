package model

type Supplier struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`
	ContactInfo string `json:"contact_info"`

	// Relasi
	Supplies []Supply `json:"supplies,omitempty"`
}
