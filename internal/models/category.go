package models

// Category groups proposals under a shared label. Names are unique
// case-insensitively; categories are immutable once created.
type Category struct {
	ID   string `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name string `json:"name" gorm:"type:varchar(100)" validate:"required,min=1,max=100"`
}
