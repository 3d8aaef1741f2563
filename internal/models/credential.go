package models

// Credential stores the local login secret for a principal. It belongs to
// the auth boundary only; the governance core never reads it.
type Credential struct {
	Principal    string `json:"principal" gorm:"primaryKey;type:varchar(255)" validate:"required"`
	PasswordHash string `json:"-" gorm:"type:varchar(255)"`
}
