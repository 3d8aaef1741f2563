package models

import "time"

// Role identifies the access level of a registered user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User represents a registered participant. The Principal is the opaque
// identity string supplied by the external identity provider and is the
// record key; users are never deleted.
type User struct {
	Principal string    `json:"principal" gorm:"primaryKey;type:varchar(255)" validate:"required"`
	Name      string    `json:"name" gorm:"type:varchar(100)" validate:"required"`
	Email     string    `json:"email" gorm:"type:varchar(255)" validate:"required,email"`
	CreatedAt time.Time `json:"created_at"`
	Role      Role      `json:"role" gorm:"type:varchar(16)"`
}
