package repositories

import "jaba/internal/models"

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Upsert(user *models.User) error
	GetByPrincipal(principal string) (*models.User, error)
	GetAll() ([]models.User, error)
	Count() (int, error)
}
