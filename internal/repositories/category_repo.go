package repositories

import "jaba/internal/models"

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	Create(category *models.Category) error
	GetByID(id string) (*models.Category, error)
	GetAll() ([]models.Category, error)
	// ContainsName reports whether a category with the given name exists,
	// compared case-insensitively.
	ContainsName(name string) (bool, error)
	Count() (int, error)
}
