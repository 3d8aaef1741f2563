package repositories

import (
	"fmt"
	"strings"

	"jaba/internal/models"
	"jaba/internal/store"
)

// MemoryCategoryRepository is an in-memory implementation of
// CategoryRepository backed by an ordered Collection keyed by category id.
type MemoryCategoryRepository struct {
	categories *store.Collection[string, models.Category]
}

// NewMemoryCategoryRepository creates a new instance of MemoryCategoryRepository.
func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{
		categories: store.NewCollection[string, models.Category](),
	}
}

// Create stores a new category under its id.
func (r *MemoryCategoryRepository) Create(category *models.Category) error {
	r.categories.Insert(category.ID, *category)
	return nil
}

// GetByID returns a category by its id.
func (r *MemoryCategoryRepository) GetByID(id string) (*models.Category, error) {
	category, ok := r.categories.Get(id)
	if !ok {
		return nil, fmt.Errorf("category with ID %s not found", id)
	}
	return &category, nil
}

// GetAll returns all categories in ascending id order.
func (r *MemoryCategoryRepository) GetAll() ([]models.Category, error) {
	return r.categories.Values(), nil
}

// ContainsName reports whether a category with the given name exists,
// compared case-insensitively.
func (r *MemoryCategoryRepository) ContainsName(name string) (bool, error) {
	for _, category := range r.categories.Values() {
		if strings.EqualFold(category.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// Count returns the number of categories.
func (r *MemoryCategoryRepository) Count() (int, error) {
	return r.categories.Len(), nil
}
