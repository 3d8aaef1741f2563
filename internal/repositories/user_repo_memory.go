package repositories

import (
	"fmt"

	"jaba/internal/models"
	"jaba/internal/store"
)

// MemoryUserRepository is an in-memory implementation of UserRepository
// backed by an ordered Collection keyed by principal.
type MemoryUserRepository struct {
	users *store.Collection[string, models.User]
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users: store.NewCollection[string, models.User](),
	}
}

// Upsert inserts or overwrites the user stored under its principal.
func (r *MemoryUserRepository) Upsert(user *models.User) error {
	r.users.Insert(user.Principal, *user)
	return nil
}

// GetByPrincipal returns the user registered under the given principal.
func (r *MemoryUserRepository) GetByPrincipal(principal string) (*models.User, error) {
	user, ok := r.users.Get(principal)
	if !ok {
		return nil, fmt.Errorf("user with principal %s not found", principal)
	}
	return &user, nil
}

// GetAll returns all users in ascending principal order.
func (r *MemoryUserRepository) GetAll() ([]models.User, error) {
	return r.users.Values(), nil
}

// Count returns the number of registered users.
func (r *MemoryUserRepository) Count() (int, error) {
	return r.users.Len(), nil
}
