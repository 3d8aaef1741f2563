package repositories

import (
	"fmt"

	"jaba/internal/models"

	"gorm.io/gorm"
)

// GORMUserRepository is a GORM implementation of UserRepository.
type GORMUserRepository struct {
	db *gorm.DB
}

// NewGORMUserRepository creates a new instance of GORMUserRepository.
func NewGORMUserRepository(db *gorm.DB) *GORMUserRepository {
	return &GORMUserRepository{
		db: db,
	}
}

// Upsert inserts or overwrites the user row keyed by principal.
func (r *GORMUserRepository) Upsert(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to upsert user %s: %w", user.Principal, err)
	}
	return nil
}

// GetByPrincipal retrieves a user by their principal from the database.
func (r *GORMUserRepository) GetByPrincipal(principal string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "principal = ?", principal).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user with principal %s not found", principal)
		}
		return nil, fmt.Errorf("failed to get user by principal %s: %w", principal, err)
	}
	return &user, nil
}

// GetAll retrieves all users from the database in ascending principal order.
func (r *GORMUserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("principal").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get all users: %w", err)
	}
	return users, nil
}

// Count returns the number of registered users.
func (r *GORMUserRepository) Count() (int, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return int(count), nil
}
