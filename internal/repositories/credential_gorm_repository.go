package repositories

import (
	"fmt"

	"jaba/internal/models"

	"gorm.io/gorm"
)

// GORMCredentialRepository is a GORM implementation of CredentialRepository.
type GORMCredentialRepository struct {
	db *gorm.DB
}

// NewGORMCredentialRepository creates a new instance of GORMCredentialRepository.
func NewGORMCredentialRepository(db *gorm.DB) *GORMCredentialRepository {
	return &GORMCredentialRepository{
		db: db,
	}
}

// Create creates a new credential in the database.
func (r *GORMCredentialRepository) Create(credential *models.Credential) error {
	if err := r.db.Create(credential).Error; err != nil {
		return fmt.Errorf("failed to create credential for %s: %w", credential.Principal, err)
	}
	return nil
}

// GetByPrincipal retrieves the credential stored for the given principal.
func (r *GORMCredentialRepository) GetByPrincipal(principal string) (*models.Credential, error) {
	var credential models.Credential
	if err := r.db.First(&credential, "principal = ?", principal).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("credential for principal %s not found", principal)
		}
		return nil, fmt.Errorf("failed to get credential for principal %s: %w", principal, err)
	}
	return &credential, nil
}
