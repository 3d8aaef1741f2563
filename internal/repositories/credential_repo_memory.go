package repositories

import (
	"fmt"

	"jaba/internal/models"
	"jaba/internal/store"
)

// MemoryCredentialRepository is an in-memory implementation of
// CredentialRepository backed by an ordered Collection keyed by principal.
type MemoryCredentialRepository struct {
	credentials *store.Collection[string, models.Credential]
}

// NewMemoryCredentialRepository creates a new instance of MemoryCredentialRepository.
func NewMemoryCredentialRepository() *MemoryCredentialRepository {
	return &MemoryCredentialRepository{
		credentials: store.NewCollection[string, models.Credential](),
	}
}

// Create stores a new credential under its principal.
func (r *MemoryCredentialRepository) Create(credential *models.Credential) error {
	r.credentials.Insert(credential.Principal, *credential)
	return nil
}

// GetByPrincipal returns the credential stored for the given principal.
func (r *MemoryCredentialRepository) GetByPrincipal(principal string) (*models.Credential, error) {
	credential, ok := r.credentials.Get(principal)
	if !ok {
		return nil, fmt.Errorf("credential for principal %s not found", principal)
	}
	return &credential, nil
}
