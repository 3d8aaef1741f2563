package repositories

import "jaba/internal/models"

// CredentialRepository defines the interface for login-credential data
// access. It serves the auth boundary only.
type CredentialRepository interface {
	Create(credential *models.Credential) error
	GetByPrincipal(principal string) (*models.Credential, error)
}
