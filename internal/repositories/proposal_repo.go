package repositories

import "jaba/internal/models"

// ProposalRepository defines the interface for proposal data access.
// Implementations maintain the lower-cased-title index together with Create
// so duplicate-title checks stay cheap.
type ProposalRepository interface {
	Create(proposal *models.Proposal) error
	// Update persists counter and status changes of an existing proposal.
	// The title never changes, so the title index is untouched.
	Update(proposal *models.Proposal) error
	GetByID(id string) (*models.Proposal, error)
	// GetAll returns all proposals in creation order.
	GetAll() ([]models.Proposal, error)
	// ContainsTitle reports whether a proposal with the given title exists,
	// compared case-insensitively.
	ContainsTitle(title string) (bool, error)
	Count() (int, error)
}
