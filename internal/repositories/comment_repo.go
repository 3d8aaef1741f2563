package repositories

import "jaba/internal/models"

// CommentRepository defines the interface for comment data access.
type CommentRepository interface {
	Create(comment *models.Comment) error
	// GetByProposal returns the comments of a proposal in creation order.
	GetByProposal(proposalID string) ([]models.Comment, error)
}
