package repositories

import (
	"fmt"

	"jaba/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCommentRepository is a GORM implementation of CommentRepository.
type GORMCommentRepository struct {
	db *gorm.DB
}

// NewGORMCommentRepository creates a new instance of GORMCommentRepository.
func NewGORMCommentRepository(db *gorm.DB) *GORMCommentRepository {
	return &GORMCommentRepository{
		db: db,
	}
}

// Create creates a new comment in the database.
func (r *GORMCommentRepository) Create(comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	if err := r.db.Create(comment).Error; err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetByProposal retrieves the comments of a proposal in creation order.
func (r *GORMCommentRepository) GetByProposal(proposalID string) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	if err := r.db.Where("proposal_id = ?", proposalID).
		Order("created_at, id").
		Find(&comments).Error; err != nil {
		return nil, fmt.Errorf("failed to get comments for proposal %s: %w", proposalID, err)
	}
	return comments, nil
}
