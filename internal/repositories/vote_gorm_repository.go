package repositories

import (
	"fmt"

	"jaba/internal/models"

	"gorm.io/gorm"
)

// GORMVoteRepository is a GORM implementation of VoteRepository.
type GORMVoteRepository struct {
	db *gorm.DB
}

// NewGORMVoteRepository creates a new instance of GORMVoteRepository.
func NewGORMVoteRepository(db *gorm.DB) *GORMVoteRepository {
	return &GORMVoteRepository{
		db: db,
	}
}

// Create creates a new vote record in the database.
func (r *GORMVoteRepository) Create(vote *models.Vote) error {
	if err := r.db.Create(vote).Error; err != nil {
		return fmt.Errorf("failed to create vote %s: %w", vote.Key, err)
	}
	return nil
}

// Has reports whether the given voter has already voted on the proposal.
func (r *GORMVoteRepository) Has(proposalID, voter string) (bool, error) {
	key := models.VoteKey(proposalID, voter)
	var count int64
	if err := r.db.Model(&models.Vote{}).Where("key = ?", key).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check vote %s: %w", key, err)
	}
	return count > 0, nil
}
