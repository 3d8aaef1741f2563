package repositories

import (
	"fmt"
	"strings"

	"jaba/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMProposalRepository is a GORM implementation of ProposalRepository.
// The lower-cased-title index of the in-memory store maps to a LOWER(title)
// lookup here; the database serves the same duplicate-title check.
type GORMProposalRepository struct {
	db *gorm.DB
}

// NewGORMProposalRepository creates a new instance of GORMProposalRepository.
func NewGORMProposalRepository(db *gorm.DB) *GORMProposalRepository {
	return &GORMProposalRepository{
		db: db,
	}
}

// Create creates a new proposal in the database.
func (r *GORMProposalRepository) Create(proposal *models.Proposal) error {
	if proposal.ID == "" {
		proposal.ID = uuid.New().String()
	}
	if err := r.db.Create(proposal).Error; err != nil {
		return fmt.Errorf("failed to create proposal: %w", err)
	}
	return nil
}

// Update persists counter and status changes of an existing proposal.
func (r *GORMProposalRepository) Update(proposal *models.Proposal) error {
	result := r.db.Model(&models.Proposal{}).
		Where("id = ?", proposal.ID).
		Updates(map[string]interface{}{
			"yes_votes": proposal.YesVotes,
			"no_votes":  proposal.NoVotes,
			"status":    proposal.Status,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update proposal %s: %w", proposal.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("proposal with ID %s not found for update", proposal.ID)
	}
	return nil
}

// GetByID retrieves a proposal by its ID from the database.
func (r *GORMProposalRepository) GetByID(id string) (*models.Proposal, error) {
	var proposal models.Proposal
	if err := r.db.First(&proposal, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("proposal with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get proposal by ID %s: %w", id, err)
	}
	return &proposal, nil
}

// GetAll retrieves all proposals from the database in creation order.
func (r *GORMProposalRepository) GetAll() ([]models.Proposal, error) {
	var proposals []models.Proposal
	if err := r.db.Order("created_at, id").Find(&proposals).Error; err != nil {
		return nil, fmt.Errorf("failed to get all proposals: %w", err)
	}
	return proposals, nil
}

// ContainsTitle reports whether a proposal with the given title exists,
// compared case-insensitively.
func (r *GORMProposalRepository) ContainsTitle(title string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Proposal{}).
		Where("LOWER(title) = ?", strings.ToLower(title)).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check proposal title %q: %w", title, err)
	}
	return count > 0, nil
}

// Count returns the number of proposals.
func (r *GORMProposalRepository) Count() (int, error) {
	var count int64
	if err := r.db.Model(&models.Proposal{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count proposals: %w", err)
	}
	return int(count), nil
}
