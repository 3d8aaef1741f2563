package repositories

import (
	"fmt"
	"sort"
	"strings"

	"jaba/internal/models"
	"jaba/internal/store"
)

// MemoryProposalRepository is an in-memory implementation of
// ProposalRepository. It keeps proposals in an ordered Collection keyed by
// id and maintains the lower-cased-title index alongside every Create.
type MemoryProposalRepository struct {
	proposals  *store.Collection[string, models.Proposal]
	titleIndex *store.Collection[string, string] // lower(title) -> proposal id
}

// NewMemoryProposalRepository creates a new instance of MemoryProposalRepository.
func NewMemoryProposalRepository() *MemoryProposalRepository {
	return &MemoryProposalRepository{
		proposals:  store.NewCollection[string, models.Proposal](),
		titleIndex: store.NewCollection[string, string](),
	}
}

// Create stores a new proposal and records its title in the index.
func (r *MemoryProposalRepository) Create(proposal *models.Proposal) error {
	r.proposals.Insert(proposal.ID, *proposal)
	r.titleIndex.Insert(strings.ToLower(proposal.Title), proposal.ID)
	return nil
}

// Update overwrites an existing proposal. Titles never change, so the
// title index stays as is.
func (r *MemoryProposalRepository) Update(proposal *models.Proposal) error {
	if !r.proposals.Contains(proposal.ID) {
		return fmt.Errorf("proposal with ID %s not found for update", proposal.ID)
	}
	r.proposals.Insert(proposal.ID, *proposal)
	return nil
}

// GetByID returns a proposal by its id.
func (r *MemoryProposalRepository) GetByID(id string) (*models.Proposal, error) {
	proposal, ok := r.proposals.Get(id)
	if !ok {
		return nil, fmt.Errorf("proposal with ID %s not found", id)
	}
	return &proposal, nil
}

// GetAll returns all proposals in creation order (id breaks ties).
func (r *MemoryProposalRepository) GetAll() ([]models.Proposal, error) {
	proposals := r.proposals.Values()
	sort.SliceStable(proposals, func(i, j int) bool {
		if proposals[i].CreatedAt.Equal(proposals[j].CreatedAt) {
			return proposals[i].ID < proposals[j].ID
		}
		return proposals[i].CreatedAt.Before(proposals[j].CreatedAt)
	})
	return proposals, nil
}

// ContainsTitle reports whether a proposal with the given title exists,
// compared case-insensitively via the title index.
func (r *MemoryProposalRepository) ContainsTitle(title string) (bool, error) {
	return r.titleIndex.Contains(strings.ToLower(title)), nil
}

// Count returns the number of proposals.
func (r *MemoryProposalRepository) Count() (int, error) {
	return r.proposals.Len(), nil
}
