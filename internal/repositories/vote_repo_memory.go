package repositories

import (
	"jaba/internal/models"
	"jaba/internal/store"
)

// MemoryVoteRepository is an in-memory implementation of VoteRepository
// backed by an ordered Collection keyed by the compound (proposal, voter)
// key.
type MemoryVoteRepository struct {
	votes *store.Collection[string, models.Vote]
}

// NewMemoryVoteRepository creates a new instance of MemoryVoteRepository.
func NewMemoryVoteRepository() *MemoryVoteRepository {
	return &MemoryVoteRepository{
		votes: store.NewCollection[string, models.Vote](),
	}
}

// Create stores a new vote record under its compound key.
func (r *MemoryVoteRepository) Create(vote *models.Vote) error {
	r.votes.Insert(vote.Key, *vote)
	return nil
}

// Has reports whether the given voter has already voted on the proposal.
func (r *MemoryVoteRepository) Has(proposalID, voter string) (bool, error) {
	return r.votes.Contains(models.VoteKey(proposalID, voter)), nil
}
