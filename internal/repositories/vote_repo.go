package repositories

import "jaba/internal/models"

// VoteRepository defines the interface for vote-record data access. Vote
// records are insert-only; they exist to enforce one vote per
// (proposal, voter) pair.
type VoteRepository interface {
	Create(vote *models.Vote) error
	Has(proposalID, voter string) (bool, error)
}
