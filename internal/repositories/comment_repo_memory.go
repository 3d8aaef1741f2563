package repositories

import (
	"sort"

	"jaba/internal/models"
	"jaba/internal/store"
)

// MemoryCommentRepository is an in-memory implementation of
// CommentRepository backed by an ordered Collection keyed by comment id.
type MemoryCommentRepository struct {
	comments *store.Collection[string, models.Comment]
}

// NewMemoryCommentRepository creates a new instance of MemoryCommentRepository.
func NewMemoryCommentRepository() *MemoryCommentRepository {
	return &MemoryCommentRepository{
		comments: store.NewCollection[string, models.Comment](),
	}
}

// Create stores a new comment under its id.
func (r *MemoryCommentRepository) Create(comment *models.Comment) error {
	r.comments.Insert(comment.ID, *comment)
	return nil
}

// GetByProposal returns the comments of a proposal in creation order.
func (r *MemoryCommentRepository) GetByProposal(proposalID string) ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	for _, comment := range r.comments.Values() {
		if comment.ProposalID == proposalID {
			comments = append(comments, comment)
		}
	}
	sort.SliceStable(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}
