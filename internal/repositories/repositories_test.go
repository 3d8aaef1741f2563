package repositories_test

import (
	"testing"
	"time"

	"jaba/internal/models"
	"jaba/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func TestMemoryUserRepositoryUpsert(t *testing.T) {
	repo := repositories.NewMemoryUserRepository()

	created := time.Now().Add(-time.Hour)
	err := repo.Upsert(&models.User{Principal: "alice", Name: "Alice", Email: "a@example.com", CreatedAt: created, Role: models.RoleUser})
	assert.NoError(t, err)

	// Overwrite with new profile data
	err = repo.Upsert(&models.User{Principal: "alice", Name: "Alice B", Email: "b@example.com", CreatedAt: created, Role: models.RoleUser})
	assert.NoError(t, err)

	user, err := repo.GetByPrincipal("alice")
	assert.NoError(t, err)
	assert.Equal(t, "Alice B", user.Name)

	count, err := repo.Count()
	assert.NoError(t, err)
	assert.Equal(t, 1, count)

	_, err = repo.GetByPrincipal("bob")
	assert.Error(t, err)
}

func TestMemoryProposalRepositoryTitleIndex(t *testing.T) {
	repo := repositories.NewMemoryProposalRepository()

	err := repo.Create(&models.Proposal{
		ID:        "p1",
		Title:     "Upgrade Network",
		CreatedAt: time.Now(),
		Status:    models.StatusOpen,
	})
	assert.NoError(t, err)

	// Case-insensitive match through the index
	exists, err := repo.ContainsTitle("upgrade network")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ContainsTitle("UPGRADE NETWORK")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ContainsTitle("something else")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryProposalRepositoryCreationOrder(t *testing.T) {
	repo := repositories.NewMemoryProposalRepository()

	base := time.Now()
	// Ids chosen so that ascending-id order differs from creation order
	err := repo.Create(&models.Proposal{ID: "zzz", Title: "First", CreatedAt: base, Status: models.StatusOpen})
	assert.NoError(t, err)
	err = repo.Create(&models.Proposal{ID: "aaa", Title: "Second", CreatedAt: base.Add(time.Second), Status: models.StatusOpen})
	assert.NoError(t, err)

	proposals, err := repo.GetAll()
	assert.NoError(t, err)
	assert.Len(t, proposals, 2)
	assert.Equal(t, "First", proposals[0].Title)
	assert.Equal(t, "Second", proposals[1].Title)
}

func TestMemoryProposalRepositoryUpdate(t *testing.T) {
	repo := repositories.NewMemoryProposalRepository()

	proposal := models.Proposal{ID: "p1", Title: "Counters", CreatedAt: time.Now(), Status: models.StatusOpen}
	assert.NoError(t, repo.Create(&proposal))

	proposal.YesVotes = 3
	proposal.Status = models.StatusExecuted
	assert.NoError(t, repo.Update(&proposal))

	stored, err := repo.GetByID("p1")
	assert.NoError(t, err)
	assert.Equal(t, uint64(3), stored.YesVotes)
	assert.Equal(t, models.StatusExecuted, stored.Status)

	err = repo.Update(&models.Proposal{ID: "missing"})
	assert.Error(t, err)
}

func TestMemoryVoteRepositoryCompoundKey(t *testing.T) {
	repo := repositories.NewMemoryVoteRepository()

	err := repo.Create(&models.Vote{Key: models.VoteKey("p1", "alice"), Choice: "yes"})
	assert.NoError(t, err)

	has, err := repo.Has("p1", "alice")
	assert.NoError(t, err)
	assert.True(t, has)

	// Same voter on another proposal, and another voter on the same
	// proposal, are both distinct records
	has, err = repo.Has("p2", "alice")
	assert.NoError(t, err)
	assert.False(t, has)

	has, err = repo.Has("p1", "bob")
	assert.NoError(t, err)
	assert.False(t, has)
}

func TestMemoryCommentRepositoryGetByProposal(t *testing.T) {
	repo := repositories.NewMemoryCommentRepository()

	base := time.Now()
	assert.NoError(t, repo.Create(&models.Comment{ID: "c2", ProposalID: "p1", Content: "second", CreatedAt: base.Add(time.Second)}))
	assert.NoError(t, repo.Create(&models.Comment{ID: "c1", ProposalID: "p1", Content: "first", CreatedAt: base}))
	assert.NoError(t, repo.Create(&models.Comment{ID: "c3", ProposalID: "p2", Content: "other proposal", CreatedAt: base}))

	comments, err := repo.GetByProposal("p1")
	assert.NoError(t, err)
	assert.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "second", comments[1].Content)

	comments, err = repo.GetByProposal("unknown")
	assert.NoError(t, err)
	assert.Empty(t, comments)
}

func TestMemoryCategoryRepositoryContainsName(t *testing.T) {
	repo := repositories.NewMemoryCategoryRepository()

	assert.NoError(t, repo.Create(&models.Category{ID: "c1", Name: "Infra"}))

	exists, err := repo.ContainsName("infra")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ContainsName("INFRA")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ContainsName("Treasury")
	assert.NoError(t, err)
	assert.False(t, exists)
}
