package services

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"jaba/internal/models"
	"jaba/internal/repositories"

	"github.com/google/uuid"
)

// emailPattern accepts the basic local@domain.tld shape.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Publisher sends governance events to a message broker. The rabbitmq
// client satisfies it; tests substitute a mock.
type Publisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// GovernanceService implements the registry use cases over the five entity
// repositories. Every write use case runs under a single service-wide lock:
// all validation reads happen before any write, and a failed precondition
// mutates nothing. Read-only queries run without the lock; the repositories
// hand out consistent snapshots.
type GovernanceService struct {
	mu           sync.Mutex
	userRepo     repositories.UserRepository
	categoryRepo repositories.CategoryRepository
	proposalRepo repositories.ProposalRepository
	commentRepo  repositories.CommentRepository
	voteRepo     repositories.VoteRepository
	events       Publisher
}

// NewGovernanceService creates a new GovernanceService. events may be nil,
// in which case event publication is skipped.
func NewGovernanceService(
	userRepo repositories.UserRepository,
	categoryRepo repositories.CategoryRepository,
	proposalRepo repositories.ProposalRepository,
	commentRepo repositories.CommentRepository,
	voteRepo repositories.VoteRepository,
	events Publisher,
) *GovernanceService {
	return &GovernanceService{
		userRepo:     userRepo,
		categoryRepo: categoryRepo,
		proposalRepo: proposalRepo,
		commentRepo:  commentRepo,
		voteRepo:     voteRepo,
		events:       events,
	}
}

// RegisterOrUpdateUser registers a user under the given principal, or
// updates name and email of an existing one. CreatedAt and Role are
// preserved across updates.
func (s *GovernanceService) RegisterOrUpdateUser(principal, name, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(name) == "" {
		return nil, newDomainError(KindValidation, CodeInvalidName, "Name cannot be empty")
	}
	if !emailPattern.MatchString(email) {
		return nil, newDomainError(KindValidation, CodeInvalidEmail, "Invalid email format")
	}

	user := models.User{
		Principal: principal,
		Name:      name,
		Email:     email,
		CreatedAt: time.Now(),
		Role:      models.RoleUser,
	}
	if existing, err := s.userRepo.GetByPrincipal(principal); err == nil && existing != nil {
		user.CreatedAt = existing.CreatedAt
		user.Role = existing.Role
	}

	if err := s.userRepo.Upsert(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateCategory creates a new category with a generated id. Names are
// unique case-insensitively.
func (s *GovernanceService) CreateCategory(name string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, newDomainError(KindValidation, CodeEmptyName, "Category name cannot be empty")
	}
	exists, err := s.categoryRepo.ContainsName(name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, newDomainError(KindConflict, CodeDuplicateCategory, "Category %q already exists", name)
	}

	category := models.Category{
		ID:   uuid.New().String(),
		Name: name,
	}
	if err := s.categoryRepo.Create(&category); err != nil {
		return nil, err
	}
	return &category, nil
}

// CreateProposal creates a new OPEN proposal with zero counters and records
// its title in the duplicate-title index.
func (s *GovernanceService) CreateProposal(title, description, categoryID, creator string) (*models.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title = strings.TrimSpace(title)
	if utf8.RuneCountInString(title) < 1 || utf8.RuneCountInString(title) > 100 {
		return nil, newDomainError(KindValidation, CodeInvalidTitle, "Title must be 1-100 characters long")
	}
	description = strings.TrimSpace(description)
	if utf8.RuneCountInString(description) < 1 || utf8.RuneCountInString(description) > 500 {
		return nil, newDomainError(KindValidation, CodeInvalidDescription, "Description must be 1-500 characters long")
	}
	if _, err := s.userRepo.GetByPrincipal(creator); err != nil {
		return nil, newDomainError(KindNotFound, CodeUnknownUser, "User not registered")
	}
	duplicate, err := s.proposalRepo.ContainsTitle(title)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, newDomainError(KindConflict, CodeDuplicateTitle, "Duplicate proposal title")
	}
	if _, err := s.categoryRepo.GetByID(categoryID); err != nil {
		return nil, newDomainError(KindNotFound, CodeUnknownCategory, "Category %q does not exist", categoryID)
	}

	proposal := models.Proposal{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Creator:     creator,
		Category:    categoryID,
		YesVotes:    0,
		NoVotes:     0,
		CreatedAt:   time.Now(),
		Status:      models.StatusOpen,
	}
	if err := s.proposalRepo.Create(&proposal); err != nil {
		return nil, err
	}

	s.publish("proposal.created", map[string]interface{}{
		"proposalID": proposal.ID,
		"title":      proposal.Title,
		"creator":    proposal.Creator,
		"category":   proposal.Category,
	})
	return &proposal, nil
}

// Vote casts a yes/no vote on an OPEN proposal. A (proposal, voter) pair
// may vote at most once; choice matching is case-insensitive.
func (s *GovernanceService) Vote(proposalID, choice, voter string) (*models.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.userRepo.GetByPrincipal(voter); err != nil {
		return nil, newDomainError(KindNotFound, CodeUnknownUser, "User not registered")
	}
	proposal, err := s.proposalRepo.GetByID(proposalID)
	if err != nil {
		return nil, newDomainError(KindNotFound, CodeUnknownProposal, "Proposal does not exist")
	}
	if proposal.Status != models.StatusOpen {
		return nil, newDomainError(KindConflict, CodeProposalNotOpen, "Proposal is not open for voting")
	}
	normalized := strings.ToLower(choice)
	if normalized != "yes" && normalized != "no" {
		return nil, newDomainError(KindValidation, CodeInvalidChoice, "Invalid vote type %q", choice)
	}
	voted, err := s.voteRepo.Has(proposalID, voter)
	if err != nil {
		return nil, err
	}
	if voted {
		return nil, newDomainError(KindConflict, CodeDuplicateVote, "Duplicate vote")
	}

	if normalized == "yes" {
		proposal.YesVotes++
	} else {
		proposal.NoVotes++
	}
	if err := s.proposalRepo.Update(proposal); err != nil {
		return nil, err
	}
	vote := models.Vote{
		Key:    models.VoteKey(proposalID, voter),
		Choice: normalized,
	}
	if err := s.voteRepo.Create(&vote); err != nil {
		return nil, err
	}

	s.publish("proposal.voted", map[string]interface{}{
		"proposalID": proposal.ID,
		"choice":     normalized,
		"voter":      voter,
		"yesVotes":   proposal.YesVotes,
		"noVotes":    proposal.NoVotes,
	})
	return proposal, nil
}

// EndProposal closes an OPEN proposal. Only the creator may close it; the
// outcome is EXECUTED when yes votes strictly exceed no votes and REJECTED
// otherwise, so ties do not pass.
func (s *GovernanceService) EndProposal(proposalID, caller string) (*models.Proposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	proposal, err := s.proposalRepo.GetByID(proposalID)
	if err != nil {
		return nil, newDomainError(KindNotFound, CodeUnknownProposal, "Proposal does not exist")
	}
	if proposal.Status != models.StatusOpen {
		return nil, newDomainError(KindConflict, CodeAlreadyClosed, "Proposal already ended")
	}
	if caller != proposal.Creator {
		return nil, newDomainError(KindForbidden, CodeNotCreator, "Only creator can end the proposal")
	}

	if proposal.YesVotes > proposal.NoVotes {
		proposal.Status = models.StatusExecuted
	} else {
		proposal.Status = models.StatusRejected
	}
	if err := s.proposalRepo.Update(proposal); err != nil {
		return nil, err
	}

	s.publish("proposal.ended", map[string]interface{}{
		"proposalID": proposal.ID,
		"status":     proposal.Status,
		"yesVotes":   proposal.YesVotes,
		"noVotes":    proposal.NoVotes,
	})
	return proposal, nil
}

// CreateComment attaches a comment to an existing proposal. Content is
// stored trimmed.
func (s *GovernanceService) CreateComment(proposalID, content, author string) (*models.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, newDomainError(KindValidation, CodeEmptyComment, "Comment cannot be empty")
	}
	if _, err := s.userRepo.GetByPrincipal(author); err != nil {
		return nil, newDomainError(KindNotFound, CodeUnknownUser, "User not registered")
	}
	if _, err := s.proposalRepo.GetByID(proposalID); err != nil {
		return nil, newDomainError(KindNotFound, CodeUnknownProposal, "Proposal does not exist")
	}

	comment := models.Comment{
		ID:         uuid.New().String(),
		ProposalID: proposalID,
		Content:    content,
		Author:     author,
		CreatedAt:  time.Now(),
	}
	if err := s.commentRepo.Create(&comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetProposal returns a single proposal by id.
func (s *GovernanceService) GetProposal(id string) (*models.Proposal, error) {
	proposal, err := s.proposalRepo.GetByID(id)
	if err != nil {
		return nil, newDomainError(KindNotFound, CodeNotFound, "Proposal does not exist")
	}
	return proposal, nil
}

// GetCategory returns a single category by id.
func (s *GovernanceService) GetCategory(id string) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, newDomainError(KindNotFound, CodeNotFound, "Category does not exist")
	}
	return category, nil
}

// GetComments returns the comments of a proposal in creation order. The
// proposal must exist.
func (s *GovernanceService) GetComments(proposalID string) ([]models.Comment, error) {
	if _, err := s.proposalRepo.GetByID(proposalID); err != nil {
		return nil, newDomainError(KindNotFound, CodeNotFound, "Proposal does not exist")
	}
	return s.commentRepo.GetByProposal(proposalID)
}

// ListProposals returns a snapshot of all proposals in creation order.
func (s *GovernanceService) ListProposals() ([]models.Proposal, error) {
	return s.proposalRepo.GetAll()
}

// ListProposalsPaginated returns at most limit proposals starting at
// offset. An out-of-range offset or a zero limit yields an empty slice,
// never an error.
func (s *GovernanceService) ListProposalsPaginated(offset, limit uint64) ([]models.Proposal, error) {
	proposals, err := s.proposalRepo.GetAll()
	if err != nil {
		return nil, err
	}
	total := uint64(len(proposals))
	if offset >= total || limit == 0 {
		return []models.Proposal{}, nil
	}
	end := offset + limit
	if end > total || end < offset { // second clause guards against overflow
		end = total
	}
	return proposals[offset:end], nil
}

// ListUsers returns a snapshot of all registered users.
func (s *GovernanceService) ListUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

// ListCategories returns a snapshot of all categories.
func (s *GovernanceService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// CountProposals returns the number of proposals.
func (s *GovernanceService) CountProposals() (int, error) {
	return s.proposalRepo.Count()
}

// CountCategories returns the number of categories.
func (s *GovernanceService) CountCategories() (int, error) {
	return s.categoryRepo.Count()
}

// CountUsers returns the number of registered users.
func (s *GovernanceService) CountUsers() (int, error) {
	return s.userRepo.Count()
}

// publish sends a governance event best-effort. A broker failure is logged
// and never fails the use case that produced the event.
func (s *GovernanceService) publish(event string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	payload["event"] = event
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", event, err)
		return
	}
	if err := s.events.Publish("", "governance_queue", body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", event, err)
	}
}
