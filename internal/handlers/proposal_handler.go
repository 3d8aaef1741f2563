package handlers

import (
	"fmt"
	"log"
	"strconv"

	"jaba/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProposalHandler handles HTTP requests for proposals and their votes and
// comments.
type ProposalHandler struct {
	service  *services.GovernanceService
	validate *validator.Validate
}

// NewProposalHandler creates a new ProposalHandler.
func NewProposalHandler(service *services.GovernanceService) *ProposalHandler {
	return &ProposalHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the proposal routes with the Fiber app.
func (h *ProposalHandler) RegisterRoutes(router fiber.Router) {
	proposalRoutes := router.Group("/proposals")
	proposalRoutes.Post("/", h.HandleCreateProposal)
	proposalRoutes.Get("/", h.HandleListProposals)
	proposalRoutes.Get("/count", h.HandleCountProposals)
	proposalRoutes.Get("/:id", h.HandleGetProposal)
	proposalRoutes.Post("/:id/votes", h.HandleVote)
	proposalRoutes.Post("/:id/end", h.HandleEndProposal)
	proposalRoutes.Post("/:id/comments", h.HandleCreateComment)
	proposalRoutes.Get("/:id/comments", h.HandleGetComments)
}

// CreateProposalRequest represents the request body for proposal creation.
type CreateProposalRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category" validate:"required"`
}

// HandleCreateProposal creates a new proposal owned by the calling principal.
func (h *ProposalHandler) HandleCreateProposal(c *fiber.Ctx) error {
	var req CreateProposalRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing proposal request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	proposal, err := h.service.CreateProposal(req.Title, req.Description, req.Category, callerPrincipal(c))
	if err != nil {
		log.Printf("Error creating proposal: %v", err)
		return respondDomainError(c, "Could not create proposal", err)
	}

	return c.Status(fiber.StatusCreated).JSON(proposal)
}

// HandleListProposals returns proposals in creation order. When a limit
// query parameter is present the listing is paginated with offset/limit;
// out-of-range offsets yield an empty list.
func (h *ProposalHandler) HandleListProposals(c *fiber.Ctx) error {
	limitParam := c.Query("limit")
	if limitParam == "" {
		proposals, err := h.service.ListProposals()
		if err != nil {
			log.Printf("Error listing proposals: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not retrieve proposals",
				"error":   err.Error(),
			})
		}
		return c.JSON(proposals)
	}

	limit, err := strconv.ParseUint(limitParam, 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid limit parameter",
			"error":   err.Error(),
		})
	}
	offset := uint64(0)
	if offsetParam := c.Query("offset"); offsetParam != "" {
		offset, err = strconv.ParseUint(offsetParam, 10, 64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid offset parameter",
				"error":   err.Error(),
			})
		}
	}

	proposals, err := h.service.ListProposalsPaginated(offset, limit)
	if err != nil {
		log.Printf("Error listing proposals paginated: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve proposals",
			"error":   err.Error(),
		})
	}
	return c.JSON(proposals)
}

// HandleGetProposal returns a single proposal by its ID.
func (h *ProposalHandler) HandleGetProposal(c *fiber.Ctx) error {
	proposalID := c.Params("id")
	proposal, err := h.service.GetProposal(proposalID)
	if err != nil {
		log.Printf("Error getting proposal %s: %v", proposalID, err)
		return respondDomainError(c, "Could not retrieve proposal", err)
	}
	return c.JSON(proposal)
}

// HandleCountProposals returns the number of proposals.
func (h *ProposalHandler) HandleCountProposals(c *fiber.Ctx) error {
	count, err := h.service.CountProposals()
	if err != nil {
		log.Printf("Error counting proposals: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not count proposals",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"count": count})
}

// VoteRequest represents the request body for casting a vote.
type VoteRequest struct {
	Choice string `json:"choice" validate:"required"`
}

// HandleVote casts the calling principal's vote on a proposal.
func (h *ProposalHandler) HandleVote(c *fiber.Ctx) error {
	proposalID := c.Params("id")
	var req VoteRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing vote request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Choice is required",
		})
	}

	proposal, err := h.service.Vote(proposalID, req.Choice, callerPrincipal(c))
	if err != nil {
		log.Printf("Error voting on proposal %s: %v", proposalID, err)
		return respondDomainError(c, "Could not cast vote", err)
	}

	return c.Status(fiber.StatusCreated).JSON(proposal)
}

// HandleEndProposal closes a proposal; only the creator may do so.
func (h *ProposalHandler) HandleEndProposal(c *fiber.Ctx) error {
	proposalID := c.Params("id")
	proposal, err := h.service.EndProposal(proposalID, callerPrincipal(c))
	if err != nil {
		log.Printf("Error ending proposal %s: %v", proposalID, err)
		return respondDomainError(c, "Could not end proposal", err)
	}
	return c.JSON(proposal)
}

// CreateCommentRequest represents the request body for commenting.
type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// HandleCreateComment attaches a comment to a proposal.
func (h *ProposalHandler) HandleCreateComment(c *fiber.Ctx) error {
	proposalID := c.Params("id")
	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing comment request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	comment, err := h.service.CreateComment(proposalID, req.Content, callerPrincipal(c))
	if err != nil {
		log.Printf("Error commenting on proposal %s: %v", proposalID, err)
		return respondDomainError(c, "Could not create comment", err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// HandleGetComments returns the comments of a proposal in creation order.
func (h *ProposalHandler) HandleGetComments(c *fiber.Ctx) error {
	proposalID := c.Params("id")
	comments, err := h.service.GetComments(proposalID)
	if err != nil {
		log.Printf("Error getting comments for proposal %s: %v", proposalID, err)
		return respondDomainError(c, "Could not retrieve comments", err)
	}
	return c.JSON(comments)
}
