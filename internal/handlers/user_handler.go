package handlers

import (
	"fmt"
	"log"

	"jaba/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for registry users.
type UserHandler struct {
	service  *services.GovernanceService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.GovernanceService) *UserHandler {
	return &UserHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/", h.HandleRegisterOrUpdate)
	userRoutes.Get("/", h.HandleListUsers)
	userRoutes.Get("/count", h.HandleCountUsers)
}

// RegisterUserRequest represents the request body for user registration.
type RegisterUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required"`
}

// HandleRegisterOrUpdate registers the calling principal as a user, or
// updates the existing profile.
func (h *UserHandler) HandleRegisterOrUpdate(c *fiber.Ctx) error {
	var req RegisterUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing user request body: %v", err)
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

	user, err := h.service.RegisterOrUpdateUser(callerPrincipal(c), req.Name, req.Email)
	if err != nil {
		log.Printf("Error registering user: %v", err)
		return respondDomainError(c, "Could not register user", err)
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleListUsers returns all registered users.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.service.ListUsers()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve users",
			"error":   err.Error(),
		})
	}
	return c.JSON(users)
}

// HandleCountUsers returns the number of registered users.
func (h *UserHandler) HandleCountUsers(c *fiber.Ctx) error {
	count, err := h.service.CountUsers()
	if err != nil {
		log.Printf("Error counting users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not count users",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"count": count})
}
