package handlers

import (
	"log"

	"jaba/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.GovernanceService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.GovernanceService) *CategoryHandler {
	return &CategoryHandler{
		service: service,
	}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Get("/", h.HandleListCategories)
	categoryRoutes.Get("/count", h.HandleCountCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategory)
}

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name string `json:"name"`
}

// HandleCreateCategory creates a new category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing category request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	category, err := h.service.CreateCategory(req.Name)
	if err != nil {
		log.Printf("Error creating category: %v", err)
		return respondDomainError(c, "Could not create category", err)
	}

	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleListCategories returns all categories.
func (h *CategoryHandler) HandleListCategories(c *fiber.Ctx) error {
	categories, err := h.service.ListCategories()
	if err != nil {
		log.Printf("Error listing categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve categories",
			"error":   err.Error(),
		})
	}
	return c.JSON(categories)
}

// HandleGetCategory returns a single category by its ID.
func (h *CategoryHandler) HandleGetCategory(c *fiber.Ctx) error {
	categoryID := c.Params("id")
	category, err := h.service.GetCategory(categoryID)
	if err != nil {
		log.Printf("Error getting category %s: %v", categoryID, err)
		return respondDomainError(c, "Could not retrieve category", err)
	}
	return c.JSON(category)
}

// HandleCountCategories returns the number of categories.
func (h *CategoryHandler) HandleCountCategories(c *fiber.Ctx) error {
	count, err := h.service.CountCategories()
	if err != nil {
		log.Printf("Error counting categories: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not count categories",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"count": count})
}
