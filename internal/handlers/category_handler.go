package handlers

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"prodcats/internal/apperrors"
	"prodcats/internal/models"
	"prodcats/internal/services"
)

// CategoryHandler handles HTTP requests for categories. There is no delete
// route; categories are deactivated through partial update instead.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categoryRoutes := router.Group("/categories")
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Put("/:id", h.HandleUpdateCategory)
}

// HandleGetCategories lists all active categories.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories()
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

// HandleGetCategoryByID retrieves a category, active or not.
func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	category, err := h.service.GetCategoryByID(id)
	if err != nil {
		return err
	}
	return c.JSON(category)
}

// HandleCreateCategory creates a new category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req models.CreateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("Invalid request body.", nil)
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	category, err := h.service.CreateCategory(&req)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/api/categories/%d", category.ID))
	return c.Status(fiber.StatusCreated).JSON(category)
}

// HandleUpdateCategory applies a partial update to a category.
func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req models.UpdateCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("Invalid request body.", nil)
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	if err := h.service.UpdateCategory(id, &req); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
