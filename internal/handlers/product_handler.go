package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"prodcats/internal/apperrors"
	"prodcats/internal/models"
	"prodcats/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
// The /search route must be registered before /:id.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/search", h.HandleSearchProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts lists all active products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleSearchProducts runs the filtered, sorted, paginated product search.
func (h *ProductHandler) HandleSearchProducts(c *fiber.Ctx) error {
	query, err := parseSearchQuery(c)
	if err != nil {
		return err
	}

	result, err := h.service.SearchProducts(*query)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// parseSearchQuery reads the optional search parameters off the query string.
// Presence is distinguished from the zero value with pointer fields, so a
// minPrice of 0 and a missing minPrice stay different things. Unparseable
// values are collected into a per-field validation error.
func parseSearchQuery(c *fiber.Ctx) (*models.SearchProductsQuery, error) {
	query := models.SearchProductsQuery{
		PageNumber: 1,
		PageSize:   10,
	}
	fieldErrors := make(map[string][]string)

	if raw := c.Query("searchTerm"); strings.TrimSpace(raw) != "" {
		term := raw
		query.SearchTerm = &term
	}

	if raw := c.Query("categoryId"); raw != "" {
		value, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			fieldErrors["categoryId"] = append(fieldErrors["categoryId"], "must be a positive integer")
		} else {
			id := uint(value)
			query.CategoryID = &id
		}
	}

	if raw := c.Query("minPrice"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fieldErrors["minPrice"] = append(fieldErrors["minPrice"], "must be a number")
		} else {
			query.MinPrice = &value
		}
	}

	if raw := c.Query("maxPrice"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fieldErrors["maxPrice"] = append(fieldErrors["maxPrice"], "must be a number")
		} else {
			query.MaxPrice = &value
		}
	}

	if raw := c.Query("inStock"); raw != "" {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			fieldErrors["inStock"] = append(fieldErrors["inStock"], "must be true or false")
		} else {
			query.InStock = &value
		}
	}

	query.SortBy = c.Query("sortBy")
	query.SortOrder = c.Query("sortOrder")

	if raw := c.Query("pageNumber"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			fieldErrors["pageNumber"] = append(fieldErrors["pageNumber"], "must be an integer")
		} else {
			query.PageNumber = value
		}
	}

	if raw := c.Query("pageSize"); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			fieldErrors["pageSize"] = append(fieldErrors["pageSize"], "must be an integer")
		} else {
			query.PageSize = value
		}
	}

	if len(fieldErrors) > 0 {
		return nil, apperrors.Validation("Validation failed", fieldErrors)
	}
	return &query, nil
}

// HandleGetProductByID retrieves a single active product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("Invalid request body.", nil)
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	product, err := h.service.CreateProduct(&req)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderLocation, fmt.Sprintf("/api/products/%d", product.ID))
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct applies a partial update to a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req models.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.Validation("Invalid request body.", nil)
	}

	if err := h.validate.Struct(req); err != nil {
		return validationError(err)
	}

	if err := h.service.UpdateProduct(id, &req); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteProduct soft-deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
