package handlers

import (
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"prodcats/internal/apperrors"
)

// parseIDParam parses the :id path parameter.
func parseIDParam(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, apperrors.Validation(fmt.Sprintf("Invalid ID '%s' in URL path.", raw), nil)
	}
	return uint(id), nil
}

// validationError converts validator failures into the taxonomy's per-field
// error map. Other errors pass through untouched.
func validationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	fields := make(map[string][]string)
	for _, e := range validationErrors {
		fields[e.Field()] = append(fields[e.Field()], fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag()))
	}
	return apperrors.Validation("Validation failed", fields)
}
