package repositories

import (
	"prodcats/internal/models"
)

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAllActive() ([]models.Category, error)
	// GetByID returns the category regardless of its active flag; categories
	// have no delete endpoint and inactive ones must stay reachable by id.
	GetByID(id uint) (*models.Category, error)
	GetActiveByID(id uint) (*models.Category, error)
	Create(category *models.Category) error
	Update(category *models.Category) error
}
