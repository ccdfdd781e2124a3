package repositories

import (
	"prodcats/internal/models"
)

// ProductRepository defines the interface for product data access. Reads
// return products with the owning Category populated.
type ProductRepository interface {
	GetAllActive() ([]models.Product, error)
	// Search applies the filter/sort/paginate pipeline and returns the page
	// of matching active products plus the total match count before
	// pagination. Callers are expected to pass a normalized query
	// (PageNumber >= 1, PageSize >= 1).
	Search(query models.SearchProductsQuery) ([]models.Product, int64, error)
	GetActiveByID(id uint) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
}
