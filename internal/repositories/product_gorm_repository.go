package repositories

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"prodcats/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAllActive retrieves all active products with their categories.
func (r *GORMProductRepository) GetAllActive() ([]models.Product, error) {
	var products []models.Product
	err := r.db.
		Where("is_active = ?", true).
		Preload("Category").
		Order("id ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// Search builds the filtered, sorted, paginated query over active products.
// The total count is taken before the pagination window is applied.
func (r *GORMProductRepository) Search(q models.SearchProductsQuery) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{}).Where("is_active = ?", true)

	// Each whitespace-delimited search word must match name or description;
	// words combine with AND, the two fields with OR.
	if q.SearchTerm != nil {
		for _, word := range strings.Fields(*q.SearchTerm) {
			pattern := "%" + strings.ToLower(word) + "%"
			query = query.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", pattern, pattern)
		}
	}

	if q.CategoryID != nil {
		query = query.Where("category_id = ?", *q.CategoryID)
	}

	// Price bounds are inclusive.
	if q.MinPrice != nil {
		query = query.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		query = query.Where("price <= ?", *q.MaxPrice)
	}

	if q.InStock != nil {
		if *q.InStock {
			query = query.Where("stock_quantity > 0")
		} else {
			query = query.Where("stock_quantity = 0")
		}
	}

	var totalCount int64
	if err := query.Session(&gorm.Session{}).Count(&totalCount).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	skip := (q.PageNumber - 1) * q.PageSize

	var products []models.Product
	err := query.
		Order(buildOrderClause(q.SortBy, q.SortOrder)).
		Offset(skip).
		Limit(q.PageSize).
		Preload("Category").
		Find(&products).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search products: %w", err)
	}

	return products, totalCount, nil
}

// buildOrderClause maps the sort criteria onto a whitelisted ORDER BY clause.
// Unknown or absent sortBy falls back to ascending id regardless of sortOrder.
func buildOrderClause(sortBy, sortOrder string) string {
	var column string
	switch strings.ToLower(sortBy) {
	case "name":
		column = "name"
	case "price":
		column = "price"
	case "createddate":
		column = "created_date"
	default:
		return "id ASC"
	}

	if strings.ToLower(sortOrder) == "desc" {
		return column + " DESC"
	}
	return column + " ASC"
}

// GetActiveByID retrieves a single active product by its ID.
func (r *GORMProductRepository) GetActiveByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.
		Where("id = ? AND is_active = ?", id, true).
		Preload("Category").
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create inserts a new product.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if err := r.db.Omit("Category").Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update persists all fields of an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Omit("Category").Save(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Save does not return ErrRecordNotFound for a vanished row, so we
		// check RowsAffected ourselves.
		return ErrNotFound
	}
	return nil
}
