package repositories

import (
	"sort"
	"strings"
	"sync"
	"time"

	"prodcats/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It mirrors the GORM implementation's behavior, including the full search
// pipeline, and is used when no database is configured and in tests. When
// constructed with a MockCategoryRepository it resolves the owning category
// on reads the way the GORM implementation preloads it.
type MockProductRepository struct {
	products   map[uint]models.Product
	categories *MockCategoryRepository
	nextID     uint
	mu         sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
// categories may be nil, in which case reads return an empty Category.
func NewMockProductRepository(categories *MockCategoryRepository) *MockProductRepository {
	return &MockProductRepository{
		products:   make(map[uint]models.Product),
		categories: categories,
		nextID:     1,
	}
}

// GetAllActive returns all active products ordered by id.
func (r *MockProductRepository) GetAllActive() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if !p.IsActive {
			continue
		}
		productList = append(productList, r.withCategory(p))
	}
	sort.Slice(productList, func(i, j int) bool {
		return productList[i].ID < productList[j].ID
	})
	return productList, nil
}

// Search applies the filter/sort/paginate pipeline in memory.
func (r *MockProductRepository) Search(q models.SearchProductsQuery) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []models.Product
	for _, p := range r.products {
		if !p.IsActive {
			continue
		}
		if q.SearchTerm != nil && !matchesSearchTerm(p, *q.SearchTerm) {
			continue
		}
		if q.CategoryID != nil && p.CategoryID != *q.CategoryID {
			continue
		}
		if q.MinPrice != nil && p.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && p.Price > *q.MaxPrice {
			continue
		}
		if q.InStock != nil {
			if *q.InStock && p.StockQuantity <= 0 {
				continue
			}
			if !*q.InStock && p.StockQuantity != 0 {
				continue
			}
		}
		matched = append(matched, r.withCategory(p))
	}

	sortProducts(matched, q.SortBy, q.SortOrder)

	totalCount := int64(len(matched))
	skip := (q.PageNumber - 1) * q.PageSize
	if skip < 0 {
		skip = 0
	}
	if skip >= len(matched) {
		return []models.Product{}, totalCount, nil
	}
	end := skip + q.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], totalCount, nil
}

// matchesSearchTerm requires every whitespace-delimited word of the term to
// be a case-insensitive substring of the name or the description.
func matchesSearchTerm(p models.Product, term string) bool {
	name := strings.ToLower(p.Name)
	description := strings.ToLower(p.Description)
	for _, word := range strings.Fields(term) {
		word = strings.ToLower(word)
		if !strings.Contains(name, word) && !strings.Contains(description, word) {
			return false
		}
	}
	return true
}

// sortProducts orders the slice per the whitelisted sort keys. Unknown or
// absent sortBy falls back to ascending id regardless of sortOrder.
func sortProducts(products []models.Product, sortBy, sortOrder string) {
	descending := strings.ToLower(sortOrder) == "desc"
	var less func(a, b models.Product) bool

	switch strings.ToLower(sortBy) {
	case "name":
		less = func(a, b models.Product) bool { return a.Name < b.Name }
	case "price":
		less = func(a, b models.Product) bool { return a.Price < b.Price }
	case "createddate":
		less = func(a, b models.Product) bool { return a.CreatedDate.Before(b.CreatedDate) }
	default:
		less = func(a, b models.Product) bool { return a.ID < b.ID }
		descending = false
	}

	sort.SliceStable(products, func(i, j int) bool {
		if descending {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

// GetActiveByID returns an active product by its ID.
func (r *MockProductRepository) GetActiveByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok || !product.IsActive {
		return nil, ErrNotFound
	}
	product = r.withCategory(product)
	return &product, nil
}

// Create adds a new product, assigning an id and creation time.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		product.ID = r.nextID
	}
	if product.ID >= r.nextID {
		r.nextID = product.ID + 1
	}
	if product.CreatedDate.IsZero() {
		product.CreatedDate = time.Now()
	}
	r.products[product.ID] = *product
	return nil
}

// Update replaces an existing product.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[product.ID]; !ok {
		return ErrNotFound
	}
	r.products[product.ID] = *product
	return nil
}

func (r *MockProductRepository) withCategory(p models.Product) models.Product {
	if r.categories == nil {
		return p
	}
	if category, err := r.categories.GetByID(p.CategoryID); err == nil {
		p.Category = *category
	}
	return p
}
