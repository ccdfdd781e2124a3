package repositories

import (
	"sort"
	"sync"

	"prodcats/internal/models"
)

// MockCategoryRepository is an in-memory implementation of CategoryRepository.
type MockCategoryRepository struct {
	categories map[uint]models.Category
	nextID     uint
	mu         sync.RWMutex
}

// NewMockCategoryRepository creates a new instance of MockCategoryRepository.
func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[uint]models.Category),
		nextID:     1,
	}
}

// GetAllActive returns all active categories ordered by id.
func (r *MockCategoryRepository) GetAllActive() ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categoryList := make([]models.Category, 0, len(r.categories))
	for _, c := range r.categories {
		if c.IsActive {
			categoryList = append(categoryList, c)
		}
	}
	sort.Slice(categoryList, func(i, j int) bool {
		return categoryList[i].ID < categoryList[j].ID
	})
	return categoryList, nil
}

// GetByID returns a category by its ID, active or not.
func (r *MockCategoryRepository) GetByID(id uint) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &category, nil
}

// GetActiveByID returns an active category by its ID.
func (r *MockCategoryRepository) GetActiveByID(id uint) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories[id]
	if !ok || !category.IsActive {
		return nil, ErrNotFound
	}
	return &category, nil
}

// Create adds a new category, assigning an id.
func (r *MockCategoryRepository) Create(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if category.ID == 0 {
		category.ID = r.nextID
	}
	if category.ID >= r.nextID {
		r.nextID = category.ID + 1
	}
	r.categories[category.ID] = *category
	return nil
}

// Update replaces an existing category.
func (r *MockCategoryRepository) Update(category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.categories[category.ID]; !ok {
		return ErrNotFound
	}
	r.categories[category.ID] = *category
	return nil
}
