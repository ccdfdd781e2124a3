package services

import (
	"errors"
	"log"

	"prodcats/internal/apperrors"
	"prodcats/internal/models"
	"prodcats/internal/repositories"
)

// CategoryService handles business logic related to categories.
type CategoryService struct {
	categoryRepo repositories.CategoryRepository
	publisher    EventPublisher
}

// NewCategoryService creates a new CategoryService. publisher may be nil.
func NewCategoryService(categoryRepo repositories.CategoryRepository, publisher EventPublisher) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

// GetAllCategories retrieves all active categories.
func (s *CategoryService) GetAllCategories() ([]models.CategoryView, error) {
	categories, err := s.categoryRepo.GetAllActive()
	if err != nil {
		return nil, err
	}

	views := make([]models.CategoryView, 0, len(categories))
	for i := range categories {
		views = append(views, newCategoryView(&categories[i]))
	}
	return views, nil
}

// GetCategoryByID retrieves a category regardless of its active flag, since
// inactive categories must stay editable (there is no category delete).
func (s *CategoryService) GetCategoryByID(id uint) (*models.CategoryView, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFoundf("Category with ID %d not found.", id)
		}
		return nil, err
	}
	view := newCategoryView(category)
	return &view, nil
}

// CreateCategory creates a new active category.
func (s *CategoryService) CreateCategory(req *models.CreateCategoryRequest) (*models.CategoryView, error) {
	category := &models.Category{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	s.publishCategoryEvent(EventCategoryCreated, category)

	view := newCategoryView(category)
	return &view, nil
}

// UpdateCategory applies a partial update. Inactive categories are updatable
// so they can be reactivated.
func (s *CategoryService) UpdateCategory(id uint, req *models.UpdateCategoryRequest) error {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFoundf("Category with ID %d not found.", id)
		}
		return err
	}

	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.categoryRepo.Update(category); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFoundf("Category with ID %d not found.", id)
		}
		return err
	}

	s.publishCategoryEvent(EventCategoryUpdated, category)
	return nil
}

func (s *CategoryService) publishCategoryEvent(eventType string, category *models.Category) {
	if s.publisher == nil {
		return
	}
	payload := map[string]interface{}{
		"categoryId": category.ID,
		"name":       category.Name,
		"isActive":   category.IsActive,
	}
	if err := s.publisher.PublishCatalogEvent(eventType, payload); err != nil {
		log.Printf("Failed to publish %s event for category %d: %v", eventType, category.ID, err)
	}
}

func newCategoryView(category *models.Category) models.CategoryView {
	return models.CategoryView{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		IsActive:    category.IsActive,
	}
}
