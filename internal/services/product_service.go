package services

import (
	"errors"
	"log"

	"prodcats/internal/apperrors"
	"prodcats/internal/models"
	"prodcats/internal/repositories"
)

const defaultPageSize = 10

// ProductService handles business logic related to products: the
// active-category referential rule, partial updates, soft deletes, and the
// search pipeline's pagination arithmetic.
type ProductService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
	publisher    EventPublisher
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository, publisher EventPublisher) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		publisher:    publisher,
	}
}

// GetAllProducts retrieves all active products as flattened views.
func (s *ProductService) GetAllProducts() ([]models.ProductView, error) {
	products, err := s.productRepo.GetAllActive()
	if err != nil {
		return nil, err
	}

	views := make([]models.ProductView, 0, len(products))
	for i := range products {
		views = append(views, newProductView(&products[i], products[i].Category.Name))
	}
	return views, nil
}

// SearchProducts runs the search pipeline and assembles the page envelope.
// pageNumber below 1 is clamped to 1 and pageSize below 1 falls back to the
// default, so the skip offset and the page-count division are always sound.
func (s *ProductService) SearchProducts(query models.SearchProductsQuery) (*models.SearchProductsResult, error) {
	if query.PageNumber < 1 {
		query.PageNumber = 1
	}
	if query.PageSize < 1 {
		query.PageSize = defaultPageSize
	}

	products, totalCount, err := s.productRepo.Search(query)
	if err != nil {
		return nil, err
	}

	items := make([]models.ProductView, 0, len(products))
	for i := range products {
		items = append(items, newProductView(&products[i], products[i].Category.Name))
	}

	totalPages := int((totalCount + int64(query.PageSize) - 1) / int64(query.PageSize))

	return &models.SearchProductsResult{
		Items:      items,
		TotalCount: totalCount,
		PageNumber: query.PageNumber,
		PageSize:   query.PageSize,
		TotalPages: totalPages,
	}, nil
}

// GetProductByID retrieves a single active product.
func (s *ProductService) GetProductByID(id uint) (*models.ProductView, error) {
	product, err := s.productRepo.GetActiveByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.NotFoundf("Product with ID %d not found.", id)
		}
		return nil, err
	}
	view := newProductView(product, product.Category.Name)
	return &view, nil
}

// CreateProduct creates a new product after checking that the referenced
// category exists and is active.
func (s *ProductService) CreateProduct(req *models.CreateProductRequest) (*models.ProductView, error) {
	category, err := s.categoryRepo.GetActiveByID(req.CategoryID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ReferentialInvalid("Category not found or inactive.")
		}
		return nil, err
	}

	product := &models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		CategoryID:    req.CategoryID,
		StockQuantity: req.StockQuantity,
		IsActive:      true,
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}

	s.publishProductEvent(EventProductCreated, product)

	view := newProductView(product, category.Name)
	return &view, nil
}

// UpdateProduct applies a partial update to an active product. Only non-nil
// request fields overwrite; a changed category must be active.
func (s *ProductService) UpdateProduct(id uint, req *models.UpdateProductRequest) error {
	product, err := s.productRepo.GetActiveByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFoundf("Product with ID %d not found.", id)
		}
		return err
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetActiveByID(*req.CategoryID); err != nil {
			if errors.Is(err, repositories.ErrNotFound) {
				return apperrors.ReferentialInvalid("Category not found or inactive.")
			}
			return err
		}
		product.CategoryID = *req.CategoryID
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.StockQuantity != nil {
		product.StockQuantity = *req.StockQuantity
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.productRepo.Update(product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// The row vanished between read and write.
			return apperrors.NotFoundf("Product with ID %d not found.", id)
		}
		return err
	}

	s.publishProductEvent(EventProductUpdated, product)
	return nil
}

// DeleteProduct soft-deletes an active product by clearing its active flag.
// The row persists and stays readable at the repository layer.
func (s *ProductService) DeleteProduct(id uint) error {
	product, err := s.productRepo.GetActiveByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFoundf("Product with ID %d not found.", id)
		}
		return err
	}

	product.IsActive = false
	if err := s.productRepo.Update(product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return apperrors.NotFoundf("Product with ID %d not found.", id)
		}
		return err
	}

	s.publishProductEvent(EventProductDeleted, product)
	return nil
}

// publishProductEvent emits a catalog event if a publisher is configured.
// Events are best-effort; a publish failure never fails the request.
func (s *ProductService) publishProductEvent(eventType string, product *models.Product) {
	if s.publisher == nil {
		return
	}
	payload := map[string]interface{}{
		"productId":  product.ID,
		"name":       product.Name,
		"categoryId": product.CategoryID,
		"isActive":   product.IsActive,
	}
	if err := s.publisher.PublishCatalogEvent(eventType, payload); err != nil {
		log.Printf("Failed to publish %s event for product %d: %v", eventType, product.ID, err)
	}
}

func newProductView(product *models.Product, categoryName string) models.ProductView {
	return models.ProductView{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		CategoryID:    product.CategoryID,
		CategoryName:  categoryName,
		StockQuantity: product.StockQuantity,
		CreatedDate:   product.CreatedDate,
		IsActive:      product.IsActive,
	}
}
