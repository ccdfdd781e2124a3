package models

import "time"

// Product represents a catalog product. Every product belongs to exactly one
// category. IsActive is the soft-delete flag: inactive rows stay in the table
// but are excluded from all default read paths.
type Product struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null"`
	Description   string    `json:"description" gorm:"type:text"`
	Price         float64   `json:"price" gorm:"type:decimal(10,2);not null;check:price > 0"`
	CategoryID    uint      `json:"categoryId" gorm:"not null;index"`
	Category      Category  `json:"-" gorm:"foreignKey:CategoryID"`
	StockQuantity int       `json:"stockQuantity" gorm:"not null;default:0;check:stock_quantity >= 0"`
	CreatedDate   time.Time `json:"createdDate" gorm:"autoCreateTime"`
	IsActive      bool      `json:"isActive" gorm:"not null;default:true"`
}

// ProductView is the flattened response shape for product reads, including
// the joined category name.
type ProductView struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	CategoryID    uint      `json:"categoryId"`
	CategoryName  string    `json:"categoryName"`
	StockQuantity int       `json:"stockQuantity"`
	CreatedDate   time.Time `json:"createdDate"`
	IsActive      bool      `json:"isActive"`
}

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Name          string  `json:"name" validate:"required,max=255"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	CategoryID    uint    `json:"categoryId" validate:"required"`
	StockQuantity int     `json:"stockQuantity" validate:"gte=0"`
}

// UpdateProductRequest is the request body for partially updating a product.
// Only non-nil fields are applied; absent fields leave the row untouched.
type UpdateProductRequest struct {
	Name          *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" validate:"omitempty,gt=0"`
	CategoryID    *uint    `json:"categoryId" validate:"omitempty,gt=0"`
	StockQuantity *int     `json:"stockQuantity" validate:"omitempty,gte=0"`
	IsActive      *bool    `json:"isActive"`
}

// SearchProductsQuery carries the optional filter/sort/pagination criteria
// for the product search pipeline. Nil pointer fields mean "not supplied".
type SearchProductsQuery struct {
	SearchTerm *string
	CategoryID *uint
	MinPrice   *float64
	MaxPrice   *float64
	InStock    *bool
	SortBy     string
	SortOrder  string
	PageNumber int
	PageSize   int
}

// SearchProductsResult is the paginated search response envelope.
type SearchProductsResult struct {
	Items      []ProductView `json:"items"`
	TotalCount int64         `json:"totalCount"`
	PageNumber int           `json:"pageNumber"`
	PageSize   int           `json:"pageSize"`
	TotalPages int           `json:"totalPages"`
}
