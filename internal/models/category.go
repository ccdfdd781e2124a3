package models

// Category represents a product category in the catalog.
// Categories are never hard-deleted; IsActive is the soft-delete flag.
type Category struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:text"`
	IsActive    bool      `json:"isActive" gorm:"not null;default:true"`
	Products    []Product `json:"-" gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

// CategoryView is the response shape for category reads.
type CategoryView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	IsActive    bool   `json:"isActive"`
}

// CreateCategoryRequest is the request body for creating a category.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

// UpdateCategoryRequest is the request body for partially updating a category.
// Only non-nil fields are applied.
type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}
