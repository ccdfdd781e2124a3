package database

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"prodcats/internal/models"
)

// Seed populates an empty database with a starter catalog: six categories
// (one inactive) and a product set spanning them, including zero-stock rows.
// It is idempotent and does nothing once categories exist.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for existing categories: %w", err)
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Electronics", Description: "Electronic devices and gadgets", IsActive: true},
		{Name: "Clothing", Description: "Apparel and fashion items", IsActive: true},
		{Name: "Home & Garden", Description: "Home improvement and garden supplies", IsActive: true},
		{Name: "Sports & Outdoors", Description: "Sports equipment and outdoor gear", IsActive: true},
		{Name: "Books", Description: "Books and reading materials", IsActive: true},
		{Name: "Toys - Inactive", Description: "Toys and games", IsActive: false},
	}
	if err := db.Create(&categories).Error; err != nil {
		return fmt.Errorf("failed to seed categories: %w", err)
	}

	products := []models.Product{
		{Name: "Wireless Headphones", Description: "Bluetooth wireless headphones with noise cancellation", Price: 99.99, CategoryID: categories[0].ID, StockQuantity: 50, IsActive: true},
		{Name: "Smartphone", Description: "Latest model smartphone with 128GB storage", Price: 699.99, CategoryID: categories[0].ID, StockQuantity: 25, IsActive: true},
		{Name: "Laptop Stand", Description: "Adjustable aluminium laptop stand", Price: 34.50, CategoryID: categories[0].ID, StockQuantity: 0, IsActive: true},
		{Name: "Cotton T-Shirt", Description: "Plain cotton t-shirt, multiple colors", Price: 12.99, CategoryID: categories[1].ID, StockQuantity: 200, IsActive: true},
		{Name: "Denim Jacket", Description: "Classic denim jacket", Price: 59.00, CategoryID: categories[1].ID, StockQuantity: 15, IsActive: true},
		{Name: "Garden Hose", Description: "25m expandable garden hose", Price: 22.75, CategoryID: categories[2].ID, StockQuantity: 40, IsActive: true},
		{Name: "Tennis Racket", Description: "Lightweight carbon tennis racket", Price: 89.90, CategoryID: categories[3].ID, StockQuantity: 0, IsActive: true},
		{Name: "Mystery Novel", Description: "Bestselling mystery novel, paperback", Price: 9.99, CategoryID: categories[4].ID, StockQuantity: 120, IsActive: true},
		{Name: "Discontinued Radio", Description: "Portable FM radio", Price: 19.99, CategoryID: categories[0].ID, StockQuantity: 5, IsActive: false},
	}
	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("failed to seed products: %w", err)
	}

	log.Printf("Seeded %d categories and %d products", len(categories), len(products))
	return nil
}
