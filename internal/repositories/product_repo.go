package repositories

import (
	"context"

	"inventory/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns every product in ascending id order.
	GetAll(ctx context.Context) ([]models.Product, error)
	// FindByID returns the product with the given id. The boolean is false when
	// no such row exists; err is reserved for storage failures.
	FindByID(ctx context.Context, id uint64) (*models.Product, bool, error)
	// Create inserts a new product and sets its ID.
	Create(ctx context.Context, product *models.Product) error
	// Update overwrites the mutable columns of the row with product.ID.
	Update(ctx context.Context, product *models.Product) error
	// Delete removes the row with the given id if present.
	Delete(ctx context.Context, id uint64) error
}
