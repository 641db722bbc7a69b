package repo

import (
	"context"

	"github.com/shaikazeem2001/inventory/internal/models"
)

// ProductRepository defines the interface for product data operations.
type ProductRepository interface {
	Create(ctx context.Context, product models.Product) (models.Product, error)
	// InsertMany attempts every product independently and returns the ones actually stored.
	// A product rejected on its own (duplicate sku) does not abort the others and is not an error;
	// an error means the store itself failed.
	InsertMany(ctx context.Context, products []models.Product) ([]models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (models.Product, error)
	GetBySKU(ctx context.Context, sku string) (models.Product, error)
	Update(ctx context.Context, product models.Product) (models.Product, error)
	Delete(ctx context.Context, id string) error
	Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error)
}
