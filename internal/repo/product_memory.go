package repo

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shaikazeem2001/inventory/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: []models.Product{},
	}
}

func matchesFilter(p models.Product, pf ProductFilter) bool {
	if pf.Keyword != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(pf.Keyword)) {
		return false
	}
	if pf.Category != "" && p.Category != pf.Category {
		return false
	}
	if pf.MinPrice != nil && p.Price < *pf.MinPrice {
		return false
	}
	if pf.MaxPrice != nil && p.Price > *pf.MaxPrice {
		return false
	}
	if pf.MinQty != nil && p.Quantity < *pf.MinQty {
		return false
	}
	if pf.MaxQty != nil && p.Quantity > *pf.MaxQty {
		return false
	}
	return true
}

func sortProducts(products []models.Product, order string) {
	less := func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	}
	switch order {
	case SortPriceAsc:
		less = func(i, j int) bool { return products[i].Price < products[j].Price }
	case SortPriceDesc:
		less = func(i, j int) bool { return products[i].Price > products[j].Price }
	case SortQuantityAsc:
		less = func(i, j int) bool { return products[i].Quantity < products[j].Quantity }
	case SortQuantityDesc:
		less = func(i, j int) bool { return products[i].Quantity > products[j].Quantity }
	}
	sort.SliceStable(products, less)
}

func (r *InMemoryProductRepository) Filter(_ context.Context, pf ProductFilter) ([]models.Product, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	filtered := []models.Product{}
	for _, p := range r.products {
		if matchesFilter(p, pf) {
			filtered = append(filtered, p)
		}
	}
	sortProducts(filtered, pf.Sort)

	start, end := window(len(filtered), pf.Offset, pf.Limit)
	return filtered[start:end], len(filtered), nil
}

func (r *InMemoryProductRepository) skuTaken(sku string) bool {
	for _, p := range r.products {
		if p.SKU == sku {
			return true
		}
	}
	return false
}

// Create adds a new product to the repository.
func (r *InMemoryProductRepository) Create(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.skuTaken(product.SKU) {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	prepareProduct(&product, time.Now().UTC())
	r.products = append(r.products, product)
	return product, nil
}

// InsertMany stores every product whose sku is still free, in order.
func (r *InMemoryProductRepository) InsertMany(_ context.Context, products []models.Product) ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	inserted := make([]models.Product, 0, len(products))
	for _, p := range products {
		if r.skuTaken(p.SKU) {
			continue
		}
		prepareProduct(&p, now)
		r.products = append(r.products, p)
		inserted = append(inserted, p)
	}
	return inserted, nil
}

// GetAll retrieves all products from the repository.
func (r *InMemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetByID retrieves a product by its ID.
func (r *InMemoryProductRepository) GetByID(_ context.Context, id string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) GetBySKU(_ context.Context, sku string) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Update modifies an existing product in the repository.
func (r *InMemoryProductRepository) Update(_ context.Context, product models.Product) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, p := range r.products {
		if p.ID == product.ID {
			idx = i
		} else if p.SKU == product.SKU {
			return models.Product{}, ErrDuplicatedValueUnique
		}
	}
	if idx < 0 {
		return models.Product{}, ErrProductNotFound
	}

	product.CreatedAt = r.products[idx].CreatedAt
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = time.Now().UTC()
	}
	r.products[idx] = product
	return product, nil
}

// Delete removes a product from the repository by its ID.
func (r *InMemoryProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.products {
		if p.ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			return nil
		}
	}
	return ErrProductNotFound
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.products = []models.Product{}
}
