package repo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaikazeem2001/inventory/internal/models"
)

func intPtr(v int) *int             { return &v }
func floatPtr(v float64) *float64   { return &v }

func seedProducts(t *testing.T, r *InMemoryProductRepository) []models.Product {
	t.Helper()
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := []models.Product{
		{Name: "Red Apple", SKU: "A1", Category: "Fruit", Price: 1.5, Quantity: 40, CreatedAt: base},
		{Name: "Green Apple", SKU: "A2", Category: "Fruit", Price: 1.2, Quantity: 5, CreatedAt: base.Add(time.Hour)},
		{Name: "Hammer", SKU: "T1", Category: "Tools", Price: 15, Quantity: 12, CreatedAt: base.Add(2 * time.Hour)},
		{Name: "Screwdriver", SKU: "T2", Category: "Tools", Price: 7.25, Quantity: 0, CreatedAt: base.Add(3 * time.Hour)},
	}
	out := make([]models.Product, 0, len(seed))
	for _, p := range seed {
		created, err := r.Create(context.Background(), p)
		require.NoError(t, err)
		out = append(out, created)
	}
	return out
}

func TestInMemoryCreateAppliesDefaults(t *testing.T) {
	r := NewInMemoryProductRepository()

	p, err := r.Create(context.Background(), models.Product{Name: "Bare", SKU: "B1"})
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)
	assert.Equal(t, models.DefaultCategory, p.Category)
	assert.Equal(t, models.DefaultDescription, p.Description)
	assert.Equal(t, models.DefaultImageURL, p.ImageURL)

	_, err = r.Create(context.Background(), models.Product{Name: "Other", SKU: "B1"})
	assert.ErrorIs(t, err, ErrDuplicatedValueUnique)
}

func TestInMemoryInsertManyIsUnordered(t *testing.T) {
	r := NewInMemoryProductRepository()
	ctx := context.Background()
	_, err := r.Create(ctx, models.Product{Name: "Taken", SKU: "S2"})
	require.NoError(t, err)

	inserted, err := r.InsertMany(ctx, []models.Product{
		{Name: "One", SKU: "S1"},
		{Name: "Two", SKU: "S2"},
		{Name: "Three", SKU: "S3"},
		{Name: "Three again", SKU: "S3"},
	})
	require.NoError(t, err)

	require.Len(t, inserted, 2)
	assert.Equal(t, "S1", inserted[0].SKU)
	assert.Equal(t, "S3", inserted[1].SKU)
	assert.Equal(t, "Three", inserted[1].Name)

	all, _ := r.GetAll(ctx)
	assert.Len(t, all, 3)
}

func TestInMemoryFilter(t *testing.T) {
	r := NewInMemoryProductRepository()
	seedProducts(t, r)
	ctx := context.Background()

	tests := []struct {
		name      string
		filter    ProductFilter
		wantSKUs  []string
		wantTotal int
	}{
		{"newest first by default", ProductFilter{}, []string{"T2", "T1", "A2", "A1"}, 4},
		{"keyword is case insensitive", ProductFilter{Keyword: "apple"}, []string{"A2", "A1"}, 2},
		{"category", ProductFilter{Category: "Tools"}, []string{"T2", "T1"}, 2},
		{"price range", ProductFilter{MinPrice: floatPtr(1.3), MaxPrice: floatPtr(10)}, []string{"T2", "A1"}, 2},
		{"quantity range", ProductFilter{MinQty: intPtr(5), MaxQty: intPtr(12)}, []string{"T1", "A2"}, 2},
		{"price ascending", ProductFilter{Sort: SortPriceAsc}, []string{"A2", "A1", "T2", "T1"}, 4},
		{"quantity descending", ProductFilter{Sort: SortQuantityDesc}, []string{"A1", "T1", "A2", "T2"}, 4},
		{"paged", ProductFilter{Sort: SortPriceDesc, Offset: intPtr(1), Limit: intPtr(2)}, []string{"T2", "A1"}, 4},
		{"offset past the end", ProductFilter{Offset: intPtr(10), Limit: intPtr(2)}, []string{}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, total, err := r.Filter(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, total)

			skus := []string{}
			for _, p := range products {
				skus = append(skus, p.SKU)
			}
			assert.Equal(t, tt.wantSKUs, skus)
		})
	}
}

func TestInMemoryUpdateAndDelete(t *testing.T) {
	r := NewInMemoryProductRepository()
	seeded := seedProducts(t, r)
	ctx := context.Background()

	hammer := seeded[2]
	hammer.Quantity = 3
	hammer.CreatedAt = time.Time{}
	updated, err := r.Update(ctx, hammer)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)
	assert.Equal(t, seeded[2].CreatedAt, updated.CreatedAt)

	hammer.SKU = "A1"
	_, err = r.Update(ctx, hammer)
	assert.ErrorIs(t, err, ErrDuplicatedValueUnique)

	_, err = r.Update(ctx, models.Product{ID: "missing", SKU: "Z"})
	assert.ErrorIs(t, err, ErrProductNotFound)

	require.NoError(t, r.Delete(ctx, hammer.ID))
	_, err = r.GetByID(ctx, hammer.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.ErrorIs(t, r.Delete(ctx, hammer.ID), ErrProductNotFound)
}

func TestInMemoryGetBySKU(t *testing.T) {
	r := NewInMemoryProductRepository()
	seedProducts(t, r)

	p, err := r.GetBySKU(context.Background(), "T2")
	require.NoError(t, err)
	assert.Equal(t, "Screwdriver", p.Name)

	_, err = r.GetBySKU(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrProductNotFound)
}
