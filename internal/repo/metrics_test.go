package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaikazeem2001/inventory/internal/models"
)

func TestComputeMetrics(t *testing.T) {
	products := []models.Product{
		{Name: "A", SKU: "A", Category: "Fruit", Price: 2, Quantity: 50},
		{Name: "B", SKU: "B", Category: "Fruit", Price: 1, Quantity: 3},
		{Name: "C", SKU: "C", Category: "Tools", Price: 10, Quantity: 9},
		{Name: "D", SKU: "D", Category: "Tools", Price: 4, Quantity: 20},
		{Name: "E", SKU: "E", Category: "Misc", Price: 1, Quantity: 30},
		{Name: "F", SKU: "F", Category: "Misc", Price: 1, Quantity: 10},
	}

	m := ComputeMetrics(products, 10)

	assert.Equal(t, 6, m.TotalProducts)
	assert.Equal(t, 2, m.LowStock)
	assert.InDelta(t, 100+3+90+80+30+10, m.TotalValue, 0.0001)
	assert.Equal(t, map[string]int{"Fruit": 2, "Tools": 2, "Misc": 2}, m.Categories)

	require.Len(t, m.TopProducts, 5)
	assert.Equal(t, "A", m.TopProducts[0].Name)
	assert.Equal(t, "E", m.TopProducts[1].Name)
	assert.Equal(t, "D", m.TopProducts[2].Name)
	assert.Equal(t, "F", m.TopProducts[3].Name)
	assert.Equal(t, "C", m.TopProducts[4].Name)
}

func TestInMemoryMetricsEmpty(t *testing.T) {
	stores := NewInMemoryStores()

	m, err := stores.Metrics.GetDashboardMetrics(context.Background(), 10)
	require.NoError(t, err)
	assert.Zero(t, m.TotalProducts)
	assert.NotNil(t, m.Categories)
	assert.NotNil(t, m.TopProducts)
}

func TestInMemoryStoresShareProducts(t *testing.T) {
	stores := NewInMemoryStores()
	ctx := context.Background()

	_, err := stores.Products.Create(ctx, models.Product{Name: "Box", SKU: "X", Quantity: 1})
	require.NoError(t, err)

	m, err := stores.Metrics.GetDashboardMetrics(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, m.TotalProducts)
	assert.Equal(t, 1, m.LowStock)
	assert.NoError(t, stores.Close())
}
