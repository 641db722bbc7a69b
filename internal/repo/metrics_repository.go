package repo

import (
	"context"
	"sort"

	"github.com/shaikazeem2001/inventory/internal/models"
)

const topProductsCount = 5

type TopProduct struct {
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

type Metrics struct {
	TotalProducts int            `json:"totalProducts"`
	LowStock      int            `json:"lowStock"`
	TotalValue    float64        `json:"totalValue"`
	Categories    map[string]int `json:"categories"`
	TopProducts   []TopProduct   `json:"topProducts"`
}

type MetricsRepository interface {
	GetDashboardMetrics(ctx context.Context, lowStockThreshold int) (Metrics, error)
}

// ComputeMetrics folds a full product list into dashboard metrics.
func ComputeMetrics(products []models.Product, lowStockThreshold int) Metrics {
	m := Metrics{
		TotalProducts: len(products),
		Categories:    map[string]int{},
		TopProducts:   []TopProduct{},
	}

	for _, p := range products {
		if p.LowStock(lowStockThreshold) {
			m.LowStock++
		}
		m.TotalValue += p.Price * float64(p.Quantity)
		m.Categories[p.Category]++
	}

	sorted := make([]models.Product, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Quantity > sorted[j].Quantity })
	for _, p := range sorted[:min(topProductsCount, len(sorted))] {
		m.TopProducts = append(m.TopProducts, TopProduct{Name: p.Name, SKU: p.SKU, Quantity: p.Quantity})
	}
	return m
}
