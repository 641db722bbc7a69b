package repo

import "context"

// InMemoryMetricsRepository computes metrics from whatever ProductRepository it is given.
type InMemoryMetricsRepository struct {
	productRepo ProductRepository
}

func NewInMemoryMetricsRepository() *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{}
}

func (i *InMemoryMetricsRepository) SetRepositories(productRepo ProductRepository) {
	i.productRepo = productRepo
}

// GetDashboardMetrics implements MetricsRepository.
func (i *InMemoryMetricsRepository) GetDashboardMetrics(ctx context.Context, lowStockThreshold int) (Metrics, error) {
	products, err := i.productRepo.GetAll(ctx)
	if err != nil {
		return Metrics{}, err
	}
	return ComputeMetrics(products, lowStockThreshold), nil
}
