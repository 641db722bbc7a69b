package repo

import (
	"context"
	"database/sql"
)

type PostgresMetricsRepository struct {
	db *sql.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) GetDashboardMetrics(ctx context.Context, lowStockThreshold int) (Metrics, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	m := Metrics{Categories: map[string]int{}, TopProducts: []TopProduct{}}

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE quantity < $1),
			COALESCE(SUM(price * quantity), 0)
		FROM products`, lowStockThreshold).Scan(&m.TotalProducts, &m.LowStock, &m.TotalValue)
	if err != nil {
		return Metrics{}, err
	}

	rows, err := r.db.QueryContext(ctx, `SELECT category, COUNT(*) FROM products GROUP BY category`)
	if err != nil {
		return Metrics{}, err
	}
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			rows.Close()
			return Metrics{}, err
		}
		m.Categories[category] = count
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Metrics{}, err
	}

	rows, err = r.db.QueryContext(ctx, `SELECT name, sku, quantity FROM products ORDER BY quantity DESC, id LIMIT $1`, topProductsCount)
	if err != nil {
		return Metrics{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var tp TopProduct
		if err := rows.Scan(&tp.Name, &tp.SKU, &tp.Quantity); err != nil {
			return Metrics{}, err
		}
		m.TopProducts = append(m.TopProducts, tp)
	}
	return m, rows.Err()
}
