package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	models "github.com/shaikazeem2001/inventory/internal/models"
)

const productColumns = `id, name, sku, category, price, quantity, description, image_url, created_at, updated_at`

// insertChunkSize keeps a multi-row insert under Postgres' 65535 bind parameter limit.
const insertChunkSize = 1000

type PostgresProductRepository struct {
	db *sql.DB
}

func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(s scanner) (models.Product, error) {
	var p models.Product
	err := s.Scan(&p.ID, &p.Name, &p.SKU, &p.Category, &p.Price, &p.Quantity, &p.Description, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *PostgresProductRepository) Create(ctx context.Context, p models.Product) (models.Product, error) {
	prepareProduct(&p, time.Now().UTC())

	query := `INSERT INTO products (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, query, p.ID, p.Name, p.SKU, p.Category, p.Price, p.Quantity, p.Description, p.ImageURL, p.CreatedAt, p.UpdatedAt)
	if isUniqueViolation(err) {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// InsertMany writes the products in chunks; rows that collide on a unique key are skipped by
// ON CONFLICT DO NOTHING and are simply absent from the RETURNING set.
func (r *PostgresProductRepository) InsertMany(ctx context.Context, products []models.Product) ([]models.Product, error) {
	now := time.Now().UTC()
	inserted := make([]models.Product, 0, len(products))

	for start := 0; start < len(products); start += insertChunkSize {
		end := min(start+insertChunkSize, len(products))
		chunk := make([]models.Product, end-start)
		copy(chunk, products[start:end])

		stored, err := r.insertChunk(ctx, chunk, now)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert products: %w", err)
		}
		inserted = append(inserted, stored...)
	}
	return inserted, nil
}

func (r *PostgresProductRepository) insertChunk(ctx context.Context, chunk []models.Product, now time.Time) ([]models.Product, error) {
	var sb strings.Builder
	sb.WriteString(`INSERT INTO products (` + productColumns + `) VALUES `)

	args := make([]any, 0, len(chunk)*10)
	for i := range chunk {
		prepareProduct(&chunk[i], now)
		p := chunk[i]

		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 10
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10)
		args = append(args, p.ID, p.Name, p.SKU, p.Category, p.Price, p.Quantity, p.Description, p.ImageURL, p.CreatedAt, p.UpdatedAt)
	}
	sb.WriteString(` ON CONFLICT DO NOTHING RETURNING ` + productColumns)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[string]models.Product, len(chunk))
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		byID[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// RETURNING order is not guaranteed; report in input order.
	stored := make([]models.Product, 0, len(byID))
	for _, p := range chunk {
		if s, ok := byID[p.ID]; ok {
			stored = append(stored, s)
		}
	}
	return stored, nil
}

func (r *PostgresProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY created_at DESC`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return r.queryProducts(ctx, query)
}

func (r *PostgresProductRepository) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *PostgresProductRepository) getOne(ctx context.Context, where string, arg any) (models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE ` + where
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	return p, err
}

func (r *PostgresProductRepository) GetByID(ctx context.Context, id string) (models.Product, error) {
	return r.getOne(ctx, "id = $1", id)
}

func (r *PostgresProductRepository) GetBySKU(ctx context.Context, sku string) (models.Product, error) {
	return r.getOne(ctx, "sku = $1", sku)
}

func (r *PostgresProductRepository) Update(ctx context.Context, p models.Product) (models.Product, error) {
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = time.Now().UTC()
	}

	query := `UPDATE products
		SET name = $1, sku = $2, category = $3, price = $4, quantity = $5, description = $6, image_url = $7, updated_at = $8
		WHERE id = $9
		RETURNING ` + productColumns
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	updated, err := scanProduct(r.db.QueryRowContext(ctx, query,
		p.Name, p.SKU, p.Category, p.Price, p.Quantity, p.Description, p.ImageURL, p.UpdatedAt, p.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, ErrProductNotFound
	}
	if isUniqueViolation(err) {
		return models.Product{}, ErrDuplicatedValueUnique
	}
	return updated, err
}

func (r *PostgresProductRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM products WHERE id = $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (r *PostgresProductRepository) Filter(ctx context.Context, pf ProductFilter) ([]models.Product, int, error) {
	conditions, args, argIdx := filterConditions(pf)

	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var totalCount int
	countQuery := "SELECT COUNT(*) FROM products WHERE 1=1" + conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	query += conditions
	query += " ORDER BY " + orderClause(pf.Sort)

	if pf.Limit != nil && *pf.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argIdx)
		args = append(args, *pf.Limit)
		argIdx++
	}
	if pf.Offset != nil && *pf.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argIdx)
		args = append(args, *pf.Offset)
	}

	products, err := r.queryProducts(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return products, totalCount, nil
}

func orderClause(sort string) string {
	switch sort {
	case SortPriceAsc:
		return "price ASC, id"
	case SortPriceDesc:
		return "price DESC, id"
	case SortQuantityAsc:
		return "quantity ASC, id"
	case SortQuantityDesc:
		return "quantity DESC, id"
	default:
		return "created_at DESC, id"
	}
}

func filterConditions(pf ProductFilter) (string, []any, int) {
	query := ""
	argIdx := 1
	args := []any{}

	if pf.Keyword != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argIdx)
		args = append(args, "%"+pf.Keyword+"%")
		argIdx++
	}
	if pf.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, pf.Category)
		argIdx++
	}
	if pf.MinPrice != nil {
		query += fmt.Sprintf(" AND price >= $%d", argIdx)
		args = append(args, *pf.MinPrice)
		argIdx++
	}
	if pf.MaxPrice != nil {
		query += fmt.Sprintf(" AND price <= $%d", argIdx)
		args = append(args, *pf.MaxPrice)
		argIdx++
	}
	if pf.MinQty != nil {
		query += fmt.Sprintf(" AND quantity >= $%d", argIdx)
		args = append(args, *pf.MinQty)
		argIdx++
	}
	if pf.MaxQty != nil {
		query += fmt.Sprintf(" AND quantity <= $%d", argIdx)
		args = append(args, *pf.MaxQty)
		argIdx++
	}

	return query, args, argIdx
}
