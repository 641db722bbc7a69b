package repo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shaikazeem2001/inventory/internal/models"
)

type PostgresActivityRepository struct {
	db *sql.DB
}

func NewPostgresActivityRepository(db *sql.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

// Append inserts a new activity entry
func (r *PostgresActivityRepository) Append(ctx context.Context, l models.ActivityLog) (models.ActivityLog, error) {
	if l.Action == "" {
		return models.ActivityLog{}, errEmptyAction
	}
	prepareLog(&l, time.Now().UTC())

	query := `INSERT INTO activity_logs (id, user_id, username, action, details, created_at) VALUES ($1, $2, $3, $4, $5, $6)`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := r.db.ExecContext(ctx, query, l.ID, l.UserID, l.Username, l.Action, l.Details, l.CreatedAt); err != nil {
		return models.ActivityLog{}, fmt.Errorf("failed to insert activity log: %w", err)
	}
	return l, nil
}

// List returns the most recent entries, newest first
func (r *PostgresActivityRepository) List(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	query := `SELECT id, user_id, username, action, details, created_at
		FROM activity_logs
		ORDER BY created_at DESC
		LIMIT $1`
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, logLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []models.ActivityLog{}
	for rows.Next() {
		var l models.ActivityLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Username, &l.Action, &l.Details, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}
