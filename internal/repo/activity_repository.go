package repo

import (
	"context"

	"github.com/shaikazeem2001/inventory/internal/models"
)

// DefaultLogLimit caps List when the caller asks for no limit.
const DefaultLogLimit = 100

type ActivityRepository interface {
	Append(ctx context.Context, l models.ActivityLog) (models.ActivityLog, error)
	List(ctx context.Context, limit int) ([]models.ActivityLog, error)
}

func logLimit(limit int) int {
	if limit <= 0 {
		return DefaultLogLimit
	}
	return min(limit, DefaultLogLimit)
}
