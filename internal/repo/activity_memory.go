package repo

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shaikazeem2001/inventory/internal/models"
)

var errEmptyAction = errors.New("activity action must not be empty")

type InMemoryActivityRepository struct {
	mu   sync.RWMutex
	logs []models.ActivityLog
}

func NewInMemoryActivityRepository() *InMemoryActivityRepository {
	return &InMemoryActivityRepository{
		logs: []models.ActivityLog{},
	}
}

// Append inserts a new activity entry
func (r *InMemoryActivityRepository) Append(_ context.Context, l models.ActivityLog) (models.ActivityLog, error) {
	if l.Action == "" {
		return models.ActivityLog{}, errEmptyAction
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prepareLog(&l, time.Now().UTC())
	r.logs = append(r.logs, l)
	return l, nil
}

// List returns the most recent entries, newest first
func (r *InMemoryActivityRepository) List(_ context.Context, limit int) ([]models.ActivityLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit = logLimit(limit)
	out := make([]models.ActivityLog, 0, min(limit, len(r.logs)))
	for i := len(r.logs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.logs[i])
	}
	return out, nil
}

func (r *InMemoryActivityRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logs = []models.ActivityLog{}
}
