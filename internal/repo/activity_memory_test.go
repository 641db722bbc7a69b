package repo

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaikazeem2001/inventory/internal/models"
)

func TestInMemoryActivityNewestFirst(t *testing.T) {
	r := NewInMemoryActivityRepository()
	ctx := context.Background()

	for i := range 3 {
		_, err := r.Append(ctx, models.ActivityLog{Username: "admin", Action: models.ActionCreateProduct, Details: fmt.Sprint(i)})
		require.NoError(t, err)
	}

	logs, err := r.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, "2", logs[0].Details)
	assert.Equal(t, "1", logs[1].Details)

	all, _ := r.List(ctx, 0)
	assert.Len(t, all, 3)

	_, err = r.Append(ctx, models.ActivityLog{})
	assert.Error(t, err)
}

func TestInMemoryActivityAcceptsUnknownActions(t *testing.T) {
	r := NewInMemoryActivityRepository()
	l, err := r.Append(context.Background(), models.ActivityLog{Action: "EXPORT"})
	require.NoError(t, err)
	assert.NotEmpty(t, l.ID)
	assert.False(t, l.CreatedAt.IsZero())
}
