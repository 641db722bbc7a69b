package repo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaikazeem2001/inventory/internal/models"
)

func TestInMemoryUsers(t *testing.T) {
	r := NewInMemoryUserRepository()
	ctx := context.Background()

	u, err := r.CreateUser(ctx, models.User{Username: "alice", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.NotEmpty(t, u.ID)

	_, err = r.CreateUser(ctx, models.User{Username: "alice"})
	assert.ErrorIs(t, err, ErrDuplicatedValueUnique)

	_, err = r.GetByUsername(ctx, "bob")
	assert.ErrorIs(t, err, ErrUserNotFound)

	promoted, err := r.SetRole(ctx, "alice", models.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin())

	_, err = r.SetRole(ctx, "bob", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrUserNotFound)

	users, err := r.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	r.Reset()
	users, _ = r.List(ctx)
	assert.Empty(t, users)
}
