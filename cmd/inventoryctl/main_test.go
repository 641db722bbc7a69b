package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/shaikazeem2001/inventory/internal/models"
	"github.com/shaikazeem2001/inventory/internal/repo"
	"github.com/shaikazeem2001/inventory/internal/upload"
)

func TestSetupAdmin(t *testing.T) {
	ctx := context.Background()
	stores := repo.NewInMemoryStores()

	var out bytes.Buffer
	require.NoError(t, setupAdmin(ctx, stores, "s3cret!", &out))
	assert.Contains(t, out.String(), "Admin user created")
	assert.Contains(t, out.String(), "Sample product created")

	admin, err := stores.Users.GetByUsername(ctx, adminUsername)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("s3cret!")))

	product, err := stores.Products.GetBySKU(ctx, "LAPTOP-001")
	require.NoError(t, err)
	assert.Equal(t, "Sample Laptop", product.Name)

	t.Run("second run changes nothing", func(t *testing.T) {
		out.Reset()
		require.NoError(t, setupAdmin(ctx, stores, "other", &out))
		assert.Contains(t, out.String(), "Admin user already exists")
		assert.Contains(t, out.String(), "admin (role: admin)")
		assert.NotContains(t, out.String(), "Sample product created")

		products, err := stores.Products.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, products, 1)
	})
}

func TestPromoteAdmin(t *testing.T) {
	ctx := context.Background()
	users := repo.NewInMemoryUserRepository()
	_, err := users.CreateUser(ctx, models.User{Username: "carol", Role: models.RoleUser})
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, promoteAdmin(ctx, users, "carol", &out))
	assert.Contains(t, out.String(), "Role: admin")

	err = promoteAdmin(ctx, users, "nobody", &out)
	assert.ErrorContains(t, err, `"nobody" not found`)
}

func TestImportFile(t *testing.T) {
	ctx := context.Background()
	stores := repo.NewInMemoryStores()
	_, err := stores.Users.CreateUser(ctx, models.User{Username: "admin", Role: models.RoleAdmin})
	require.NoError(t, err)

	dir := t.TempDir()
	path := filepath.Join(dir, "products.csv")
	require.NoError(t, os.WriteFile(path, []byte("Product,Code,Price\nWidget,W-1,2.50\nGadget,G-1,4\n"), 0o644))

	store := upload.NewStore(filepath.Join(dir, "uploads"), 1<<20)

	var out bytes.Buffer
	require.NoError(t, importFile(ctx, stores, store, path, "admin", &out))
	assert.Contains(t, out.String(), `"imported": 2`)

	logs, err := stores.Activity.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActionBulkCreate, logs[0].Action)
	assert.Equal(t, "admin", logs[0].Username)

	entries, err := os.ReadDir(filepath.Join(dir, "uploads"))
	require.NoError(t, err)
	assert.Empty(t, entries, "stored copy is released after the import")

	t.Run("unknown user", func(t *testing.T) {
		err := importFile(ctx, stores, store, path, "ghost", &out)
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("reimport skips existing skus", func(t *testing.T) {
		out.Reset()
		err := importFile(ctx, stores, store, path, "admin", &out)
		require.NoError(t, err)
		assert.Contains(t, out.String(), `"skipped": 2`)
	})
}
