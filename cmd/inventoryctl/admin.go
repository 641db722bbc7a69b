package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/shaikazeem2001/inventory/internal/models"
	"github.com/shaikazeem2001/inventory/internal/repo"
)

const adminUsername = "admin"

var sampleProduct = models.Product{
	Name:        "Sample Laptop",
	SKU:         "LAPTOP-001",
	Category:    "Electronics",
	Price:       999.99,
	Quantity:    50,
	Description: "High-performance laptop for work and gaming",
	ImageURL:    models.DefaultImageURL,
}

func newSetupAdminCmd(a *app) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "setup-admin",
		Short: "Create the admin user and a sample product when missing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return setupAdmin(cmd.Context(), a.stores, password, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&password, "password", "admin123", "Password for a newly created admin user")
	return cmd
}

func setupAdmin(ctx context.Context, stores *repo.Stores, password string, out io.Writer) error {
	users, err := stores.Users.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	fmt.Fprintf(out, "\n📊 Existing users: %d\n", len(users))
	for _, u := range users {
		fmt.Fprintf(out, "  - %s (role: %s)\n", u.Username, u.Role)
	}

	admin, err := stores.Users.GetByUsername(ctx, adminUsername)
	switch {
	case errors.Is(err, repo.ErrUserNotFound):
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		admin, err = stores.Users.CreateUser(ctx, models.User{
			Username:     adminUsername,
			PasswordHash: string(hashed),
			Role:         models.RoleAdmin,
		})
		if err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		fmt.Fprintln(out, "\n✅ Admin user created!")
	case err != nil:
		return fmt.Errorf("failed to look up admin user: %w", err)
	default:
		fmt.Fprintln(out, "\n✅ Admin user already exists")
	}
	fmt.Fprintf(out, "   Username: %s\n   Role: %s\n", admin.Username, admin.Role)

	products, err := stores.Products.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}
	fmt.Fprintf(out, "\n📦 Total products in database: %d\n", len(products))
	if len(products) == 0 {
		if _, err := stores.Products.Create(ctx, sampleProduct); err != nil {
			return fmt.Errorf("failed to create sample product: %w", err)
		}
		fmt.Fprintln(out, "✅ Sample product created")
	}

	fmt.Fprintln(out, "\n✅ Database setup complete!")
	return nil
}

func newPromoteAdminCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "promote-admin <username>",
		Short: "Give an existing user the admin role",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return promoteAdmin(cmd.Context(), a.stores.Users, args[0], cmd.OutOrStdout())
		},
	}
}

func promoteAdmin(ctx context.Context, users repo.UserRepository, username string, out io.Writer) error {
	user, err := users.SetRole(ctx, username, models.RoleAdmin)
	if errors.Is(err, repo.ErrUserNotFound) {
		return fmt.Errorf("user %q not found", username)
	}
	if err != nil {
		return fmt.Errorf("failed to promote %q: %w", username, err)
	}
	fmt.Fprintf(out, "✅ User promoted!\n   Username: %s\n   Role: %s\n", user.Username, user.Role)
	return nil
}
