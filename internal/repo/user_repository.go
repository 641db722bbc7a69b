package repo

import (
	"context"

	"github.com/shaikazeem2001/inventory/internal/models"
)

type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	SetRole(ctx context.Context, username, role string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
}
