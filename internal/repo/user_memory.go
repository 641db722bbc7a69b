package repo

import (
	"context"
	"sync"
	"time"

	"github.com/shaikazeem2001/inventory/internal/models"
)

type InMemoryUserRepository struct {
	mu    sync.RWMutex
	users []models.User
}

func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{
		users: []models.User{},
	}
}

func (r *InMemoryUserRepository) GetByUsername(_ context.Context, username string) (models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Username == username {
			return user, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) CreateUser(_ context.Context, u models.User) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Username == u.Username {
			return models.User{}, ErrDuplicatedValueUnique
		}
	}

	prepareUser(&u, time.Now().UTC())
	r.users = append(r.users, u)
	return u, nil
}

func (r *InMemoryUserRepository) SetRole(_ context.Context, username, role string) (models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, user := range r.users {
		if user.Username == username {
			r.users[i].Role = role
			r.users[i].UpdatedAt = time.Now().UTC()
			return r.users[i], nil
		}
	}
	return models.User{}, ErrUserNotFound
}

func (r *InMemoryUserRepository) List(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.User, len(r.users))
	copy(out, r.users)
	return out, nil
}

// Reset drops every user except the given usernames.
func (r *InMemoryUserRepository) Reset(keep ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := []models.User{}
	for _, u := range r.users {
		for _, name := range keep {
			if u.Username == name {
				kept = append(kept, u)
				break
			}
		}
	}
	r.users = kept
}
