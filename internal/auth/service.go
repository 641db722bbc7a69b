package auth

import (
	"context"
	"time"

	"github.com/shaikazeem2001/inventory/internal/models"
)

type TokenPair struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthService issues access/refresh token pairs.
type AuthService struct {
	store      RefreshStore
	refreshTTL time.Duration
}

func NewAuthService(store RefreshStore, refreshTTL time.Duration) *AuthService {
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{store: store, refreshTTL: refreshTTL}
}

func (a *AuthService) Issue(ctx context.Context, user models.User) (TokenPair, error) {
	token, err := GenerateToken(user)
	if err != nil {
		return TokenPair{}, err
	}

	refresh := NewRefreshToken()
	if err := a.store.Save(ctx, refresh, user.Username, a.refreshTTL); err != nil {
		return TokenPair{}, err
	}
	return TokenPair{Token: token, RefreshToken: refresh}, nil
}

// Rotate consumes a refresh token and returns the username it belonged to. The caller issues a
// new pair for that user.
func (a *AuthService) Rotate(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", ErrRefreshTokenNotFound
	}
	return a.store.Consume(ctx, refreshToken)
}

func (a *AuthService) Store() RefreshStore {
	return a.store
}
