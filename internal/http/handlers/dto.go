package handlers

import "github.com/shaikazeem2001/inventory/internal/models"

// ProductRequest is the body of create and update calls. Fields left out of an update keep
// their stored value.
type ProductRequest struct {
	Name        *string  `json:"name"`
	SKU         *string  `json:"sku"`
	Category    *string  `json:"category"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"imageUrl"`
}

type ProductsPage struct {
	Products []models.Product `json:"products"`
	Page     int              `json:"page"`
	Pages    int              `json:"pages"`
	Total    int              `json:"total"`
}

type DeleteResult struct {
	ID string `json:"id"`
}

type MessageResult struct {
	Message string `json:"message"`
}

type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterAsAdminRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UserSummary struct {
	ID       string `json:"id,omitempty"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type RegisterResult struct {
	Message      string `json:"message"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type LoginResult struct {
	Token        string      `json:"token"`
	RefreshToken string      `json:"refresh_token"`
	User         UserSummary `json:"user"`
}

type RefreshResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type UserResult struct {
	Message string      `json:"message"`
	User    UserSummary `json:"user"`
}

func summarize(u models.User) UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username, Role: u.Role}
}
