package handlers

import (
	"strings"

	"github.com/shaikazeem2001/inventory/internal/models"
)

type ProductValidationError struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

type ValidationResult struct {
	Message string                   `json:"message"`
	Errors  []ProductValidationError `json:"errors"`
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func validateProduct(p ProductRequest, creating bool) []ProductValidationError {
	errs := []ProductValidationError{}
	if (creating || p.Name != nil) && blank(p.Name) {
		errs = append(errs, ProductValidationError{Field: "Name", Description: "Name is required"})
	}
	if (creating || p.SKU != nil) && blank(p.SKU) {
		errs = append(errs, ProductValidationError{Field: "SKU", Description: "SKU is required"})
	}
	if p.Price != nil && *p.Price < 0 {
		errs = append(errs, ProductValidationError{Field: "Price", Description: "Price cannot be negative"})
	}
	if p.Quantity != nil && *p.Quantity < 0 {
		errs = append(errs, ProductValidationError{Field: "Quantity", Description: "Quantity cannot be negative"})
	}
	return errs
}

// apply copies the fields present in p onto product.
func (p ProductRequest) apply(product *models.Product) {
	if p.Name != nil {
		product.Name = strings.TrimSpace(*p.Name)
	}
	if p.SKU != nil {
		product.SKU = strings.TrimSpace(*p.SKU)
	}
	if p.Category != nil {
		product.Category = strings.TrimSpace(*p.Category)
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Quantity != nil {
		product.Quantity = *p.Quantity
	}
	if p.Description != nil {
		product.Description = *p.Description
	}
	if p.ImageURL != nil {
		product.ImageURL = *p.ImageURL
	}
}

func validateCredentials(c CredentialsRequest) string {
	if c.Username == "" || c.Password == "" {
		return "Missing credentials"
	}
	if len(c.Username) < 3 || len(c.Password) < 6 {
		return "username or password too short"
	}
	return ""
}
