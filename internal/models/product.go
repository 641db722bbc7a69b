package models

import "time"

const (
	DefaultCategory    = "Uncategorized"
	DefaultDescription = "No description"
	DefaultImageURL    = "https://via.placeholder.com/300"
)

// Product represents a product entity in the inventory system.
type Product struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	SKU         string    `json:"sku" bson:"sku"`
	Category    string    `json:"category" bson:"category"`
	Price       float64   `json:"price" bson:"price"`
	Quantity    int       `json:"quantity" bson:"quantity"`
	Description string    `json:"description" bson:"description"`
	ImageURL    string    `json:"imageUrl" bson:"image_url"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// ApplyDefaults fills the optional fields a product may be created without.
func (p *Product) ApplyDefaults() {
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	if p.Description == "" {
		p.Description = DefaultDescription
	}
	if p.ImageURL == "" {
		p.ImageURL = DefaultImageURL
	}
}

func (p Product) LowStock(threshold int) bool {
	return p.Quantity < threshold
}
