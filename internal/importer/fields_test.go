package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaikazeem2001/inventory/internal/models"
)

func row(header []string, values ...string) Row {
	return Row{Header: header, Values: values}
}

func TestFieldsTable(t *testing.T) {
	seen := map[string]bool{}
	for _, f := range Fields {
		assert.NotEmpty(t, f.Aliases, f.Name)
		assert.NotNil(t, f.Assign, f.Name)
		assert.NotNil(t, f.Default, f.Name)
		assert.False(t, seen[f.Name], "duplicate field %s", f.Name)
		seen[f.Name] = true
	}

	for _, name := range []string{"name", "sku", "category", "price", "quantity", "description", "imageUrl"} {
		_, ok := FieldByName(name)
		assert.True(t, ok, name)
	}
}

func TestResolvePriority(t *testing.T) {
	name, _ := FieldByName("name")

	t.Run("first alias wins", func(t *testing.T) {
		r := row([]string{"title", "name"}, "Title value", "Name value")
		assert.Equal(t, "Name value", name.Resolve(r, 1, 0))
	})

	t.Run("empty alias falls through", func(t *testing.T) {
		r := row([]string{"name", "Product"}, "  ", "Widget")
		assert.Equal(t, "Widget", name.Resolve(r, 1, 0))
	})

	t.Run("falls back to first column", func(t *testing.T) {
		r := row([]string{"Label", "Code"}, " Gadget ", "G1")
		assert.Equal(t, "Gadget", name.Resolve(r, 1, 0))
	})

	t.Run("aliases are exact case variants", func(t *testing.T) {
		r := row([]string{"sku", "nAmE"}, "S1", "Mixed")
		assert.Equal(t, "S1", name.Resolve(r, 1, 0))
	})
}

func TestResolveDefaults(t *testing.T) {
	r := row([]string{"name"}, "Widget")

	category, _ := FieldByName("category")
	description, _ := FieldByName("description")
	image, _ := FieldByName("imageUrl")
	sku, _ := FieldByName("sku")

	assert.Equal(t, models.DefaultCategory, category.Resolve(r, 1, 0))
	assert.Equal(t, models.DefaultDescription, description.Resolve(r, 1, 0))
	assert.Equal(t, models.DefaultImageURL, image.Resolve(r, 1, 0))
	assert.Equal(t, "SKU-1700000000000-3", sku.Resolve(r, 3, 1700000000000))
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"9.99", 9.99},
		{" 12 ", 12},
		{"", 0},
		{"abc", 0},
		{"-5", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"1e2", 100},
		{"9.99 USD", 9.99},
		{"1,000", 1},
		{".5", 0.5},
		{"7.", 7},
		{"+3", 3},
		{"2e", 2},
		{"2e+1x", 20},
		{"1e999", 0},
		{"$5", 0},
		{"-0.5 off", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePrice(tt.in))
		})
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"7", 7},
		{"12.7", 12},
		{"", 0},
		{"lots", 0},
		{"-3", 0},
		{"99999999999", 0},
		{"12 pcs", 12},
		{"1e3", 1},
		{"+4", 4},
		{"2147483647", 2147483647},
		{"2147483648", 0},
		{"-0", 0},
		{".9", 0},
		{"x12", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseQuantity(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("widget", func(t *testing.T) {
		p, ok := Normalize(row([]string{"Product", "Code", "Price"}, "Widget", "W1", "9.99"), 1, 0)
		require.True(t, ok)
		assert.Equal(t, models.Product{
			Name:        "Widget",
			SKU:         "W1",
			Category:    models.DefaultCategory,
			Price:       9.99,
			Quantity:    0,
			Description: models.DefaultDescription,
			ImageURL:    models.DefaultImageURL,
		}, p)
	})

	t.Run("empty name is skipped", func(t *testing.T) {
		_, ok := Normalize(row([]string{"name", "sku"}, "   ", "S1"), 1, 0)
		assert.False(t, ok)
	})

	t.Run("no name anywhere and empty first column", func(t *testing.T) {
		_, ok := Normalize(row([]string{"sku", "price"}, "", "3"), 1, 0)
		assert.False(t, ok)
	})

	t.Run("short record", func(t *testing.T) {
		p, ok := Normalize(row([]string{"name", "sku", "qty"}, "Bolt"), 4, 10)
		require.True(t, ok)
		assert.Equal(t, "SKU-10-4", p.SKU)
		assert.Equal(t, 0, p.Quantity)
	})

	t.Run("bad numbers default to zero", func(t *testing.T) {
		p, ok := Normalize(row([]string{"name", "cost", "stock"}, "Nut", "cheap", "many"), 1, 0)
		require.True(t, ok)
		assert.Zero(t, p.Price)
		assert.Zero(t, p.Quantity)
	})

	t.Run("values are trimmed", func(t *testing.T) {
		p, ok := Normalize(row([]string{"name", "SKU", "type", "desc", "image"}, " Washer ", " W-9 ", " Parts ", " small ", " http://img "), 1, 0)
		require.True(t, ok)
		assert.Equal(t, "Washer", p.Name)
		assert.Equal(t, "W-9", p.SKU)
		assert.Equal(t, "Parts", p.Category)
		assert.Equal(t, "small", p.Description)
		assert.Equal(t, "http://img", p.ImageURL)
	})
}
