package importer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shaikazeem2001/inventory/internal/models"
)

// maxQuantity matches the INTEGER column products.quantity is stored in.
const maxQuantity = math.MaxInt32

// Field maps a set of accepted CSV headers onto one product attribute. Aliases are tried in
// order and the first non-empty value wins; Default supplies the value when none match.
type Field struct {
	Name    string
	Aliases []string
	Default func(r Row, index int, stamp int64) string
	Assign  func(p *models.Product, value string)
}

func constant(v string) func(Row, int, int64) string {
	return func(Row, int, int64) string { return v }
}

// SynthesizeSKU builds the sku given to rows without one. stamp is fixed for one import run, so
// index alone keeps the result unique within that run.
func SynthesizeSKU(stamp int64, index int) string {
	return fmt.Sprintf("SKU-%d-%d", stamp, index)
}

// Fields is the alias table consulted by Normalize, in resolution order.
var Fields = []Field{
	{
		Name: "name",
		Aliases: []string{
			"name", "Name", "NAME",
			"product", "Product", "PRODUCT",
			"title", "Title", "TITLE",
			"item", "Item", "ITEM",
		},
		Default: func(r Row, _ int, _ int64) string { return r.First() },
		Assign:  func(p *models.Product, v string) { p.Name = v },
	},
	{
		Name:    "sku",
		Aliases: []string{"sku", "SKU", "code", "Code"},
		Default: func(_ Row, index int, stamp int64) string { return SynthesizeSKU(stamp, index) },
		Assign:  func(p *models.Product, v string) { p.SKU = v },
	},
	{
		Name:    "category",
		Aliases: []string{"category", "Category", "CATEGORY", "type", "Type", "TYPE"},
		Default: constant(models.DefaultCategory),
		Assign:  func(p *models.Product, v string) { p.Category = v },
	},
	{
		Name:    "price",
		Aliases: []string{"price", "Price", "PRICE", "cost", "Cost"},
		Default: constant("0"),
		Assign:  func(p *models.Product, v string) { p.Price = ParsePrice(v) },
	},
	{
		Name:    "quantity",
		Aliases: []string{"quantity", "Quantity", "QUANTITY", "stock", "Stock", "qty"},
		Default: constant("0"),
		Assign:  func(p *models.Product, v string) { p.Quantity = ParseQuantity(v) },
	},
	{
		Name:    "description",
		Aliases: []string{"description", "Description", "desc", "Desc"},
		Default: constant(models.DefaultDescription),
		Assign:  func(p *models.Product, v string) { p.Description = v },
	},
	{
		Name:    "imageUrl",
		Aliases: []string{"imageUrl", "imageurl", "ImageUrl", "image", "Image"},
		Default: constant(models.DefaultImageURL),
		Assign:  func(p *models.Product, v string) { p.ImageURL = v },
	},
}

// FieldByName returns the alias table entry for a canonical field name.
func FieldByName(name string) (Field, bool) {
	for _, f := range Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Resolve returns the trimmed value for f from r, falling back to f.Default.
func (f Field) Resolve(r Row, index int, stamp int64) string {
	for _, alias := range f.Aliases {
		if v, ok := r.Get(alias); ok {
			return v
		}
	}
	if f.Default == nil {
		return ""
	}
	return strings.TrimSpace(f.Default(r, index, stamp))
}

// digits returns how many ASCII digits s starts with.
func digits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

func sign(s string) int {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		return 1
	}
	return 0
}

// floatPrefix returns the longest leading decimal number of s: sign, digits, fraction and an
// exponent that carries at least one digit. "" when s does not start with a number.
func floatPrefix(s string) string {
	i := sign(s)
	intDigits := digits(s[i:])
	i += intDigits

	fracDigits := 0
	if i < len(s) && s[i] == '.' {
		fracDigits = digits(s[i+1:])
		if intDigits > 0 || fracDigits > 0 {
			i += 1 + fracDigits
		}
	}
	if intDigits == 0 && fracDigits == 0 {
		return ""
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		j += sign(s[j:])
		if d := digits(s[j:]); d > 0 {
			i = j + d
		}
	}
	return s[:i]
}

// intPrefix returns the leading optionally signed run of digits of s.
func intPrefix(s string) string {
	i := sign(s)
	d := digits(s[i:])
	if d == 0 {
		return ""
	}
	return s[:i+d]
}

// ParsePrice reads the number a cell starts with ("9.99 USD" is 9.99, "1,000" is 1). Cells that
// do not start with a number, and negative or non-finite values, become 0.
func ParsePrice(s string) float64 {
	v, err := strconv.ParseFloat(floatPrefix(strings.TrimSpace(s)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ParseQuantity reads the integer a cell starts with, so "12.7" and "12 pcs" are 12 and "1e3"
// is 1. Negative values, values above MaxInt32 and cells without a leading integer become 0.
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(intPrefix(strings.TrimSpace(s)))
	if err != nil || n < 0 || n > maxQuantity {
		return 0
	}
	return n
}
