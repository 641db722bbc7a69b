package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	models "github.com/shaikazeem2001/inventory/internal/models"
	repo "github.com/shaikazeem2001/inventory/internal/repo"
)

const defaultPageSize = 10

func parseFloatPtr(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntPtr(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}

// positiveParam reads a query value that must be an integer >= 1, or def when it is absent.
func positiveParam(r *http.Request, name string, def int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return v, nil
}

// productFilter builds the filter shared by listing and export.
func productFilter(r *http.Request) (repo.ProductFilter, error) {
	q := r.URL.Query()

	filter := repo.ProductFilter{
		Keyword:  strings.TrimSpace(q.Get("keyword")),
		Category: strings.TrimSpace(q.Get("category")),
		MinPrice: parseFloatPtr(q.Get("minPrice")),
		MaxPrice: parseFloatPtr(q.Get("maxPrice")),
		MinQty:   parseIntPtr(q.Get("minQty")),
		MaxQty:   parseIntPtr(q.Get("maxQty")),
		Sort:     q.Get("sort"),
	}
	if !repo.ValidSort(filter.Sort) {
		return filter, fmt.Errorf("sort must be one of price_asc, price_desc, quantity_asc, quantity_desc")
	}
	return filter, nil
}

// GetProductsHandler godoc
// @Summary List products
// @Description Search, filter, sort and paginate products. Newest first unless sort is given.
// @Tags products
// @Produce json
// @Param keyword query string false "Case-insensitive name search"
// @Param category query string false "Exact category"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minQty query int false "Minimum quantity"
// @Param maxQty query int false "Maximum quantity"
// @Param sort query string false "price_asc|price_desc|quantity_asc|quantity_desc"
// @Param page query int false "Page, starting at 1"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {object} ProductsPage
// @Failure 400 {object} MessageResult "Invalid query"
// @Failure 500 {object} MessageResult "Internal error"
// @Router /api/products [get]
func GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	filter, err := productFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := positiveParam(r, "page", 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := positiveParam(r, "limit", defaultPageSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	offset := (page - 1) * limit
	filter.Offset = &offset
	filter.Limit = &limit

	products, total, err := productRepo.Filter(r.Context(), filter)
	if err != nil {
		log.Printf("failed to filter products: %v", err)
		writeError(w, http.StatusInternalServerError, "could not fetch products")
		return
	}

	respond(w, http.StatusOK, ProductsPage{
		Products: products,
		Page:     page,
		Pages:    (total + limit - 1) / limit,
		Total:    total,
	})
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {object} MessageResult "Not found"
// @Failure 500 {object} MessageResult "Internal error"
// @Router /api/products/{id} [get]
func GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	product, err := productRepo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not fetch product")
		return
	}
	respond(w, http.StatusOK, product)
}

// GetProductBySKUHandler godoc
// @Summary Get product by SKU
// @Description Used by the barcode/QR scanner.
// @Tags products
// @Produce json
// @Param sku path string true "Product SKU"
// @Success 200 {object} models.Product
// @Failure 404 {object} MessageResult "Not found"
// @Failure 500 {object} MessageResult "Internal error"
// @Router /api/products/sku/{sku} [get]
func GetProductBySKUHandler(w http.ResponseWriter, r *http.Request) {
	product, err := productRepo.GetBySKU(r.Context(), chi.URLParam(r, "sku"))
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not fetch product")
		return
	}
	respond(w, http.StatusOK, product)
}

// CreateProductHandler godoc
// @Summary Create a new product
// @Description Adds a product to the inventory
// @Tags products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} models.Product
// @Failure 400 {object} ValidationResult
// @Router /api/products [post]
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	if validationErrors := validateProduct(req, true); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, ValidationResult{Message: "invalid product", Errors: validationErrors})
		return
	}

	var product models.Product
	req.apply(&product)

	created, err := productRepo.Create(r.Context(), product)
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			writeError(w, http.StatusBadRequest, "SKU already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not create product")
		return
	}

	logActivity(r.Context(), principal(r), models.ActionCreateProduct,
		fmt.Sprintf("Created product: %s (%s)", created.Name, created.SKU))

	respond(w, http.StatusCreated, created)
}

// UpdateProductHandler godoc
// @Summary Update a product
// @Description Partial update: only the fields present in the body change.
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param product body ProductRequest true "Fields to change"
// @Success 200 {object} models.Product
// @Failure 400 {object} ValidationResult
// @Failure 404 {object} MessageResult "Not found"
// @Failure 500 {object} MessageResult "Internal error"
// @Router /api/products/{id} [put]
// @Security BearerAuth
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}

	if validationErrors := validateProduct(req, false); len(validationErrors) > 0 {
		respond(w, http.StatusBadRequest, ValidationResult{Message: "invalid product", Errors: validationErrors})
		return
	}

	product, err := productRepo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not fetch product")
		return
	}

	req.apply(&product)
	product.ApplyDefaults()
	product.UpdatedAt = time.Now().UTC()

	updated, err := productRepo.Update(r.Context(), product)
	if err != nil {
		switch {
		case errors.Is(err, repo.ErrProductNotFound):
			writeError(w, http.StatusNotFound, "Product not found")
		case errors.Is(err, repo.ErrDuplicatedValueUnique):
			writeError(w, http.StatusBadRequest, "SKU already exists")
		default:
			writeError(w, http.StatusInternalServerError, "could not update product")
		}
		return
	}

	logActivity(r.Context(), principal(r), models.ActionUpdateProduct,
		fmt.Sprintf("Updated product: %s (%s)", updated.Name, updated.SKU))

	if updated.LowStock(lowStockThreshold) {
		log.Printf("⚠️ Low stock alert: %q (SKU: %s) is running low on stock. Current quantity: %d",
			updated.Name, updated.SKU, updated.Quantity)
	}

	respond(w, http.StatusOK, updated)
}

// DeleteProductHandler godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} DeleteResult
// @Failure 404 {object} MessageResult "Not found"
// @Failure 500 {object} MessageResult "Internal error"
// @Router /api/products/{id} [delete]
// @Security BearerAuth
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := productRepo.GetByID(r.Context(), id)
	if err == nil {
		err = productRepo.Delete(r.Context(), id)
	}
	if err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "could not delete product")
		return
	}

	logActivity(r.Context(), principal(r), models.ActionDeleteProduct,
		fmt.Sprintf("Deleted product: %s (%s)", product.Name, product.SKU))

	respond(w, http.StatusOK, DeleteResult{ID: id})
}
