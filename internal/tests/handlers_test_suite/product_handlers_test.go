package handlers_test_suite

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	handler "github.com/shaikazeem2001/inventory/internal/http/handlers"
	"github.com/shaikazeem2001/inventory/internal/http/router"
	"github.com/shaikazeem2001/inventory/internal/models"
)

func TestCreateProductHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := router.NewRouter()

	w := createProduct(r, productRequest("Laptop", "LAP-1", 1500.0, 1))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	resp, err := decode[models.Product](w.Body)
	if err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if resp.ID == "" {
		t.Error("expected an id")
	}
	if resp.Name != "Laptop" || resp.SKU != "LAP-1" {
		t.Errorf("unexpected product %+v", resp)
	}
	if resp.Category != models.DefaultCategory || resp.Description != models.DefaultDescription || resp.ImageURL != models.DefaultImageURL {
		t.Errorf("expected defaults to be applied, got %+v", resp)
	}

	logs, _ := activityRepo.List(t.Context(), 0)
	if len(logs) != 1 || logs[0].Action != models.ActionCreateProduct || logs[0].Username != "admin" {
		t.Fatalf("expected one CREATE_PRODUCT entry by admin, got %+v", logs)
	}
	if logs[0].Details != "Created product: Laptop (LAP-1)" {
		t.Errorf("unexpected details %q", logs[0].Details)
	}
}

func TestCreateProductHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := router.NewRouter()

	tests := []struct {
		name           string
		payload        handler.ProductRequest
		expectedErrors []string
	}{
		{
			name:           "Empty name and sku",
			payload:        handler.ProductRequest{Price: ptr(1.0)},
			expectedErrors: []string{"Name", "SKU"},
		},
		{
			name:           "Blank name only",
			payload:        productRequest("  ", "S-1", 100.0, 1),
			expectedErrors: []string{"Name"},
		},
		{
			name:           "Negative price",
			payload:        productRequest("Mouse", "M-1", -5.0, 1),
			expectedErrors: []string{"Price"},
		},
		{
			name:           "Negative quantity",
			payload:        productRequest("Keyboard", "K-1", 50.0, -1),
			expectedErrors: []string{"Quantity"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := createProduct(r, tt.payload)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}

			resp, err := decode[handler.ValidationResult](w.Body)
			if err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			if len(resp.Errors) != len(tt.expectedErrors) {
				t.Errorf("expected %d errors, got %+v", len(tt.expectedErrors), resp.Errors)
			}
			for _, field := range tt.expectedErrors {
				found := false
				for _, err := range resp.Errors {
					if strings.EqualFold(err.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, but not found", field)
				}
			}
		})
	}
}

func TestCreateProductHandler_DuplicateSKU(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := router.NewRouter()

	createProduct(r, productRequest("Laptop", "DUP-1", 10, 1))
	w := createProduct(r, productRequest("Other", "DUP-1", 20, 2))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 Bad Request, got %d", w.Code)
	}
	resp, _ := decode[handler.MessageResult](w.Body)
	if resp.Message != "SKU already exists" {
		t.Errorf("unexpected message %q", resp.Message)
	}
}

func TestCreateProductHandler_MalformedJSON(t *testing.T) {
	r := router.NewRouter()

	badJSON := `{"name": "Invalid" "price": 100}` // missing comma
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewBufferString(badJSON))
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 Bad Request, got %d", w.Code)
	}
}

func TestGetProductHandlers(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := router.NewRouter()

	created, _ := decode[models.Product](createProduct(r, productRequest("Scanner", "SCAN-1", 30, 4)).Body)

	t.Run("By ID", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/products/"+created.ID, "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		got, _ := decode[models.Product](w.Body)
		if got.SKU != "SCAN-1" {
			t.Errorf("expected SCAN-1, got %q", got.SKU)
		}
	})

	t.Run("By SKU", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/products/sku/SCAN-1", "", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		got, _ := decode[models.Product](w.Body)
		if got.ID != created.ID {
			t.Errorf("expected id %q, got %q", created.ID, got.ID)
		}
	})

	t.Run("Unknown ID", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/products/does-not-exist", "", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404 Not Found, got %d", w.Code)
		}
	})

	t.Run("Unknown SKU", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/products/sku/NOPE", "", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404 Not Found, got %d", w.Code)
		}
	})
}

func TestGetProductsHandler_FilterSortPaginate(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := router.NewRouter()

	for i := 1; i <= 12; i++ {
		p := productRequest(fmt.Sprintf("Item %02d", i), fmt.Sprintf("IT-%02d", i), float64(i), 100-i)
		if i%3 == 0 {
			p.Category = ptr("Tools")
		}
		createProduct(r, p)
	}
	createProduct(r, productRequest("Laptop Pro", "LP-1", 2000, 3))

	t.Run("Default page", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/products", "", nil)
		page, _ := decode[handler.ProductsPage](w.Body)
		if page.Total != 13 || page.Pages != 2 || page.Page != 1 || len(page.Products) != 10 {
			t.Errorf("unexpected page: total=%d pages=%d page=%d len=%d", page.Total, page.Pages, page.Page, len(page.Products))
		}
	})

	t.Run("Second page", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/products?page=2&limit=10", "", nil)
		page, _ := decode[handler.ProductsPage](w.Body)
		if len(page.Products) != 3 || page.Page != 2 {
			t.Errorf("expected 3 products on page 2, got %d", len(page.Products))
		}
	})

	t.Run("Keyword is case-insensitive", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/products?keyword=laptop", "", nil)
		page, _ := decode[handler.ProductsPage](w.Body)
		if page.Total != 1 || page.Products[0].SKU != "LP-1" {
			t.Errorf("expected only LP-1, got %+v", page.Products)
		}
	})

	t.Run("Category", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/products?category=Tools", "", nil)
		page, _ := decode[handler.ProductsPage](w.Body)
		if page.Total != 4 {
			t.Errorf("expected 4 tools, got %d", page.Total)
		}
	})

	t.Run("Sort by price descending", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/products?sort=price_desc&limit=2", "", nil)
		page, _ := decode[handler.ProductsPage](w.Body)
		if len(page.Products) != 2 || page.Products[0].SKU != "LP-1" || page.Products[1].SKU != "IT-12" {
			t.Errorf("unexpected order %+v", page.Products)
		}
	})

	t.Run("Sort by quantity ascending", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/products?sort=quantity_asc&limit=1", "", nil)
		page, _ := decode[handler.ProductsPage](w.Body)
		if len(page.Products) != 1 || page.Products[0].SKU != "LP-1" {
			t.Errorf("expected LP-1 first, got %+v", page.Products)
		}
	})

	invalid := []string{"page=0", "limit=-1", "page=abc", "sort=name"}
	for _, q := range invalid {
		t.Run("Invalid "+q, func(t *testing.T) {
			w := doJSON(r, http.MethodGet, "/api/products?"+q, "", nil)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400 Bad Request, got %d", w.Code)
			}
		})
	}
}

func TestUpdateProductHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := router.NewRouter()

	created, _ := decode[models.Product](createProduct(r, productRequest("Chair", "CH-1", 40, 20)).Body)
	createProduct(r, productRequest("Desk", "DK-1", 90, 5))

	t.Run("Partial update keeps other fields", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/api/products/"+created.ID, token, handler.ProductRequest{Quantity: ptr(3)})
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
		}
		got, _ := decode[models.Product](w.Body)
		if got.Quantity != 3 || got.Name != "Chair" || got.Price != 40 || got.SKU != "CH-1" {
			t.Errorf("unexpected product after update %+v", got)
		}
		if got.UpdatedAt.Before(created.UpdatedAt) {
			t.Errorf("updatedAt went backwards")
		}
	})

	t.Run("Taking another SKU fails", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/api/products/"+created.ID, token, handler.ProductRequest{SKU: ptr("DK-1")})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 Bad Request, got %d", w.Code)
		}
	})

	t.Run("Blank name fails validation", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/api/products/"+created.ID, token, handler.ProductRequest{Name: ptr("")})
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 Bad Request, got %d", w.Code)
		}
	})

	t.Run("Unknown product", func(t *testing.T) {
		w := doJSON(r, http.MethodPut, "/api/products/missing", token, handler.ProductRequest{Quantity: ptr(1)})
		if w.Code != http.StatusNotFound {
			t.Errorf("expected 404 Not Found, got %d", w.Code)
		}
	})

	t.Run("Update is logged", func(t *testing.T) {
		logs, _ := activityRepo.List(t.Context(), 1)
		if len(logs) != 1 || logs[0].Action != models.ActionUpdateProduct {
			t.Errorf("expected UPDATE_PRODUCT as newest entry, got %+v", logs)
		}
	})
}

func TestDeleteProductHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := router.NewRouter()

	created, _ := decode[models.Product](createProduct(r, productRequest("Lamp", "LM-1", 15, 2)).Body)

	w := doJSON(r, http.MethodDelete, "/api/products/"+created.ID, token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	resp, _ := decode[handler.DeleteResult](w.Body)
	if resp.ID != created.ID {
		t.Errorf("expected id %q, got %q", created.ID, resp.ID)
	}

	w = doJSON(r, http.MethodGet, "/api/products/"+created.ID, "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected deleted product to be gone, got %d", w.Code)
	}

	w = doJSON(r, http.MethodDelete, "/api/products/"+created.ID, token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 on second delete, got %d", w.Code)
	}

	logs, _ := activityRepo.List(t.Context(), 1)
	if len(logs) != 1 || logs[0].Details != "Deleted product: Lamp (LM-1)" {
		t.Errorf("unexpected newest log %+v", logs)
	}
}
