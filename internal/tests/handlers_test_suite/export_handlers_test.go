package handlers_test_suite

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strings"
	"testing"

	"github.com/shaikazeem2001/inventory/internal/http/router"
	"github.com/xuri/excelize/v2"
)

func TestExportProductsHandler(t *testing.T) {
	t.Cleanup(clearAllProducts)
	r := router.NewRouter()

	createProduct(r, productRequest("Hammer", "HM-1", 12.5, 3))
	createProduct(r, productRequest("Saw", "SW-1", 20, 40))

	t.Run("CSV by default", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/products/export", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
			t.Errorf("unexpected content type %q", ct)
		}
		if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "attachment;") || !strings.Contains(cd, ".csv") {
			t.Errorf("unexpected content disposition %q", cd)
		}

		records, err := csv.NewReader(w.Body).ReadAll()
		if err != nil {
			t.Fatalf("reading export: %v", err)
		}
		if len(records) != 3 {
			t.Fatalf("expected header and 2 rows, got %d", len(records))
		}
		if strings.Join(records[0], ",") != "Name,SKU,Category,Price,Quantity,Description" {
			t.Errorf("unexpected header %v", records[0])
		}
	})

	t.Run("Keyword filter", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/products/export?keyword=ham", token, nil)
		records, _ := csv.NewReader(w.Body).ReadAll()
		if len(records) != 2 || records[1][1] != "HM-1" {
			t.Errorf("expected only HM-1, got %v", records)
		}
	})

	t.Run("XLSX marks low stock", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/products/export?format=xlsx&sort=price_asc", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
		if err != nil {
			t.Fatalf("opening workbook: %v", err)
		}
		defer f.Close()

		rows, err := f.GetRows("Products")
		if err != nil {
			t.Fatalf("reading sheet: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(rows))
		}
		if rows[1][0] != "Hammer" || rows[1][5] != "Low Stock" || rows[2][5] != "In Stock" {
			t.Errorf("unexpected rows %v", rows)
		}
	})

	t.Run("PDF", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/products/export?format=pdf", token, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		if !bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")) {
			t.Error("expected a PDF document")
		}
	})

	t.Run("Unknown format", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/products/export?format=docx", token, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected 400 Bad Request, got %d", w.Code)
		}
	})

	t.Run("Requires token", func(t *testing.T) {
		w := doJSON(r, http.MethodGet, "/api/products/export", "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("expected 401 Unauthorized, got %d", w.Code)
		}
	})
}
