package handlers_integrated_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/shaikazeem2001/inventory/internal/http/router"
	"github.com/shaikazeem2001/inventory/internal/importer"
)

var setupErr error

func TestMain(m *testing.M) {
	if os.Getenv(databaseURLEnv) != "" {
		setupErr = setup()
	}
	code := m.Run()
	if database != nil {
		clearAll()
		database.Close()
	}
	os.Exit(code)
}

func requireDatabase(t *testing.T) {
	t.Helper()
	if os.Getenv(databaseURLEnv) == "" {
		t.Skipf("%s not set", databaseURLEnv)
	}
	if setupErr != nil {
		t.Fatalf("setup failed: %v", setupErr)
	}
}

func TestImportProductsHandler_Postgres(t *testing.T) {
	requireDatabase(t)
	t.Cleanup(clearAll)
	r := router.NewRouter()

	var b strings.Builder
	b.WriteString("Product,SKU,Type,Cost,Stock\n")
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&b, "Bolt %d,PG-%d,Hardware,0.%d5,%d\n", i, i, i, i*100)
	}
	csv := b.String()

	w := importCSV(r, csv)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}
	var first importer.SuccessResponse
	if err := json.NewDecoder(w.Body).Decode(&first); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if first.Imported != 5 {
		t.Errorf("expected 5 imported, got %d", first.Imported)
	}
	if first.Products[0].Category != "Hardware" || first.Products[0].Quantity != 100 {
		t.Errorf("unexpected first product %+v", first.Products[0])
	}

	t.Run("Conflicting rows are skipped, not fatal", func(t *testing.T) {
		w := importCSV(r, csv+"Bolt 6,PG-6,Hardware,1,1\n")
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
		}
		var resp importer.SuccessResponse
		json.NewDecoder(w.Body).Decode(&resp)
		if resp.Imported != 1 || resp.Skipped != 5 {
			t.Errorf("expected imported 1 skipped 5, got %+v", resp)
		}
	})

	t.Run("One BULK_CREATE entry per import", func(t *testing.T) {
		var n int
		err := database.QueryRow(`SELECT COUNT(*) FROM activity_logs WHERE action = 'BULK_CREATE'`).Scan(&n)
		if err != nil {
			t.Fatalf("query failed: %v", err)
		}
		if n != 2 {
			t.Errorf("expected 2 entries, got %d", n)
		}
	})
}
