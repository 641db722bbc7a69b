package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/shaikazeem2001/inventory/internal/export"
)

// ExportProductsHandler godoc
// @Summary Export products
// @Description Downloads the filtered product list as CSV, XLSX or PDF.
// @Tags export
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Param format query string false "csv|xlsx|pdf (default csv)"
// @Param keyword query string false "Case-insensitive name search"
// @Param category query string false "Exact category"
// @Success 200 {file} file
// @Failure 400 {object} MessageResult "Invalid query"
// @Failure 500 {object} MessageResult "Internal error"
// @Router /api/products/export [get]
// @Security BearerAuth
func ExportProductsHandler(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter, err := productFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	products, _, err := productRepo.Filter(r.Context(), filter)
	if err != nil {
		log.Printf("failed to filter products for export: %v", err)
		writeError(w, http.StatusInternalServerError, "could not fetch products")
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, products, lowStockThreshold); err != nil {
		log.Printf("failed to render %s export: %v", format, err)
		writeError(w, http.StatusInternalServerError, "could not export products")
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename(time.Now())))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Failed to write export: %v", err)
	}
}
