package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/shaikazeem2001/inventory/internal/importer"
	"github.com/shaikazeem2001/inventory/internal/upload"
)

// ImportProductsHandler godoc
// @Summary Import products via CSV
// @Description Header aliases are resolved per field (name/product/title/item, sku/code, category/type, ...).
// @Description Rows without a name are skipped; rows whose SKU already exists are skipped by the store.
// @Tags import
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file"
// @Success 201 {object} importer.SuccessResponse
// @Failure 400 {object} importer.RejectedResponse "No file, not a CSV, too large, or no valid rows"
// @Failure 401 {object} MessageResult "Not authenticated"
// @Failure 403 {object} MessageResult "Not an admin"
// @Failure 500 {object} importer.ErrorResponse "Internal error"
// @Router /api/products/import [post]
// @Security BearerAuth
func ImportProductsHandler(w http.ResponseWriter, r *http.Request) {
	file, err := uploadStore.ReceiveCSV(w, r)
	if err != nil {
		if errors.Is(err, upload.ErrNoFile) || errors.Is(err, upload.ErrNotCSV) || errors.Is(err, upload.ErrTooLarge) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("Failed to receive upload: %v", err)
		respond(w, http.StatusInternalServerError, importer.ErrorResponse{
			Message: "Error importing products",
			Error:   err.Error(),
		})
		return
	}

	p := principal(r)
	report := productImporter.RunSource(r.Context(), file, importer.Actor{
		UserID:   p.UserID,
		Username: p.Username,
	})
	respond(w, report.Status, report.Body)
}
