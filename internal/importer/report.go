package importer

import (
	"fmt"
	"net/http"

	"github.com/shaikazeem2001/inventory/internal/models"
)

const noValidRowsMessage = "No valid products found in CSV. Check that your CSV has columns: name, sku, category (required). Price and quantity are optional."

type SuccessResponse struct {
	Message  string           `json:"message"`
	Imported int              `json:"imported"`
	Skipped  int              `json:"skipped"`
	Products []models.Product `json:"products"`
}

type RejectedResponse struct {
	Message  string   `json:"message"`
	Errors   []string `json:"errors"`
	Imported int      `json:"imported"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// Report is the terminal outcome of an import: a status code and the JSON body to send.
type Report struct {
	Status int
	Body   any
}

func pluralRows(n int) string {
	if n == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", n)
}

func Success(res Result) Report {
	msg := fmt.Sprintf("Successfully imported %d products", res.Imported())
	if res.Skipped() > 0 {
		msg += fmt.Sprintf(" (%d rows skipped)", res.Skipped())
	}
	return Report{
		Status: http.StatusCreated,
		Body: SuccessResponse{
			Message:  msg,
			Imported: res.Imported(),
			Skipped:  res.Skipped(),
			Products: res.Inserted,
		},
	}
}

func Rejected(diagnostics []string) Report {
	if diagnostics == nil {
		diagnostics = []string{}
	}
	return Report{
		Status: http.StatusBadRequest,
		Body: RejectedResponse{
			Message:  noValidRowsMessage,
			Errors:   diagnostics,
			Imported: 0,
		},
	}
}

func Failure(message string, err error) Report {
	return Report{
		Status: http.StatusInternalServerError,
		Body:   ErrorResponse{Message: message, Error: err.Error()},
	}
}
