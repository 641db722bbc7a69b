// Package export renders product lists as CSV, XLSX or PDF documents.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"

	"github.com/shaikazeem2001/inventory/internal/models"
)

type Format string

const (
	CSV  Format = "csv"
	XLSX Format = "xlsx"
	PDF  Format = "pdf"
)

const (
	statusLow = "Low Stock"
	statusOK  = "In Stock"
	sheetName = "Products"
)

var (
	csvHeader   = []string{"Name", "SKU", "Category", "Price", "Quantity", "Description"}
	tableHeader = []string{"Name", "SKU", "Category", "Price", "Quantity", "Status"}
)

// ParseFormat accepts csv, xlsx or pdf in any case. An empty string means csv.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return CSV, nil
	case CSV, XLSX, PDF:
		return f, nil
	}
	return "", fmt.Errorf("unsupported export format %q", s)
}

func (f Format) ContentType() string {
	switch f {
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case PDF:
		return "application/pdf"
	default:
		return "text/csv"
	}
}

// Filename returns the attachment name for an export taken at t.
func (f Format) Filename(t time.Time) string {
	return fmt.Sprintf("products-%s.%s", t.Format("2006-01-02"), f)
}

func Status(p models.Product, lowStockThreshold int) string {
	if p.LowStock(lowStockThreshold) {
		return statusLow
	}
	return statusOK
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Write renders products in format f.
func Write(w io.Writer, f Format, products []models.Product, lowStockThreshold int) error {
	switch f {
	case CSV:
		return writeCSV(w, products)
	case XLSX:
		return writeXLSX(w, products, lowStockThreshold)
	case PDF:
		return writePDF(w, products, lowStockThreshold)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

func writeCSV(w io.Writer, products []models.Product) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, p := range products {
		record := []string{
			p.Name,
			p.SKU,
			p.Category,
			formatPrice(p.Price),
			strconv.Itoa(p.Quantity),
			p.Description,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, products []models.Product, lowStockThreshold int) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return err
	}
	lowStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "C00000"},
	})
	if err != nil {
		return err
	}

	header := make([]any, len(tableHeader))
	for i, h := range tableHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", "F1", headerStyle); err != nil {
		return err
	}

	for i, p := range products {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		status := Status(p, lowStockThreshold)
		row := []any{p.Name, p.SKU, p.Category, p.Price, p.Quantity, status}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			return err
		}
		if status == statusLow {
			statusCell, _ := excelize.CoordinatesToCellName(6, i+2)
			if err := f.SetCellStyle(sheetName, statusCell, statusCell, lowStyle); err != nil {
				return err
			}
		}
	}

	for i := range tableHeader {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, colName, colName, 20); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writePDF(w io.Writer, products []models.Product, lowStockThreshold int) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Inventory Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Inventory Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Generated "+time.Now().Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	widths := []float64{80, 40, 45, 30, 30, 45}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(68, 114, 196)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range tableHeader {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	for _, p := range products {
		status := Status(p, lowStockThreshold)
		cells := []string{
			tr(p.Name),
			tr(p.SKU),
			tr(p.Category),
			formatPrice(p.Price),
			strconv.Itoa(p.Quantity),
			status,
		}
		for i, c := range cells {
			align := "L"
			if i == 3 || i == 4 {
				align = "R"
			}
			if i == 5 && status == statusLow {
				pdf.SetTextColor(192, 0, 0)
			}
			pdf.CellFormat(widths[i], 7, c, "1", 0, align, false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Total products: %d", len(products)), "", 1, "L", false, 0, "")

	return pdf.Output(w)
}
