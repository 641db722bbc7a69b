package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/shaikazeem2001/inventory/internal/models"
)

var sample = []models.Product{
	{Name: "Widget", SKU: "W1", Category: "Parts", Price: 9.99, Quantity: 3, Description: "small, round"},
	{Name: "Gadget", SKU: "G1", Category: "Tools", Price: 20, Quantity: 40, Description: "No description"},
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", CSV, false},
		{"CSV", CSV, false},
		{" xlsx ", XLSX, false},
		{"pdf", PDF, false},
		{"docx", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatMetadata(t *testing.T) {
	day := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "products-2025-02-03.xlsx", XLSX.Filename(day))
	assert.Equal(t, "text/csv", CSV.ContentType())
	assert.Equal(t, "application/pdf", PDF.ContentType())
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, CSV, sample, 10))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"Name", "SKU", "Category", "Price", "Quantity", "Description"}, records[0])
	assert.Equal(t, []string{"Widget", "W1", "Parts", "9.99", "3", "small, round"}, records[1])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, XLSX, sample, 10))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Status", rows[0][5])
	assert.Equal(t, "Widget", rows[1][0])
	assert.Equal(t, "Low Stock", rows[1][5])
	assert.Equal(t, "In Stock", rows[2][5])
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, PDF, sample, 10))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, "Low Stock", Status(models.Product{Quantity: 9}, 10))
	assert.Equal(t, "In Stock", Status(models.Product{Quantity: 10}, 10))
}
