package importer

import (
	"iter"

	"github.com/shaikazeem2001/inventory/internal/models"
)

// Batch accumulates the outcome of normalizing one file.
type Batch struct {
	Rows       int
	Skipped    int
	Candidates []models.Product
	// NameColumn records whether any header matched a name alias.
	NameColumn bool
}

// Fold normalizes the next row into a new Batch. The row's index is derived from the batch,
// never from outside state.
func (b Batch) Fold(r Row, stamp int64) (Batch, models.Product, bool) {
	b.Rows++
	if !b.NameColumn {
		if f, ok := FieldByName("name"); ok && r.HasColumn(f.Aliases...) {
			b.NameColumn = true
		}
	}

	p, ok := Normalize(r, b.Rows, stamp)
	if !ok {
		b.Skipped++
		return b, models.Product{}, false
	}
	b.Candidates = append(b.Candidates, p)
	return b, p, true
}

// Diagnostics explains, at file level, why a batch has no candidates.
func (b Batch) Diagnostics() []string {
	diags := []string{}
	if b.Rows == 0 {
		return append(diags, "CSV file has no data rows")
	}
	if !b.NameColumn {
		diags = append(diags, "No name column found (expected one of: name, product, title, item); the first column was used instead")
	}
	if b.Skipped > 0 {
		diags = append(diags, pluralRows(b.Skipped)+" had an empty name")
	}
	return diags
}

// Collect folds every row of rows into a Batch, reporting each row to obs. It stops at the
// first read error and returns the batch built so far.
func Collect(rows iter.Seq2[Row, error], stamp int64, obs Observer) (Batch, error) {
	b := Batch{Candidates: []models.Product{}}
	for r, err := range rows {
		if err != nil {
			return b, err
		}

		var (
			p  models.Product
			ok bool
		)
		b, p, ok = b.Fold(r, stamp)
		if ok {
			obs.RowAccepted(b.Rows, p)
		} else {
			obs.RowSkipped(b.Rows, r)
		}
	}
	obs.Finished(b)
	return b, nil
}
