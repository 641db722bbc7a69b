package importer

import (
	"github.com/shaikazeem2001/inventory/internal/models"
)

// Normalize maps one row onto a candidate product. index is the 1-based position of the row
// among the data rows of the run and stamp the run's timestamp in milliseconds. ok is false when
// the row has no usable name.
func Normalize(r Row, index int, stamp int64) (models.Product, bool) {
	var p models.Product
	for _, f := range Fields {
		f.Assign(&p, f.Resolve(r, index, stamp))
	}
	if p.Name == "" {
		return models.Product{}, false
	}
	return p, true
}
