package importer

import (
	"io"
	"log"
	"os"

	"github.com/shaikazeem2001/inventory/internal/models"
)

// Observer receives row-level events while a file is normalized. Implementations must not
// influence the outcome of the import.
type Observer interface {
	RowAccepted(index int, p models.Product)
	RowSkipped(index int, r Row)
	Finished(b Batch)
}

// LogObserver writes import events to a logger.
type LogObserver struct {
	logger *log.Logger
}

func NewLogObserver(logger *log.Logger) *LogObserver {
	if logger == nil {
		logger = log.New(os.Stdout, "[import] ", log.LstdFlags)
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) RowAccepted(index int, p models.Product) {
	o.logger.Printf("line %d imported: %s (%s)", index, p.Name, p.SKU)
}

func (o *LogObserver) RowSkipped(index int, r Row) {
	o.logger.Printf("line %d skipped: no name (file line %d)", index, r.FileLine)
}

func (o *LogObserver) Finished(b Batch) {
	o.logger.Printf("rows processed: %d, valid products: %d, skipped: %d", b.Rows, len(b.Candidates), b.Skipped)
}

// Discard returns an observer that drops every event.
func Discard() Observer {
	return NewLogObserver(log.New(io.Discard, "", 0))
}
