package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/shaikazeem2001/inventory/internal/models"
)

// ErrNoValidRows is returned when a file produced no candidate products.
var ErrNoValidRows = errors.New("no valid products found in CSV")

// BulkInserter is the persistence side of an import: an unordered insert that returns the
// subset it stored.
type BulkInserter interface {
	InsertMany(ctx context.Context, products []models.Product) ([]models.Product, error)
}

type ActivityAppender interface {
	Append(ctx context.Context, l models.ActivityLog) (models.ActivityLog, error)
}

// Actor identifies the user an import runs on behalf of.
type Actor struct {
	UserID   string
	Username string
}

// Result is what a committed batch produced.
type Result struct {
	Candidates int
	Inserted   []models.Product
}

func (r Result) Imported() int {
	return len(r.Inserted)
}

// Skipped counts candidates the store refused, e.g. for a duplicate sku.
func (r Result) Skipped() int {
	return r.Candidates - len(r.Inserted)
}

type Committer struct {
	products BulkInserter
	activity ActivityAppender
}

func NewCommitter(products BulkInserter, activity ActivityAppender) *Committer {
	return &Committer{products: products, activity: activity}
}

// Commit inserts every candidate in one unordered batch and then appends a single BULK_CREATE
// entry naming how many were stored.
func (c *Committer) Commit(ctx context.Context, candidates []models.Product, actor Actor) (Result, error) {
	if len(candidates) == 0 {
		return Result{}, ErrNoValidRows
	}

	inserted, err := c.products.InsertMany(ctx, candidates)
	if err != nil {
		return Result{}, err
	}

	_, err = c.activity.Append(ctx, models.ActivityLog{
		UserID:   actor.UserID,
		Username: actor.Username,
		Action:   models.ActionBulkCreate,
		Details:  fmt.Sprintf("Imported %d products from CSV", len(inserted)),
	})
	if err != nil {
		return Result{}, err
	}

	return Result{Candidates: len(candidates), Inserted: inserted}, nil
}
