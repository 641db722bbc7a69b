// Package importer turns an uploaded CSV file into products: rows are read as a sequence, folded
// through the alias table into candidates, committed in one unordered batch and reported.
package importer

import (
	"context"
	"errors"
	"io"
	"log"
	"time"
)

// Source is an uploaded file. Release removes it and is safe to call more than once.
type Source interface {
	Open() (io.ReadCloser, error)
	Release() error
}

type Importer struct {
	committer *Committer
	observer  Observer
	now       func() time.Time
}

type Option func(*Importer)

func WithObserver(o Observer) Option {
	return func(im *Importer) { im.observer = o }
}

func WithClock(now func() time.Time) Option {
	return func(im *Importer) { im.now = now }
}

func New(products BulkInserter, activity ActivityAppender, opts ...Option) *Importer {
	im := &Importer{
		committer: NewCommitter(products, activity),
		observer:  NewLogObserver(nil),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Run imports src and always produces a Report.
func (im *Importer) Run(ctx context.Context, src io.Reader, actor Actor) Report {
	stamp := im.now().UnixMilli()

	batch, err := Collect(ReadRows(src), stamp, im.observer)
	if err != nil {
		return Failure("Error reading CSV file", err)
	}

	res, err := im.committer.Commit(ctx, batch.Candidates, actor)
	if errors.Is(err, ErrNoValidRows) {
		return Rejected(batch.Diagnostics())
	}
	if err != nil {
		return Failure("Error importing products", err)
	}
	return Success(res)
}

// RunSource imports an uploaded file and releases it once the import ends, whatever the outcome.
func (im *Importer) RunSource(ctx context.Context, src Source, actor Actor) Report {
	defer func() {
		if err := src.Release(); err != nil {
			log.Printf("Failed to remove uploaded file: %v", err)
		}
	}()

	f, err := src.Open()
	if err != nil {
		return Failure("Error reading CSV file", err)
	}
	defer f.Close()

	return im.Run(ctx, f, actor)
}
