package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"
)

// Row is one CSV data record paired with the header it was read under.
type Row struct {
	Header []string
	Values []string
	// FileLine is the line in the source file the record starts on.
	FileLine int
}

// Get returns the trimmed value stored under column. Empty values count as absent.
func (r Row) Get(column string) (string, bool) {
	for i, h := range r.Header {
		if h != column {
			continue
		}
		if i >= len(r.Values) {
			return "", false
		}
		v := strings.TrimSpace(r.Values[i])
		return v, v != ""
	}
	return "", false
}

// First returns the trimmed value of the first column.
func (r Row) First() string {
	if len(r.Values) == 0 {
		return ""
	}
	return strings.TrimSpace(r.Values[0])
}

// HasColumn reports whether the header contains any of columns.
func (r Row) HasColumn(columns ...string) bool {
	for _, h := range r.Header {
		for _, c := range columns {
			if h == c {
				return true
			}
		}
	}
	return false
}

// ReadRows yields the data records of a headed CSV stream in order. A missing header yields
// nothing. A read error is yielded once and ends the sequence.
func ReadRows(src io.Reader) iter.Seq2[Row, error] {
	return func(yield func(Row, error) bool) {
		reader := csv.NewReader(src)
		reader.FieldsPerRecord = -1
		reader.LazyQuotes = true
		reader.TrimLeadingSpace = true

		header, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			yield(Row{}, fmt.Errorf("failed to read CSV header: %w", err))
			return
		}
		for i, h := range header {
			header[i] = strings.TrimSpace(h)
		}
		if len(header) > 0 {
			header[0] = strings.TrimPrefix(header[0], "\ufeff")
		}

		for {
			record, err := reader.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(Row{}, fmt.Errorf("failed to read CSV record: %w", err))
				return
			}

			line, _ := reader.FieldPos(0)
			if !yield(Row{Header: header, Values: record, FileLine: line}, nil) {
				return
			}
		}
	}
}
