// Package upload receives multipart file uploads and keeps them on disk until released.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
)

var (
	ErrNoFile = errors.New("No file uploaded")
	ErrNotCSV = errors.New("Only CSV files are allowed")

	// ErrTooLarge is returned when the request body is bigger than the store accepts.
	ErrTooLarge = errors.New("File too large")
)

func tooLarge(err error) bool {
	var maxBytesErr *http.MaxBytesError
	return errors.As(err, &maxBytesErr) || errors.Is(err, multipart.ErrMessageTooLarge)
}

// FieldName is the multipart field the file is read from.
const FieldName = "file"

type Store struct {
	dir      string
	maxBytes int64
}

func NewStore(dir string, maxBytes int64) *Store {
	return &Store{dir: dir, maxBytes: maxBytes}
}

// File is a stored upload. Release deletes it exactly once.
type File struct {
	Path         string
	OriginalName string
	ContentType  string
	Size         int64

	once       sync.Once
	releaseErr error
}

func (f *File) Open() (io.ReadCloser, error) {
	return os.Open(f.Path)
}

func (f *File) Release() error {
	f.once.Do(func() {
		if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
			f.releaseErr = fmt.Errorf("failed to remove upload %s: %w", f.Path, err)
		}
	})
	return f.releaseErr
}

// IsCSV accepts a file whose MIME type is text/csv or whose name ends in .csv.
func IsCSV(filename, contentType string) bool {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil && mediaType == "text/csv" {
		return true
	}
	return strings.EqualFold(filepath.Ext(filename), ".csv")
}

// ReceiveCSV stores the CSV file sent in the request's "file" field. Nothing is written to disk
// when the file is missing or is not CSV.
func (s *Store) ReceiveCSV(w http.ResponseWriter, r *http.Request) (*File, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBytes)
	if err := r.ParseMultipartForm(s.maxBytes); err != nil {
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, ErrNoFile
		}
		if tooLarge(err) {
			return nil, ErrTooLarge
		}
		return nil, fmt.Errorf("failed to parse upload: %w", err)
	}
	defer r.MultipartForm.RemoveAll()

	src, header, err := r.FormFile(FieldName)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, ErrNoFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	defer src.Close()

	contentType := header.Header.Get("Content-Type")
	if !IsCSV(header.Filename, contentType) {
		return nil, ErrNotCSV
	}

	return s.save(src, filepath.Base(header.Filename), contentType)
}

func (s *Store) save(src io.Reader, originalName, contentType string) (*File, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}

	path := filepath.Join(s.dir, uuid.NewString()+".csv")
	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	n, err := io.Copy(dst, src)
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("failed to store upload: %w", err)
	}

	return &File{
		Path:         path,
		OriginalName: originalName,
		ContentType:  contentType,
		Size:         n,
	}, nil
}

// StoreFile copies a local file into the store, for imports that do not come over HTTP.
func (s *Store) StoreFile(path string) (*File, error) {
	if !IsCSV(path, "") {
		return nil, ErrNotCSV
	}
	src, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return s.save(src, filepath.Base(path), "text/csv")
}
