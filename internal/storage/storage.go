package storage

import (
	"errors"
	"io"
)

// Sentinel errors for uploads.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrNotFound            = errors.New("object not found")
)

// Store persists uploaded document bytes and serves them back by URL.
// The rest of the application only ever consumes the returned URL; it never
// manipulates the underlying storage directly.
type Store interface {
	// Put saves the content under a fresh key derived from contentType and
	// returns a stable retrievable URL.
	Put(contentType string, r io.Reader) (string, error)
	// Get opens the content previously stored at url.
	Get(url string) (io.ReadCloser, error)
	// Delete removes the content stored at url. Deleting a missing object
	// is not an error.
	Delete(url string) error
}
