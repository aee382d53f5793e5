package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is the public path under which stored files are served.
const URLPrefix = "/uploads/"

// Extensions for the supported upload MIME types.
var extByMIME = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// FSStore stores uploads on the local filesystem and serves them under
// URLPrefix via the router's static file group.
type FSStore struct {
	dir string
}

// NewFSStore creates the upload directory if needed.
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FSStore{dir: dir}, nil
}

// Put saves the content under a UUID filename and returns its URL.
func (s *FSStore) Put(contentType string, r io.Reader) (string, error) {
	// Strip media type parameters ("image/png; charset=binary").
	mime, _, _ := strings.Cut(contentType, ";")
	mime = strings.ToLower(strings.TrimSpace(mime))
	ext, ok := extByMIME[mime]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, contentType)
	}

	filename := uuid.New().String() + ext
	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return URLPrefix + filename, nil
}

// Get opens the file behind a URL previously returned by Put.
func (s *FSStore) Get(url string) (io.ReadCloser, error) {
	p, err := s.localPath(url)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(p)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return f, err
}

// Delete removes the file behind a URL. Missing files are ignored.
func (s *FSStore) Delete(url string) error {
	p, err := s.localPath(url)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FSStore) localPath(url string) (string, error) {
	name := strings.TrimPrefix(url, URLPrefix)
	if name == url || name == "" {
		return "", fmt.Errorf("not a stored URL: %q", url)
	}
	// filepath.Base guards against traversal through crafted URLs.
	return filepath.Join(s.dir, filepath.Base(name)), nil
}
