package service

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/tutorstack/tutor-backend/internal/storage"
)

// encodeDataURI reads a stored document and encodes it as a base64 data URI
// so the grading service receives the content inline and never has to reach
// back into our storage.
func encodeDataURI(store storage.Store, fileURL, contentType string) (string, error) {
	rc, err := store.Get(fileURL)
	if err != nil {
		return "", fmt.Errorf("open stored file: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("read stored file: %w", err)
	}

	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
