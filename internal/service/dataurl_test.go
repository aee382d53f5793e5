package service

import (
	"errors"
	"io"
	"strings"
	"testing"
)

type fakeStore struct {
	files map[string]string
}

func (f *fakeStore) Put(contentType string, r io.Reader) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeStore) Get(url string) (io.ReadCloser, error) {
	content, ok := f.files[url]
	if !ok {
		return nil, errors.New("no such file")
	}
	return io.NopCloser(strings.NewReader(content)), nil
}

func (f *fakeStore) Delete(url string) error { return nil }

func TestEncodeDataURI(t *testing.T) {
	store := &fakeStore{files: map[string]string{
		"/uploads/a.png": "picture",
	}}

	uri, err := encodeDataURI(store, "/uploads/a.png", "image/png")
	if err != nil {
		t.Fatalf("encodeDataURI: %v", err)
	}
	// "picture" → cGljdHVyZQ==
	want := "data:image/png;base64,cGljdHVyZQ=="
	if uri != want {
		t.Errorf("uri = %q, want %q", uri, want)
	}
}

func TestEncodeDataURIMissingFile(t *testing.T) {
	store := &fakeStore{files: map[string]string{}}
	if _, err := encodeDataURI(store, "/uploads/gone.png", "image/png"); err == nil {
		t.Error("expected error for missing file")
	}
}
