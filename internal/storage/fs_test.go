package storage

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestFSStoreRoundTrip(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}

	url, err := store.Put("image/png", strings.NewReader("png bytes"))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !strings.HasPrefix(url, URLPrefix) {
		t.Errorf("url %q missing prefix %q", url, URLPrefix)
	}
	if !strings.HasSuffix(url, ".png") {
		t.Errorf("url %q missing .png extension", url)
	}

	rc, err := store.Get(url)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	got, _ := io.ReadAll(rc)
	rc.Close()
	if string(got) != "png bytes" {
		t.Errorf("content = %q", got)
	}

	if err := store.Delete(url); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(url); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete: %v, want ErrNotFound", err)
	}

	// Deleting again is a no-op.
	if err := store.Delete(url); err != nil {
		t.Errorf("second Delete: %v", err)
	}
}

func TestFSStoreUnsupportedType(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}

	if _, err := store.Put("application/zip", strings.NewReader("PK")); !errors.Is(err, ErrUnsupportedFileType) {
		t.Errorf("Put zip: %v, want ErrUnsupportedFileType", err)
	}
}

func TestFSStoreContentTypeParams(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}

	url, err := store.Put("image/jpeg; charset=binary", strings.NewReader("jpg"))
	if err != nil {
		t.Fatalf("Put with params: %v", err)
	}
	if !strings.HasSuffix(url, ".jpg") {
		t.Errorf("url %q missing .jpg extension", url)
	}
}

func TestFSStoreRejectsForeignURLs(t *testing.T) {
	store, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}

	if _, err := store.Get("/etc/passwd"); err == nil {
		t.Error("expected error for non-stored URL")
	}
	if _, err := store.Get(""); err == nil {
		t.Error("expected error for empty URL")
	}
}
