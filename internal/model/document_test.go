package model

import "testing"

func TestDetectDocumentKind(t *testing.T) {
	tests := []struct {
		name        string
		contentType string
		filename    string
		want        DocumentKind
	}{
		{"pdf by media type", "application/pdf", "worksheet", DocumentKindPaginated},
		{"png by media type", "image/png", "scan", DocumentKindImage},
		{"jpeg by media type", "image/jpeg", "scan", DocumentKindImage},
		{"media type with params", "image/png; charset=binary", "scan", DocumentKindImage},
		{"pdf media type with params", "application/pdf; version=1.7", "worksheet", DocumentKindPaginated},
		{"pdf by extension", "", "worksheet.pdf", DocumentKindPaginated},
		{"png by extension", "application/octet-stream", "scan.PNG", DocumentKindImage},
		{"jpg by extension", "", "photo.jpg", DocumentKindImage},
		{"media type wins over extension", "application/pdf", "lies.png", DocumentKindPaginated},
		{"unknown", "text/plain", "notes.txt", DocumentKindNone},
		{"empty everything", "", "", DocumentKindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDocumentKind(tt.contentType, tt.filename); got != tt.want {
				t.Errorf("DetectDocumentKind(%q, %q) = %s, want %s", tt.contentType, tt.filename, got, tt.want)
			}
		})
	}
}
