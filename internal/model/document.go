package model

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Document is an uploaded worksheet. Questions are extracted from it once,
// when the background extraction finishes; after that the document is
// immutable except for its status.
type Document struct {
	ID          uuid.UUID      `json:"id"`
	OwnerID     int            `json:"owner_id"`
	Filename    string         `json:"filename"`
	FileURL     string         `json:"file_url"`
	ContentType string         `json:"content_type"`
	Status      DocumentStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type DocumentStatus string

const (
	DocumentStatusProcessing DocumentStatus = "PROCESSING"
	DocumentStatusCompleted  DocumentStatus = "COMPLETED"
	DocumentStatusFailed     DocumentStatus = "FAILED"
)

// DocumentKind classifies a document for the grading service: a flat image
// can be attached to a multimodal request, a paginated document (PDF) cannot
// be visually inspected by that path.
type DocumentKind string

const (
	DocumentKindNone      DocumentKind = "none"
	DocumentKindImage     DocumentKind = "image"
	DocumentKindPaginated DocumentKind = "paginated"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// DetectDocumentKind classifies by declared media type first, falling back
// to the trailing filename extension.
func DetectDocumentKind(contentType, filename string) DocumentKind {
	ct, _, _ := strings.Cut(contentType, ";")
	ct = strings.ToLower(strings.TrimSpace(ct))
	switch {
	case ct == "application/pdf":
		return DocumentKindPaginated
	case strings.HasPrefix(ct, "image/"):
		return DocumentKindImage
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == ".pdf" {
		return DocumentKindPaginated
	}
	if imageExtensions[ext] {
		return DocumentKindImage
	}
	return DocumentKindNone
}

// Kind returns the grading-path classification of this document.
func (d *Document) Kind() DocumentKind {
	return DetectDocumentKind(d.ContentType, d.Filename)
}
