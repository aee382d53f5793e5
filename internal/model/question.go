package model

import (
	"github.com/google/uuid"
)

// Question is a single extracted question. Label is the display label from
// the source worksheet ("1", "2ii", "(iv)", "1a"); it is not guaranteed
// numeric, sortable, or unique. OrderNum is the positional ordering key and
// is what governs display and retrieval order.
type Question struct {
	ID         uuid.UUID `json:"id"`
	DocumentID uuid.UUID `json:"document_id"`
	Label      string    `json:"label"`
	Text       string    `json:"text"`
	OrderNum   int       `json:"order_num"`
}
