// Package chat turns stored message records into the items the message
// list lays out: sizes, alignment and display attributes per message.
package chat

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Record is one persisted message.
type Record struct {
	ID         string    `json:"id"`
	Body       string    `json:"body,omitempty"`
	SenderID   string    `json:"sender_id"`
	SenderName string    `json:"sender_name,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	ImageRef   string    `json:"image_ref,omitempty"` // Local path or http(s) URL
}

// NewRecord creates a record with a fresh id.
func NewRecord(senderID, senderName, body, imageRef string, at time.Time) Record {
	return Record{
		ID:         uuid.New().String(),
		Body:       body,
		SenderID:   senderID,
		SenderName: senderName,
		Timestamp:  at,
		ImageRef:   imageRef,
	}
}

// HasBody reports whether the record carries any visible text.
func (r Record) HasBody() bool {
	return strings.TrimSpace(r.Body) != ""
}

// HasImage reports whether the record references an image.
func (r Record) HasImage() bool {
	return r.ImageRef != ""
}

// IsFrom reports whether userID sent the record.
func (r Record) IsFrom(userID string) bool {
	return r.SenderID == userID
}

// CompareNewestFirst orders records by descending timestamp, then descending
// id so records sharing a timestamp still sort deterministically.
func CompareNewestFirst(a, b Record) int {
	if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
		return c
	}
	return strings.Compare(b.ID, a.ID)
}

// SortNewestFirst sorts records in place with CompareNewestFirst.
func SortNewestFirst(records []Record) {
	slices.SortStableFunc(records, CompareNewestFirst)
}
