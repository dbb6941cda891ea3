package models

import "time"

// NoteRecord represents a user note. Either Title or Body may be empty
// but never both.
type NoteRecord struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Done      bool   `json:"done"`
	UpdatedAt int64  `json:"updatedAt"` // milliseconds since epoch
}

// UpdatedAtTime returns the UpdatedAt as time.Time.
func (n *NoteRecord) UpdatedAtTime() time.Time {
	return time.UnixMilli(n.UpdatedAt)
}

// Touch refreshes the UpdatedAt timestamp.
func (n *NoteRecord) Touch() {
	n.UpdatedAt = time.Now().UnixMilli()
}
