package models

import (
	"time"
)

// EntryType is the kind tag written on every card created by the board.
const EntryType = "task"

// Entry is a card. It is stored as its own record and referenced by position
// from exactly one list's item sequence.
type Entry struct {
	ID        int64     `json:"id" db:"id"`
	Type      string    `json:"type" db:"type"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	ProjectID int64     `json:"project_id" db:"project_id"`
	CreatorID string    `json:"creator_id" db:"creator_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DisplayTitle returns the title, falling back to the content when the title is absent.
func (e Entry) DisplayTitle() string {
	if e.Title != "" {
		return e.Title
	}
	return e.Content
}
