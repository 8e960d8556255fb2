package models

import (
	"time"
)

// ListType is the kind tag of every list document.
const ListType = "list"

// List is one remote document: a title and an ordered item sequence.
// Any change to it is persisted by replacing the whole document.
type List struct {
	ID        int64     `json:"id" db:"id"`
	Type      string    `json:"type" db:"type"`
	Title     string    `json:"title" db:"title"`
	Items     Items     `json:"items" db:"items"`
	ProjectID int64     `json:"project_id" db:"project_id"`
	CreatorID string    `json:"creator_id" db:"creator_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Clone returns a deep copy so the item sequence can be handed to another goroutine.
func (l List) Clone() List {
	l.Items = l.Items.Clone()
	return l
}

// IndexOfEntry returns the position of the entry item with the given id, or -1.
func (l List) IndexOfEntry(entryID int64) int {
	for i, item := range l.Items {
		switch it := item.(type) {
		case EntryItem:
			if it.Entry.ID == entryID {
				return i
			}
		case ListItem:
			// nested lists are not addressable as cards
		}
	}
	return -1
}

// Entries returns the cards of the list in order. Nested lists are skipped.
func (l List) Entries() []Entry {
	entries := make([]Entry, 0, len(l.Items))
	for _, item := range l.Items {
		switch it := item.(type) {
		case EntryItem:
			entries = append(entries, it.Entry)
		case ListItem:
			// not rendered as a card
		}
	}
	return entries
}
