package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Item is one position in a list's item sequence. It is a closed union:
// the only implementations are EntryItem and ListItem, and every consumer
// switches over both.
type Item interface {
	isItem()
}

// EntryItem wraps a card.
type EntryItem struct {
	Entry Entry
}

// ListItem wraps a nested list.
type ListItem struct {
	List List
}

func (EntryItem) isItem() {}
func (ListItem) isItem()  {}

// Items is an ordered item sequence with a tolerant wire format.
//
// Items are written wrapped, {"Entry":{...}} or {"List":{...}}. Decoding also
// accepts the flat form where the object itself is the entry or the list; a
// flat object is a list when it carries "items" or has type "list". A null
// item decodes to nothing and is dropped.
type Items []Item

// Clone returns a deep copy of the sequence.
func (s Items) Clone() Items {
	if s == nil {
		return nil
	}
	out := make(Items, 0, len(s))
	for _, item := range s {
		switch it := item.(type) {
		case EntryItem:
			out = append(out, it)
		case ListItem:
			out = append(out, ListItem{List: it.List.Clone()})
		}
	}
	return out
}

type wrappedEntry struct {
	Entry Entry `json:"Entry"`
}

type wrappedList struct {
	List List `json:"List"`
}

// MarshalJSON writes the wrapped form. A nil sequence is written as [].
func (s Items) MarshalJSON() ([]byte, error) {
	out := make([]json.RawMessage, 0, len(s))
	for i, item := range s {
		var (
			data []byte
			err  error
		)
		switch it := item.(type) {
		case EntryItem:
			data, err = json.Marshal(wrappedEntry{Entry: it.Entry})
		case ListItem:
			data, err = json.Marshal(wrappedList{List: it.List})
		case nil:
			continue
		default:
			return nil, fmt.Errorf("item %d: unsupported item type %T", i, item)
		}
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, data)
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads both the wrapped and the flat form.
func (s *Items) UnmarshalJSON(data []byte) error {
	if isNull(data) {
		*s = Items{}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("items: %w", err)
	}

	items := make(Items, 0, len(raw))
	for i, r := range raw {
		item, err := decodeItem(r)
		if err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if item != nil {
			items = append(items, item)
		}
	}
	*s = items
	return nil
}

func decodeItem(data []byte) (Item, error) {
	if isNull(data) {
		return nil, nil
	}

	var probe struct {
		Entry json.RawMessage `json:"Entry"`
		List  json.RawMessage `json:"List"`
		Items json.RawMessage `json:"items"`
		Type  string          `json:"type"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, err
	}

	switch {
	case len(probe.Entry) > 0:
		if isNull(probe.Entry) {
			return nil, nil
		}
		var e Entry
		if err := json.Unmarshal(probe.Entry, &e); err != nil {
			return nil, err
		}
		return EntryItem{Entry: e}, nil
	case len(probe.List) > 0:
		if isNull(probe.List) {
			return nil, nil
		}
		var l List
		if err := json.Unmarshal(probe.List, &l); err != nil {
			return nil, err
		}
		return ListItem{List: l}, nil
	case len(probe.Items) > 0 || probe.Type == ListType:
		var l List
		if err := json.Unmarshal(data, &l); err != nil {
			return nil, err
		}
		return ListItem{List: l}, nil
	default:
		var e Entry
		if err := json.Unmarshal(data, &e); err != nil {
			return nil, err
		}
		return EntryItem{Entry: e}, nil
	}
}

func isNull(data []byte) bool {
	return string(bytes.TrimSpace(data)) == "null"
}
