package board

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"liteboard/internal/config"
	"liteboard/internal/domain"
	"liteboard/internal/domain/models"
)

// Every mutation follows the same steps: validate, mutate the snapshot,
// synchronize, and reload on failure. Validation failures never reach the store.

// CreateList creates an empty list at the end of the board. Nothing is
// inserted locally; the board is reloaded to pick up the store's id and order.
func (b *Board) CreateList(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)
	if err := validateTitle(title); err != nil {
		return err
	}

	list := &models.List{
		Type:      models.ListType,
		Title:     title,
		Items:     models.Items{},
		ProjectID: b.projectID,
	}
	created, err := b.store.CreateList(ctx, list)
	if err != nil {
		return b.reconcile(ctx, actionCreateList, err)
	}

	b.logger.Info("list created", "list_id", created.ID, "title", created.Title)
	return b.Load(ctx)
}

// RenameList retitles a list and writes the whole document. An empty title
// is a cancelled edit: the board is reloaded and nothing is written.
func (b *Board) RenameList(ctx context.Context, listID int64, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return b.Load(ctx)
	}
	if err := validateTitle(title); err != nil {
		return err
	}

	l := b.list(listID)
	if l == nil {
		return b.stale(ctx, "list", listID)
	}

	l.Title = title
	doc := l.Clone()
	if _, err := b.store.UpdateList(ctx, &doc); err != nil {
		return b.reconcile(ctx, actionRenameList, err)
	}

	b.logger.Info("list renamed", "list_id", listID, "title", title)
	return nil
}

// DeleteList deletes a list after confirmation and reloads whatever the
// outcome. The list's entries stay in the store.
func (b *Board) DeleteList(ctx context.Context, listID int64) error {
	prompt := fmt.Sprintf("Delete list %d?", listID)
	if l := b.list(listID); l != nil {
		prompt = fmt.Sprintf("Delete list %q?", l.Title)
	}
	if !b.confirm(prompt) {
		return nil
	}

	if err := b.store.DeleteList(ctx, listID); err != nil {
		return b.reconcile(ctx, actionDeleteList, err)
	}

	b.logger.Info("list deleted", "list_id", listID)
	return b.Load(ctx)
}

// CreateEntry creates a card record, then appends it to the list and writes
// the list. If that write fails the record is left orphaned; the reload does
// not show it. Content defaults to the title.
func (b *Board) CreateEntry(ctx context.Context, listID int64, title, content string) error {
	title, content = normalizeCard(title, content)
	if err := validateCard(title, content); err != nil {
		return err
	}

	l := b.list(listID)
	if l == nil {
		return b.stale(ctx, "list", listID)
	}

	created, err := b.store.CreateEntry(ctx, &models.Entry{
		Type:      models.EntryType,
		Title:     title,
		Content:   content,
		ProjectID: b.projectID,
	})
	if err != nil {
		return b.reconcile(ctx, actionSaveCard, err)
	}

	l.Items = append(l.Items, models.EntryItem{Entry: *created})
	doc := l.Clone()
	if _, err := b.store.UpdateList(ctx, &doc); err != nil {
		b.logger.Warn("entry left without a list", "entry_id", created.ID, "list_id", listID)
		return b.reconcile(ctx, actionSaveCard, err)
	}

	b.logger.Info("entry created", "entry_id", created.ID, "list_id", listID)
	return b.Load(ctx)
}

// UpdateEntry rewrites a card record. List documents are not touched; the
// reload picks the new text up from the record.
func (b *Board) UpdateEntry(ctx context.Context, entryID int64, title, content string) error {
	title, content = normalizeCard(title, content)
	if err := validateCard(title, content); err != nil {
		return err
	}

	current, ok := b.findEntryAnywhere(entryID)
	if !ok {
		return b.stale(ctx, "entry", entryID)
	}

	current.Title = title
	current.Content = content
	if current.Type == "" {
		current.Type = models.EntryType
	}
	if current.ProjectID == 0 {
		current.ProjectID = b.projectID
	}
	if _, err := b.store.UpdateEntry(ctx, &current); err != nil {
		return b.reconcile(ctx, actionSaveCard, err)
	}

	b.logger.Info("entry updated", "entry_id", entryID)
	return b.Load(ctx)
}

// DeleteEntry drops the card from its list, writes the list, then deletes the
// record. The order means a failure can orphan a record but never leaves a
// list pointing at a deleted one.
func (b *Board) DeleteEntry(ctx context.Context, listID, entryID int64) error {
	l := b.list(listID)
	if l == nil {
		return b.stale(ctx, "list", listID)
	}
	idx := l.IndexOfEntry(entryID)
	if idx < 0 {
		return b.stale(ctx, "entry", entryID)
	}

	entry := l.Items[idx].(models.EntryItem).Entry
	if !b.confirm(fmt.Sprintf("Delete card %q?", entry.DisplayTitle())) {
		return nil
	}

	remaining := make(models.Items, 0, len(l.Items)-1)
	remaining = append(remaining, l.Items[:idx]...)
	l.Items = append(remaining, l.Items[idx+1:]...)

	doc := l.Clone()
	if _, err := b.store.UpdateList(ctx, &doc); err != nil {
		return b.reconcile(ctx, actionDeleteCard, err)
	}
	if err := b.store.DeleteEntry(ctx, entryID); err != nil {
		return b.reconcile(ctx, actionDeleteCard, err)
	}

	b.logger.Info("entry deleted", "entry_id", entryID, "list_id", listID)
	return b.Load(ctx)
}

func normalizeCard(title, content string) (string, string) {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if content == "" {
		content = title
	}
	return title, content
}

func validateTitle(title string) error {
	err := validation.Validate(title,
		validation.Required.Error("title is required"),
		validation.RuneLength(1, config.MaxTitleLength),
	)
	if err != nil {
		return &domain.ValidationError{Message: err.Error()}
	}
	return nil
}

func validateCard(title, content string) error {
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := validation.Validate(content, validation.RuneLength(0, config.MaxContentLength)); err != nil {
		return &domain.ValidationError{Message: "content: " + err.Error()}
	}
	return nil
}
