package board

import (
	"context"
	"errors"
	"fmt"

	"liteboard/internal/domain"
	"liteboard/internal/domain/models"
)

// Action names used in failure messages.
const (
	actionLoad       = "load board"
	actionCreateList = "create list"
	actionRenameList = "update list title"
	actionDeleteList = "delete list"
	actionSaveCard   = "save card"
	actionDeleteCard = "delete card"
	actionMoveCard   = "move card"
)

// SyncError is a failed synchronization with the store. Its message is the
// one shown to the user: "failed to <action>: <detail>".
type SyncError struct {
	Action string
	Err    error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Action, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// fail reports a synchronization failure once. An expired session is passed
// through silently: the client's session hook owns that reaction.
func (b *Board) fail(action string, err error) error {
	if errors.Is(err, domain.ErrSessionExpired) {
		return err
	}
	syncErr := &SyncError{Action: action, Err: err}
	b.notify(syncErr.Error())
	return syncErr
}

// reconcile reports err and discards every optimistic edit by reloading the
// whole board. Nothing is retried and nothing is rolled back piecemeal. If the
// reload itself fails the board falls back to the last snapshot it loaded.
func (b *Board) reconcile(ctx context.Context, action string, err error) error {
	failure := b.fail(action, err)
	if errors.Is(err, domain.ErrSessionExpired) {
		return failure
	}
	b.resync(ctx)
	return failure
}

// resync reloads the board, restoring the last loaded snapshot on failure.
// The reload failure is logged, not notified: the user already has one message.
func (b *Board) resync(ctx context.Context) {
	if err := b.load(ctx); err != nil {
		b.logger.Warn("reload after failure failed", "project_id", b.projectID, "error", err)
		b.restore()
	}
}

// stale handles an id that no longer resolves in the snapshot: the board is
// reloaded and the operation abandoned.
func (b *Board) stale(ctx context.Context, kind string, id int64) error {
	b.resync(ctx)
	return &domain.NotFoundError{Message: fmt.Sprintf("%s %d not found", kind, id)}
}

func (b *Board) checkpoint(lists []models.List) {
	b.loaded = make([]models.List, len(lists))
	for i, l := range lists {
		b.loaded[i] = l.Clone()
	}
}

func (b *Board) restore() {
	b.lists = make([]models.List, len(b.loaded))
	for i, l := range b.loaded {
		b.lists[i] = l.Clone()
	}
}
