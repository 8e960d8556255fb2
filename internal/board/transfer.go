package board

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"liteboard/internal/domain"
	"liteboard/internal/domain/models"
)

// State is the phase of a drag-and-drop transfer.
type State int

const (
	Idle State = iota
	Dragging
	HoverTarget
	Dropped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case HoverTarget:
		return "hover-target"
	case Dropped:
		return "dropped"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ErrInvalidTransition is returned for an event the current state does not accept.
// The transfer is left unchanged.
var ErrInvalidTransition = errors.New("invalid transfer transition")

// Transfer is the state machine of one drag-and-drop gesture. Only the
// drop touches the board; every other event is bookkeeping.
type Transfer struct {
	state  State
	source int64
	item   int64
	target int64
}

// Move is what a drop asks for: item from source list to the tail of target.
type Move struct {
	Source int64
	Item   int64
	Target int64
}

func (t *Transfer) State() State  { return t.state }
func (t *Transfer) Source() int64 { return t.source }
func (t *Transfer) Item() int64   { return t.item }

// Target is the list currently hovered, 0 when none.
func (t *Transfer) Target() int64 { return t.target }

func (t *Transfer) invalid(event string) error {
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, event, t.state)
}

// PickUp starts a transfer of item out of sourceList.
func (t *Transfer) PickUp(sourceList, item int64) error {
	if t.state != Idle {
		return t.invalid("pick up")
	}
	t.state, t.source, t.item, t.target = Dragging, sourceList, item, 0
	return nil
}

// Hover marks targetList as the drop zone under the pointer.
func (t *Transfer) Hover(targetList int64) error {
	if t.state != Dragging && t.state != HoverTarget {
		return t.invalid("hover")
	}
	t.state, t.target = HoverTarget, targetList
	return nil
}

// Leave is the pointer leaving the hovered drop zone.
func (t *Transfer) Leave() error {
	if t.state != HoverTarget {
		return t.invalid("leave")
	}
	t.state, t.target = Dragging, 0
	return nil
}

// Cancel abandons the transfer.
func (t *Transfer) Cancel() error {
	if t.state != Dragging && t.state != HoverTarget {
		return t.invalid("cancel")
	}
	t.reset()
	return nil
}

// ReleaseOutside is a release away from any drop zone; same as Cancel.
func (t *Transfer) ReleaseOutside() error {
	if t.state != Dragging && t.state != HoverTarget {
		return t.invalid("release outside")
	}
	t.reset()
	return nil
}

// Drop releases the item over targetList.
func (t *Transfer) Drop(targetList int64) (Move, error) {
	if t.state != Dragging && t.state != HoverTarget {
		return Move{}, t.invalid("drop")
	}
	t.state, t.target = Dropped, targetList
	return Move{Source: t.source, Item: t.item, Target: targetList}, nil
}

func (t *Transfer) reset() {
	*t = Transfer{}
}

// Transfer exposes the board's in-progress gesture for hover/leave/cancel events.
func (b *Board) Transfer() *Transfer {
	return &b.transfer
}

// PickUp starts dragging a card. The card must be in the snapshot.
func (b *Board) PickUp(listID, entryID int64) error {
	if b.transfer.State() != Idle {
		return b.transfer.invalid("pick up")
	}
	if _, ok := b.FindEntry(listID, entryID); !ok {
		return &domain.NotFoundError{Message: fmt.Sprintf("entry %d not found in list %d", entryID, listID)}
	}
	return b.transfer.PickUp(listID, entryID)
}

// Drop completes the gesture over targetListID and synchronizes the result.
// The transfer is back to Idle when Drop returns.
func (b *Board) Drop(ctx context.Context, targetListID int64) error {
	mv, err := b.transfer.Drop(targetListID)
	if err != nil {
		return err
	}
	defer b.transfer.reset()

	return b.commit(ctx, mv)
}

// Move runs a whole gesture: pick the card up in one list and drop it on another.
func (b *Board) Move(ctx context.Context, fromListID, entryID, toListID int64) error {
	if err := b.PickUp(fromListID, entryID); err != nil {
		return err
	}
	if err := b.transfer.Hover(toListID); err != nil {
		b.transfer.reset()
		return err
	}
	return b.Drop(ctx, toListID)
}

// commit applies a drop. Within one list it is a no-op. Across lists the card
// leaves the source and is appended to the target, then both documents are
// written concurrently. Any failure reverts whichever write did land, reports
// once and reloads.
func (b *Board) commit(ctx context.Context, mv Move) error {
	if mv.Source == mv.Target {
		b.logger.Debug("drop on source list ignored", "list_id", mv.Source, "entry_id", mv.Item)
		return nil
	}

	src := b.list(mv.Source)
	if src == nil {
		return b.stale(ctx, "list", mv.Source)
	}
	dst := b.list(mv.Target)
	if dst == nil {
		return b.stale(ctx, "list", mv.Target)
	}
	idx := src.IndexOfEntry(mv.Item)
	if idx < 0 {
		return b.stale(ctx, "entry", mv.Item)
	}

	srcBefore, dstBefore := src.Clone(), dst.Clone()

	item := src.Items[idx]
	remaining := make(models.Items, 0, len(src.Items)-1)
	remaining = append(remaining, src.Items[:idx]...)
	src.Items = append(remaining, src.Items[idx+1:]...)
	if dst.IndexOfEntry(mv.Item) < 0 {
		dst.Items = append(dst.Items.Clone(), item)
	}

	srcDoc, dstDoc := src.Clone(), dst.Clone()
	srcErr, dstErr := b.writePair(ctx, &srcDoc, &dstDoc)
	if srcErr == nil && dstErr == nil {
		b.logger.Info("card moved",
			"entry_id", mv.Item,
			"from_list", mv.Source,
			"to_list", mv.Target,
		)
		return b.Load(ctx)
	}

	failure := srcErr
	if failure == nil || errors.Is(dstErr, domain.ErrSessionExpired) {
		failure = dstErr
	}
	if !errors.Is(failure, domain.ErrSessionExpired) {
		b.compensate(ctx, srcErr, dstErr, &srcBefore, &dstBefore)
	}
	return b.reconcile(ctx, actionMoveCard, failure)
}

// writePair issues both list updates at once. Neither call cancels the other
// and both results are returned.
func (b *Board) writePair(ctx context.Context, src, dst *models.List) (srcErr, dstErr error) {
	var g errgroup.Group
	g.Go(func() error {
		_, srcErr = b.store.UpdateList(ctx, src)
		return srcErr
	})
	g.Go(func() error {
		_, dstErr = b.store.UpdateList(ctx, dst)
		return dstErr
	})
	_ = g.Wait()
	return srcErr, dstErr
}

// compensate restores the pre-transfer document of a list whose write landed
// while the other write failed, so the store never keeps a card in neither or
// both lists. Failures here are only logged; the reload shows the outcome.
func (b *Board) compensate(ctx context.Context, srcErr, dstErr error, srcBefore, dstBefore *models.List) {
	var restore *models.List
	switch {
	case srcErr == nil && dstErr != nil:
		restore = srcBefore
	case dstErr == nil && srcErr != nil:
		restore = dstBefore
	default:
		return
	}

	if _, err := b.store.UpdateList(ctx, restore); err != nil {
		b.logger.Warn("revert of partial move failed",
			"list_id", restore.ID,
			"error", err,
		)
		return
	}
	b.logger.Info("partial move reverted", "list_id", restore.ID)
}
