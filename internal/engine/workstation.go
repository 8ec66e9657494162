package engine

import (
	"errors"

	"github.com/okovalenko/AlchemistChef/server/internal/domain/item"
	"github.com/okovalenko/AlchemistChef/server/internal/domain/rules"
)

// SlotState is the workstation state machine position.
type SlotState string

const (
	SlotEmpty           SlotState = "EMPTY"
	SlotOccupied        SlotState = "OCCUPIED"
	SlotPendingMinigame SlotState = "PENDING_MINIGAME"
)

var (
	// ErrStationBusy is returned when placing onto a non-empty slot.
	ErrStationBusy = errors.New("station busy")
	// ErrStationEmpty is returned when acting on an empty slot.
	ErrStationEmpty = errors.New("station empty")
	// ErrNoPending is returned when resolving without a staged transformation.
	ErrNoPending = errors.New("no pending transformation")
)

// StagedTransformation holds the two candidate outcomes of a tool
// application while the minigame decides between them.
type StagedTransformation struct {
	Tool        rules.Tool `json:"tool"`
	Success     item.Item  `json:"success"`
	Failure     item.Item  `json:"failure"`
	Description string     `json:"description"`
}

// Workstation holds at most one in-progress item. Pure state machine;
// event emission and inventory bookkeeping belong to the engine.
type Workstation struct {
	state   SlotState
	current item.Item
	staged  *StagedTransformation
}

func NewWorkstation() *Workstation {
	return &Workstation{state: SlotEmpty}
}

// State returns the current state machine position.
func (w *Workstation) State() SlotState {
	return w.state
}

// Current returns the item in the slot, if any.
func (w *Workstation) Current() (item.Item, bool) {
	if w.state == SlotEmpty {
		return item.Item{}, false
	}
	return w.current, true
}

// Place moves the slot EMPTY -> OCCUPIED. Rejected while occupied or
// awaiting a minigame.
func (w *Workstation) Place(it item.Item) error {
	if w.state != SlotEmpty {
		return ErrStationBusy
	}
	w.current = it
	w.state = SlotOccupied
	return nil
}

// Stage moves OCCUPIED -> PENDING_MINIGAME with the two candidate outcomes.
func (w *Workstation) Stage(st StagedTransformation) error {
	switch w.state {
	case SlotEmpty:
		return ErrStationEmpty
	case SlotPendingMinigame:
		return ErrStationBusy
	}
	w.staged = &st
	w.state = SlotPendingMinigame
	return nil
}

// Staged returns the pending transformation, if any.
func (w *Workstation) Staged() (StagedTransformation, bool) {
	if w.staged == nil {
		return StagedTransformation{}, false
	}
	return *w.staged, true
}

// Resolve moves PENDING_MINIGAME -> OCCUPIED, committing the staged
// success or failure item into the slot.
func (w *Workstation) Resolve(success bool) (item.Item, error) {
	if w.state != SlotPendingMinigame || w.staged == nil {
		return item.Item{}, ErrNoPending
	}
	if success {
		w.current = w.staged.Success
	} else {
		w.current = w.staged.Failure
	}
	w.staged = nil
	w.state = SlotOccupied
	return w.current, nil
}

// AbortPending returns PENDING_MINIGAME -> OCCUPIED without committing,
// leaving the original item in place. Used on minigame teardown.
func (w *Workstation) AbortPending() {
	if w.state == SlotPendingMinigame {
		w.staged = nil
		w.state = SlotOccupied
	}
}

// Take empties the slot and returns its item (for plating or discarding).
// Rejected while a minigame is pending.
func (w *Workstation) Take() (item.Item, error) {
	switch w.state {
	case SlotEmpty:
		return item.Item{}, ErrStationEmpty
	case SlotPendingMinigame:
		return item.Item{}, ErrStationBusy
	}
	it := w.current
	w.current = item.Item{}
	w.state = SlotEmpty
	return it, nil
}
