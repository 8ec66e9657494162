package engine

import (
	"testing"

	"github.com/okovalenko/AlchemistChef/server/internal/domain/item"
	"github.com/okovalenko/AlchemistChef/server/internal/domain/rules"
)

func stagedEgg() StagedTransformation {
	fried, _ := item.Lookup("egg_fried")
	burnt, _ := item.Lookup("burnt_food")
	return StagedTransformation{Tool: rules.ToolPan, Success: fried, Failure: burnt, Description: "Смаження"}
}

func TestWorkstationPlaceAndTake(t *testing.T) {
	w := NewWorkstation()
	if w.State() != SlotEmpty {
		t.Fatalf("Expected a fresh station to be empty, got %s", w.State())
	}

	egg, _ := item.Lookup("egg")
	if err := w.Place(egg); err != nil {
		t.Fatalf("Expected placement on an empty slot, got %v", err)
	}
	if w.State() != SlotOccupied {
		t.Errorf("Expected OCCUPIED after placement, got %s", w.State())
	}

	if err := w.Place(egg); err != ErrStationBusy {
		t.Errorf("Expected ErrStationBusy on a second placement, got %v", err)
	}

	it, err := w.Take()
	if err != nil || it.ID != "egg" {
		t.Errorf("Expected to take the egg back, got %v / %v", it.ID, err)
	}
	if w.State() != SlotEmpty {
		t.Errorf("Expected EMPTY after take, got %s", w.State())
	}

	if _, err := w.Take(); err != ErrStationEmpty {
		t.Errorf("Expected ErrStationEmpty on an empty take, got %v", err)
	}
}

func TestWorkstationStageAndResolve(t *testing.T) {
	w := NewWorkstation()
	egg, _ := item.Lookup("egg")
	w.Place(egg)

	if err := w.Stage(stagedEgg()); err != nil {
		t.Fatalf("Expected staging on an occupied slot, got %v", err)
	}
	if w.State() != SlotPendingMinigame {
		t.Errorf("Expected PENDING_MINIGAME, got %s", w.State())
	}

	// No second staging, no take while pending.
	if err := w.Stage(stagedEgg()); err != ErrStationBusy {
		t.Errorf("Expected ErrStationBusy on double stage, got %v", err)
	}
	if _, err := w.Take(); err != ErrStationBusy {
		t.Errorf("Expected ErrStationBusy on take while pending, got %v", err)
	}

	it, err := w.Resolve(true)
	if err != nil {
		t.Fatalf("Expected resolution to commit, got %v", err)
	}
	if it.ID != "egg_fried" {
		t.Errorf("Expected the success item, got %s", it.ID)
	}
	if w.State() != SlotOccupied {
		t.Errorf("Expected OCCUPIED after resolution, got %s", w.State())
	}
}

func TestWorkstationResolveFailureCommitsFailureItem(t *testing.T) {
	w := NewWorkstation()
	egg, _ := item.Lookup("egg")
	w.Place(egg)
	w.Stage(stagedEgg())

	it, err := w.Resolve(false)
	if err != nil {
		t.Fatalf("Expected resolution, got %v", err)
	}
	if it.ID != item.FallbackID {
		t.Errorf("Expected the burnt fallback, got %s", it.ID)
	}
}

func TestWorkstationResolveWithoutStaging(t *testing.T) {
	w := NewWorkstation()
	if _, err := w.Resolve(true); err != ErrNoPending {
		t.Errorf("Expected ErrNoPending, got %v", err)
	}
}

func TestWorkstationAbortPendingKeepsOriginal(t *testing.T) {
	w := NewWorkstation()
	egg, _ := item.Lookup("egg")
	w.Place(egg)
	w.Stage(stagedEgg())

	w.AbortPending()
	if w.State() != SlotOccupied {
		t.Errorf("Expected OCCUPIED after abort, got %s", w.State())
	}
	it, _ := w.Current()
	if it.ID != "egg" {
		t.Errorf("Expected the original egg to survive the abort, got %s", it.ID)
	}
}

func TestWorkstationStageOnEmptySlot(t *testing.T) {
	w := NewWorkstation()
	if err := w.Stage(stagedEgg()); err != ErrStationEmpty {
		t.Errorf("Expected ErrStationEmpty, got %v", err)
	}
}
