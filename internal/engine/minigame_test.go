package engine

import (
	"testing"

	"github.com/okovalenko/AlchemistChef/server/internal/domain/rules"
)

func tickTo(m *Minigame, target float64) {
	for m.Progress() < target && !m.Locked() {
		m.Tick()
	}
}

func TestTimingStopInsideWindowWins(t *testing.T) {
	m := NewMinigame(rules.ToolPan, nil)
	if m.Kind != rules.MinigameTiming {
		t.Fatalf("Expected pan to run a timing game, got %s", m.Kind)
	}

	tickTo(m, 70)
	m.Act()
	if m.Status() != MinigameWon {
		t.Errorf("Expected a stop at %.1f to win, got %s", m.Progress(), m.Status())
	}
}

func TestTimingStopOutsideWindowLoses(t *testing.T) {
	early := NewMinigame(rules.ToolPan, nil)
	tickTo(early, 30)
	early.Act()
	if early.Status() != MinigameLost {
		t.Errorf("Expected an early stop to lose, got %s", early.Status())
	}

	late := NewMinigame(rules.ToolPan, nil)
	tickTo(late, 90)
	late.Act()
	if late.Status() != MinigameLost {
		t.Errorf("Expected a late stop to lose, got %s", late.Status())
	}
}

func TestTimingRunawayBarLoses(t *testing.T) {
	m := NewMinigame(rules.ToolOven, nil)
	tickTo(m, ProgressMax)
	if m.Status() != MinigameLost {
		t.Errorf("Expected a runaway bar to lose automatically, got %s", m.Status())
	}
	if m.Progress() != ProgressMax {
		t.Errorf("Expected progress capped at %.0f, got %.1f", ProgressMax, m.Progress())
	}
}

func TestMashingReachesTopAndWins(t *testing.T) {
	m := NewMinigame(rules.ToolKnife, nil)
	if m.Kind != rules.MinigameMashing {
		t.Fatalf("Expected knife to run a mashing game, got %s", m.Kind)
	}

	acts := 0
	for !m.Locked() {
		m.Act()
		acts++
		if acts > 100 {
			t.Fatal("Mashing never locked")
		}
	}
	if m.Status() != MinigameWon {
		t.Errorf("Expected mashing to the top to win, got %s", m.Status())
	}
	// 100 / 12 per mash
	if acts != 9 {
		t.Errorf("Expected 9 mashes to the top, got %d", acts)
	}
}

func TestMashingIgnoresTicks(t *testing.T) {
	m := NewMinigame(rules.ToolKnife, nil)
	m.Tick()
	m.Tick()
	if m.Progress() != 0 {
		t.Errorf("Expected ticks to be no-ops for mashing, got progress %.1f", m.Progress())
	}
}

func TestResolutionFiresExactlyOnce(t *testing.T) {
	fired := 0
	var won bool
	m := NewMinigame(rules.ToolPan, func(success bool) {
		fired++
		won = success
	})

	tickTo(m, 70)
	m.Act()
	m.FireResolution()
	m.FireResolution()

	if fired != 1 {
		t.Errorf("Expected the resolution callback to fire once, fired %d times", fired)
	}
	if !won {
		t.Error("Expected a winning resolution")
	}
}

func TestResolutionDoesNotFireWhilePlaying(t *testing.T) {
	fired := false
	m := NewMinigame(rules.ToolPan, func(bool) { fired = true })
	m.FireResolution()
	if fired {
		t.Error("Expected no resolution while the game is still playing")
	}
}

func TestCancelSuppressesResolution(t *testing.T) {
	fired := false
	m := NewMinigame(rules.ToolPan, func(bool) { fired = true })

	tickTo(m, 70)
	m.Act()
	m.Cancel()
	m.FireResolution()

	if fired {
		t.Error("Expected a canceled game to never resolve")
	}
}

func TestLockedGameIgnoresInput(t *testing.T) {
	m := NewMinigame(rules.ToolKnife, nil)
	for !m.Locked() {
		m.Act()
	}
	p := m.Progress()
	m.Act()
	if m.Progress() != p {
		t.Error("Expected input after lock to be ignored")
	}
}
