package engine

import "github.com/okovalenko/AlchemistChef/server/internal/domain/rules"

// Minigame tuning. Progress runs 0-100 for both challenge families.
const (
	ProgressMax = 100.0
	// TimingTickStep is the automatic fill per tick for timing games.
	TimingTickStep = 1.5
	// MashStep is the fill per player action for mashing games.
	MashStep = 12.0
	// Target window for timing games: stopping inside wins.
	TargetWindowStart = 60.0
	TargetWindowEnd   = 85.0
)

// MinigameStatus is the lifecycle position of a challenge.
type MinigameStatus string

const (
	MinigamePlaying MinigameStatus = "PLAYING"
	MinigameWon     MinigameStatus = "WON"
	MinigameLost    MinigameStatus = "LOST"
)

// Minigame is the skill challenge gating a staged transformation.
// It is an explicit state machine driven from outside: the engine's
// runner feeds Tick for timing games on a real clock, tests feed it
// synchronously. Once locked, further input is ignored and the
// resolution callback fires at most once.
type Minigame struct {
	Kind     rules.MinigameKind
	Tool     rules.Tool
	progress float64
	status   MinigameStatus
	fired    bool
	canceled bool

	onResolve func(success bool)
}

func NewMinigame(tool rules.Tool, onResolve func(success bool)) *Minigame {
	return &Minigame{
		Kind:      rules.Profile(tool).Minigame,
		Tool:      tool,
		status:    MinigamePlaying,
		onResolve: onResolve,
	}
}

// Progress returns the current fill, 0-100.
func (m *Minigame) Progress() float64 {
	return m.progress
}

// Status returns the lifecycle position.
func (m *Minigame) Status() MinigameStatus {
	return m.status
}

// Locked reports whether the challenge has resolved and ignores input.
func (m *Minigame) Locked() bool {
	return m.status != MinigamePlaying
}

// Tick advances a timing game by one automatic step. Reaching the top
// without player input is an automatic loss. No-op for mashing games
// and locked challenges.
func (m *Minigame) Tick() {
	if m.Kind != rules.MinigameTiming || m.Locked() {
		return
	}
	m.progress += TimingTickStep
	if m.progress >= ProgressMax {
		m.progress = ProgressMax
		m.lock(false)
	}
}

// Act applies one player input: stop for timing games, a mash for
// mashing games. Ignored once locked.
func (m *Minigame) Act() {
	if m.Locked() {
		return
	}
	switch m.Kind {
	case rules.MinigameTiming:
		m.lock(m.progress >= TargetWindowStart && m.progress <= TargetWindowEnd)
	case rules.MinigameMashing:
		m.progress += MashStep
		if m.progress >= ProgressMax {
			m.progress = ProgressMax
			m.lock(true)
		}
	}
}

func (m *Minigame) lock(won bool) {
	if won {
		m.status = MinigameWon
	} else {
		m.status = MinigameLost
	}
}

// Cancel tears the challenge down so the resolution callback never
// fires, e.g. when the player abandons the station mid-game.
func (m *Minigame) Cancel() {
	m.canceled = true
}

// FireResolution invokes the success or failure callback exactly once,
// after the runner's display delay. No-op while playing, after
// cancellation, or on repeat calls.
func (m *Minigame) FireResolution() {
	if !m.Locked() || m.fired || m.canceled {
		return
	}
	m.fired = true
	if m.onResolve != nil {
		m.onResolve(m.status == MinigameWon)
	}
}
