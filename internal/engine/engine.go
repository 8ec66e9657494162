// Package engine - engine.go
// KitchenEngine orchestrates one player session: shop, workstation,
// minigames, plating and submission. Systems stay pure; this is where
// locking, event emission and the LLM boundary live.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okovalenko/AlchemistChef/server/internal/domain/item"
	"github.com/okovalenko/AlchemistChef/server/internal/domain/player"
	"github.com/okovalenko/AlchemistChef/server/internal/domain/rules"
	"github.com/okovalenko/AlchemistChef/server/internal/events"
	"github.com/okovalenko/AlchemistChef/server/internal/infra/ai"
	"github.com/okovalenko/AlchemistChef/server/internal/platform/logger"
	"github.com/okovalenko/AlchemistChef/server/internal/platform/metrics"
)

var (
	ErrUnknownItem     = errors.New("unknown item")
	ErrUnknownTool     = errors.New("unknown tool")
	ErrNotEnoughGold   = errors.New("not enough gold")
	ErrNotEnoughWater  = errors.New("not enough water")
	ErrNotOwned        = errors.New("item not in inventory")
	ErrNoMinigame      = errors.New("no minigame in progress")
	ErrEmptyPlate      = errors.New("plate is empty")
	ErrJudgingInFlight = errors.New("dish already being judged")
	ErrEmptyName       = errors.New("empty ingredient name")
)

// Collaborator is the engine's view of the LLM gateway. Implemented by
// ai.CriticService; tests substitute a fake.
type Collaborator interface {
	GenerateCritics(ctx context.Context, level int) []ai.Critic
	EvaluateDish(ctx context.Context, ingredients []string, critics []ai.Critic, ingredientsCost int) ai.DishResult
	AnalyzeCustomIngredient(ctx context.Context, name string) ai.CustomAnalysis
	ReplyToExcuse(ctx context.Context, criticName, persona, dishName, excuse, originalReview string) string
}

// Penalty floors for a failed dish. The judged amounts are clamped so
// a bad dish always stings at least this much.
const (
	FailScoreThreshold = 3.0
	MinGoldPenalty     = 10
	MinXPPenalty       = 20
)

// KitchenEngine drives a single session.
type KitchenEngine struct {
	mu sync.Mutex

	sessionID string
	round     int
	profile   *player.Profile
	registry  *RegistrySystem
	inventory *InventorySystem
	station   *Workstation
	plate     *Plate
	rulebook  *rules.RuleBook

	critics     []ai.Critic
	lastResult  *ai.DishResult
	minigame    *Minigame
	stopTicker  chan struct{}
	pendingEmit func()
	judging     bool

	collaborator Collaborator
	eventLog     *events.EventLog
	logger       *logger.Logger

	// Minigame pacing. Tests shrink these to drive resolution fast.
	TickInterval time.Duration
	ResolveDelay time.Duration

	// OnStateChange, when set, is invoked after every mutation so the
	// transport can push fresh state. Called without the lock held.
	OnStateChange func()
}

// NewKitchenEngine wires a session engine around its systems.
func NewKitchenEngine(
	sessionID string,
	profile *player.Profile,
	registry *RegistrySystem,
	inventory *InventorySystem,
	rulebook *rules.RuleBook,
	collaborator Collaborator,
	eventLog *events.EventLog,
	log *logger.Logger,
) *KitchenEngine {
	return &KitchenEngine{
		sessionID:    sessionID,
		profile:      profile,
		registry:     registry,
		inventory:    inventory,
		station:      NewWorkstation(),
		plate:        NewPlate(),
		rulebook:     rulebook,
		collaborator: collaborator,
		eventLog:     eventLog,
		logger:       log,
		TickInterval: 30 * time.Millisecond,
		ResolveDelay: time.Second,
	}
}

// StartRound summons a fresh jury and opens a new round. The LLM call
// runs outside the lock.
func (ke *KitchenEngine) StartRound(ctx context.Context) []ai.Critic {
	ke.mu.Lock()
	level := ke.profile.Level
	ke.mu.Unlock()

	jury := ke.collaborator.GenerateCritics(ctx, level)

	ke.mu.Lock()
	ke.round++
	ke.critics = jury
	ke.lastResult = nil
	round := ke.round
	ke.mu.Unlock()

	ke.emit(events.EventTypeRoundStarted, "", jury, round)
	ke.logger.Info(fmt.Sprintf("Round %d started with %d critics", round, len(jury)))
	ke.notify()
	return jury
}

// Purchase buys one unit of a catalog item.
func (ke *KitchenEngine) Purchase(itemID string) error {
	def, ok := ke.registry.Resolve(itemID)
	if !ok {
		return ke.reject("purchase", ErrUnknownItem, itemID)
	}

	ke.mu.Lock()
	if !ke.profile.CanAfford(def.Price) {
		ke.mu.Unlock()
		return ke.reject("purchase", ErrNotEnoughGold, itemID)
	}
	ke.profile.AddGold(-def.Price)
	gold := ke.profile.Gold
	ke.inventory.Credit(def, 1, "purchase")
	ke.mu.Unlock()

	ke.emit(events.EventTypeGoldChanged, itemID, map[string]int{"delta": -def.Price, "gold": gold}, 0)
	ke.notify()
	return nil
}

// CreateCustomItem mints a player-invented ingredient. The LLM
// classifies it; the player sets the price paid for it. The analysis
// runs outside the lock, affordability is re-checked after.
func (ke *KitchenEngine) CreateCustomItem(ctx context.Context, name string, price int) (item.Item, error) {
	if name == "" {
		return item.Item{}, ke.reject("create custom", ErrEmptyName, "")
	}
	if price < 0 {
		price = 0
	}

	analysis := ke.collaborator.AnalyzeCustomIngredient(ctx, name)

	it := item.Item{
		ID:       fmt.Sprintf("custom_%d", time.Now().UnixMilli()),
		Name:     name,
		Emoji:    analysis.Emoji,
		Category: item.Category(analysis.Category),
		Price:    price,
		Tier:     analysis.Tier,
		State:    item.StateRaw,
		IsCustom: true,
	}

	ke.mu.Lock()
	if !ke.profile.CanAfford(price) {
		ke.mu.Unlock()
		return item.Item{}, ke.reject("create custom", ErrNotEnoughGold, it.ID)
	}
	ke.profile.AddGold(-price)
	gold := ke.profile.Gold
	ke.inventory.Credit(it, 1, "custom")
	ke.mu.Unlock()

	ke.emit(events.EventTypeGoldChanged, it.ID, map[string]int{"delta": -price, "gold": gold}, 0)
	ke.notify()
	return it, nil
}

// PlaceItem moves one owned unit onto the workstation. The debit and
// the placement commit together or not at all.
func (ke *KitchenEngine) PlaceItem(itemID string) error {
	def, ok := ke.registry.Resolve(itemID)
	if !ok {
		return ke.reject("place", ErrUnknownItem, itemID)
	}

	ke.mu.Lock()
	if ke.station.State() != SlotEmpty {
		ke.mu.Unlock()
		return ke.reject("place", ErrStationBusy, itemID)
	}
	if !ke.inventory.Debit(itemID, "workstation") {
		ke.mu.Unlock()
		return ke.reject("place", ErrNotOwned, itemID)
	}
	err := ke.station.Place(def)
	ke.mu.Unlock()

	if err != nil {
		return err
	}
	ke.notify()
	return nil
}

// ApplyTool resolves the transformation for the item on the station,
// charges water when required, stages the outcome pair and launches
// the minigame that decides between them.
func (ke *KitchenEngine) ApplyTool(tool rules.Tool) error {
	if !rules.KnownTool(tool) {
		return ke.reject("tool", ErrUnknownTool, "")
	}

	ke.mu.Lock()
	state := ke.station.State()
	src, ok := ke.station.Current()
	if !ok || state != SlotOccupied {
		ke.mu.Unlock()
		if state == SlotPendingMinigame {
			return ke.reject("tool", ErrStationBusy, "")
		}
		return ke.reject("tool", ErrStationEmpty, "")
	}

	res := ke.rulebook.Resolve(src, tool, ke.basePrice(src))

	waterLeft := -1
	if res.RequiresWater {
		if !ke.profile.HasWater() {
			ke.mu.Unlock()
			return ke.reject("tool", ErrNotEnoughWater, src.ID)
		}
		ke.profile.UseWater()
		waterLeft = ke.profile.Water
	}

	success := ke.materialize(res, src, tool)
	failure := ke.failureItem(res)

	staged := StagedTransformation{
		Tool:        tool,
		Success:     success,
		Failure:     failure,
		Description: res.Description,
	}
	if err := ke.station.Stage(staged); err != nil {
		ke.mu.Unlock()
		return err
	}

	mg := NewMinigame(tool, ke.commitMinigame)
	ke.minigame = mg
	if mg.Kind == rules.MinigameTiming {
		stop := make(chan struct{})
		ke.stopTicker = stop
		go ke.runTicker(mg, stop)
	}
	ke.mu.Unlock()

	if waterLeft >= 0 {
		ke.emit(events.EventTypeWaterConsumed, src.ID, map[string]int{"water": waterLeft}, 0)
	}
	ke.emit(events.EventTypeToolApplied, src.ID, staged, 0)
	ke.notify()
	return nil
}

// MinigameAct forwards one player input to the active minigame.
func (ke *KitchenEngine) MinigameAct() error {
	ke.mu.Lock()
	mg := ke.minigame
	if mg == nil {
		ke.mu.Unlock()
		return ke.reject("minigame", ErrNoMinigame, "")
	}
	mg.Act()
	locked := mg.Locked()
	ke.mu.Unlock()

	if locked {
		ke.scheduleResolution(mg)
	}
	ke.notify()
	return nil
}

// runTicker drives a timing minigame on the real clock until it locks
// or is torn down.
func (ke *KitchenEngine) runTicker(mg *Minigame, stop chan struct{}) {
	ticker := time.NewTicker(ke.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			ke.mu.Lock()
			mg.Tick()
			locked := mg.Locked()
			ke.mu.Unlock()
			ke.notify()
			if locked {
				ke.scheduleResolution(mg)
				return
			}
		}
	}
}

// scheduleResolution fires the outcome after the display delay so the
// player sees the bar land before the item transforms. The resolution
// event is emitted after the unlock, before the state push, so its log
// position stays ahead of whatever the player does next.
func (ke *KitchenEngine) scheduleResolution(mg *Minigame) {
	time.AfterFunc(ke.ResolveDelay, func() {
		ke.mu.Lock()
		mg.FireResolution()
		flush := ke.pendingEmit
		ke.pendingEmit = nil
		ke.mu.Unlock()
		if flush != nil {
			flush()
		}
		ke.notify()
	})
}

// commitMinigame is the minigame resolution callback. Runs with the
// engine lock held; the event emission is deferred to the caller via
// pendingEmit because emit would re-take the lock.
func (ke *KitchenEngine) commitMinigame(success bool) {
	result, err := ke.station.Resolve(success)
	if err != nil {
		ke.logger.Warn("Minigame resolution without staged transformation")
		return
	}
	ke.registry.RecordDerived(result)
	ke.teardownMinigameLocked()
	metrics.Get().RecordMinigame(success)

	round := ke.round
	ke.pendingEmit = func() {
		ke.emitRound(events.EventTypeMinigameResolved, result.ID,
			map[string]interface{}{"success": success, "item": result}, round)
	}
	ke.logger.Info(fmt.Sprintf("Minigame resolved: success=%t -> %s", success, result.ID))
}

func (ke *KitchenEngine) teardownMinigameLocked() {
	if ke.stopTicker != nil {
		close(ke.stopTicker)
		ke.stopTicker = nil
	}
	ke.minigame = nil
}

// Discard trashes the item on the workstation. A pending minigame is
// canceled; its resolution will never fire.
func (ke *KitchenEngine) Discard() error {
	ke.mu.Lock()
	if ke.minigame != nil {
		ke.minigame.Cancel()
		ke.teardownMinigameLocked()
		ke.station.AbortPending()
	}
	it, err := ke.station.Take()
	ke.mu.Unlock()
	if err != nil {
		return ke.reject("discard", err, "")
	}

	ke.emit(events.EventTypeItemDiscarded, it.ID, nil, 0)
	ke.notify()
	return nil
}

// PlateItem moves the finished workstation item onto the plate.
func (ke *KitchenEngine) PlateItem() error {
	ke.mu.Lock()
	it, err := ke.station.Take()
	if err != nil {
		ke.mu.Unlock()
		return ke.reject("plate", err, "")
	}
	ke.plate.Add(it)
	ke.mu.Unlock()

	ke.emit(events.EventTypeItemPlated, it.ID, it, 0)
	ke.notify()
	return nil
}

// ClearPlate discards everything plated so far.
func (ke *KitchenEngine) ClearPlate() {
	ke.mu.Lock()
	ke.plate.Clear()
	ke.mu.Unlock()
	ke.emit(events.EventTypePlateCleared, "", nil, 0)
	ke.notify()
}

// SubmitDish sends the plate to the jury. Only one submission can be
// in flight; the judging call runs outside the lock and the plate is
// cleared whatever the verdict.
func (ke *KitchenEngine) SubmitDish(ctx context.Context) (*ai.DishResult, error) {
	ke.mu.Lock()
	if ke.judging {
		ke.mu.Unlock()
		return nil, ke.reject("submit", ErrJudgingInFlight, "")
	}
	if ke.plate.Len() == 0 {
		ke.mu.Unlock()
		return nil, ke.reject("submit", ErrEmptyPlate, "")
	}
	ke.judging = true
	plated := ke.plate.Items()
	cost := ke.plate.TotalCost(ke.registry)
	jury := append([]ai.Critic(nil), ke.critics...)
	ke.mu.Unlock()

	descriptions := make([]string, len(plated))
	for i, it := range plated {
		descriptions[i] = fmt.Sprintf("%s (Стан: %s)", it.Name, it.State)
	}

	ke.emit(events.EventTypeDishSubmitted, "", map[string]interface{}{
		"items": plated, "cost": cost,
	}, 0)

	result := ke.collaborator.EvaluateDish(ctx, descriptions, jury, cost)
	gold, xp := clampRewards(&result)

	ke.mu.Lock()
	ke.profile.AddGold(gold)
	leveledUp := ke.profile.AddXP(xp)
	level := ke.profile.Level
	ke.plate.Clear()
	ke.lastResult = &result
	ke.judging = false
	ke.mu.Unlock()

	ke.emit(events.EventTypeDishJudged, "", map[string]interface{}{
		"name": result.Name, "score": result.TotalScore, "gold": gold, "xp": xp,
	}, 0)
	if leveledUp {
		ke.emit(events.EventTypeLevelUp, "", map[string]int{"level": level}, 0)
		ke.logger.Info(fmt.Sprintf("Level up! Now level %d", level))
	}
	ke.notify()
	return &result, nil
}

// clampRewards enforces the penalty floor for failed dishes and passes
// the judged amounts through otherwise.
func clampRewards(result *ai.DishResult) (gold, xp int) {
	gold, xp = result.RewardGold, result.RewardXP
	if result.TotalScore < FailScoreThreshold {
		gold = -maxInt(MinGoldPenalty, absInt(gold))
		xp = -maxInt(MinXPPenalty, absInt(xp))
	}
	return gold, xp
}

// ReplyToExcuse lets the player talk back to one of the last verdict's
// critics. The critic answers in character.
func (ke *KitchenEngine) ReplyToExcuse(ctx context.Context, criticName, excuse string) (string, error) {
	ke.mu.Lock()
	last := ke.lastResult
	ke.mu.Unlock()
	if last == nil {
		return "", ke.reject("excuse", errors.New("no judged dish"), "")
	}

	persona, review := "", ""
	for _, r := range last.Reviews {
		if r.CriticName == criticName {
			persona, review = r.Persona, r.Text
			break
		}
	}
	if review == "" {
		return "", ke.reject("excuse", fmt.Errorf("no review by %s", criticName), "")
	}

	return ke.collaborator.ReplyToExcuse(ctx, criticName, persona, last.Name, excuse, review), nil
}

// RefillWater restores the tank to full. Free, matching the tap on the
// kitchen wall.
func (ke *KitchenEngine) RefillWater() {
	ke.mu.Lock()
	ke.profile.RefillWater()
	water := ke.profile.Water
	ke.mu.Unlock()
	ke.emit(events.EventTypeWaterRefilled, "", map[string]int{"water": water}, 0)
	ke.notify()
}

// EngineSnapshot is the transport-facing view of a session.
type EngineSnapshot struct {
	SessionID  string               `json:"session_id"`
	Round      int                  `json:"round"`
	Profile    player.Profile       `json:"profile"`
	Inventory  map[string]int       `json:"inventory"`
	Station    StationSnapshot      `json:"station"`
	Plate      []item.Item          `json:"plate"`
	Critics    []ai.Critic          `json:"critics"`
	Minigame   *MinigameSnapshot    `json:"minigame,omitempty"`
	LastResult *ai.DishResult       `json:"last_result,omitempty"`
}

// StationSnapshot is the workstation's wire view.
type StationSnapshot struct {
	State SlotState  `json:"state"`
	Item  *item.Item `json:"item,omitempty"`
}

// MinigameSnapshot is the active challenge's wire view.
type MinigameSnapshot struct {
	Kind     rules.MinigameKind `json:"kind"`
	Tool     rules.Tool         `json:"tool"`
	Progress float64            `json:"progress"`
	Status   MinigameStatus     `json:"status"`
}

// Snapshot captures the full session state for the transport.
func (ke *KitchenEngine) Snapshot() EngineSnapshot {
	ke.mu.Lock()
	defer ke.mu.Unlock()

	snap := EngineSnapshot{
		SessionID:  ke.sessionID,
		Round:      ke.round,
		Profile:    *ke.profile,
		Inventory:  ke.inventory.Snapshot(),
		Plate:      ke.plate.Items(),
		Critics:    append([]ai.Critic(nil), ke.critics...),
		LastResult: ke.lastResult,
	}
	snap.Station.State = ke.station.State()
	if it, ok := ke.station.Current(); ok {
		snap.Station.Item = &it
	}
	if ke.minigame != nil {
		snap.Minigame = &MinigameSnapshot{
			Kind:     ke.minigame.Kind,
			Tool:     ke.minigame.Tool,
			Progress: ke.minigame.Progress(),
			Status:   ke.minigame.Status(),
		}
	}
	return snap
}

// Profile returns a copy of the player profile.
func (ke *KitchenEngine) Profile() player.Profile {
	ke.mu.Lock()
	defer ke.mu.Unlock()
	return *ke.profile
}

// RestoreProfile overwrites the profile from a persisted snapshot.
func (ke *KitchenEngine) RestoreProfile(p player.Profile) {
	ke.mu.Lock()
	*ke.profile = p
	ke.mu.Unlock()
}

// materialize turns a rule resolution into the concrete success item.
func (ke *KitchenEngine) materialize(res rules.Resolution, src item.Item, tool rules.Tool) item.Item {
	if res.SuccessID != "" {
		if def, ok := ke.registry.Resolve(res.SuccessID); ok {
			return def
		}
		ke.logger.Warn("Rule output unresolvable, synthesizing: " + res.SuccessID)
	}
	if res.Synthesized != nil {
		return *res.Synthesized
	}
	return rules.Synthesize(src, tool, ke.basePrice(src))
}

// failureItem resolves the failure candidate, falling back to the
// universal burnt mess.
func (ke *KitchenEngine) failureItem(res rules.Resolution) item.Item {
	id := res.FailureID
	if id == "" {
		id = item.FallbackID
	}
	if def, ok := ke.registry.Resolve(id); ok {
		return def
	}
	def, _ := ke.registry.Resolve(item.FallbackID)
	return def
}

// basePrice finds the price of an item's unprocessed origin for
// synthesis pricing.
func (ke *KitchenEngine) basePrice(it item.Item) int {
	if it.BaseID != "" {
		if base, ok := ke.registry.Resolve(it.BaseID); ok && base.Price > 0 {
			return base.Price
		}
	}
	return it.Price
}

func (ke *KitchenEngine) reject(action string, err error, itemID string) error {
	ke.emit(events.EventTypeActionRejected, itemID, map[string]string{
		"action": action, "reason": err.Error(),
	}, 0)
	ke.logger.Warn(fmt.Sprintf("Rejected %s: %v", action, err))
	return err
}

func (ke *KitchenEngine) emit(t events.EventType, itemID string, payload interface{}, round int) {
	if round == 0 {
		ke.mu.Lock()
		round = ke.round
		ke.mu.Unlock()
	}
	ke.emitRound(t, itemID, payload, round)
}

// emitRound appends without touching the engine lock; callers holding
// the lock capture the round themselves.
func (ke *KitchenEngine) emitRound(t events.EventType, itemID string, payload interface{}, round int) {
	ke.eventLog.Append(events.GameEvent{
		ID:        events.GenerateEventID(),
		Timestamp: time.Now(),
		Type:      t,
		SessionID: ke.sessionID,
		ItemID:    itemID,
		Payload:   payload,
		Round:     round,
	})
}

func (ke *KitchenEngine) notify() {
	if ke.OnStateChange != nil {
		ke.OnStateChange()
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
