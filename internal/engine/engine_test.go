package engine

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/okovalenko/AlchemistChef/server/internal/domain/player"
	"github.com/okovalenko/AlchemistChef/server/internal/domain/rules"
	"github.com/okovalenko/AlchemistChef/server/internal/events"
	"github.com/okovalenko/AlchemistChef/server/internal/infra/ai"
	"github.com/okovalenko/AlchemistChef/server/internal/platform/logger"
)

// fakeCollaborator is a scripted stand-in for the LLM gateway.
type fakeCollaborator struct {
	mu         sync.Mutex
	verdict    ai.DishResult
	analysis   ai.CustomAnalysis
	judged     [][]string
	judgedCost []int
	block      chan struct{} // when set, EvaluateDish waits on it
}

func (f *fakeCollaborator) GenerateCritics(ctx context.Context, level int) []ai.Critic {
	return []ai.Critic{
		{ID: "c1", Name: "Пан Василь", Persona: "Гурман з села", Avatar: "👨‍🌾"},
		{ID: "c2", Name: "Леді Гага", Persona: "Ексцентрична зірка", Avatar: "👩‍🎤"},
		{ID: "c3", Name: "Орк Гриша", Persona: "Любить м'ясо", Avatar: "👹"},
	}
}

func (f *fakeCollaborator) EvaluateDish(ctx context.Context, ingredients []string, critics []ai.Critic, cost int) ai.DishResult {
	f.mu.Lock()
	f.judged = append(f.judged, ingredients)
	f.judgedCost = append(f.judgedCost, cost)
	block := f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return f.verdict
}

func (f *fakeCollaborator) AnalyzeCustomIngredient(ctx context.Context, name string) ai.CustomAnalysis {
	return f.analysis
}

func (f *fakeCollaborator) ReplyToExcuse(ctx context.Context, criticName, persona, dishName, excuse, originalReview string) string {
	return "Вибачення не приймаються, " + criticName + "."
}

func newTestEngine(fake *fakeCollaborator) *KitchenEngine {
	reg, inv, el := newTestSystems()
	profile := player.NewProfile("Тест-Кухар")
	ke := NewKitchenEngine("TEST_SESSION", profile, reg, inv, rules.NewRuleBook(rules.DefaultRules), fake, el, logger.NewLogger())
	ke.ResolveDelay = 10 * time.Millisecond
	ke.TickInterval = time.Hour // timing games stand still unless ticked for real
	return ke
}

func waitResolution(ke *KitchenEngine) {
	time.Sleep(ke.ResolveDelay + 100*time.Millisecond)
}

func TestStartRoundInstallsJury(t *testing.T) {
	ke := newTestEngine(&fakeCollaborator{})
	jury := ke.StartRound(context.Background())
	if len(jury) != 3 {
		t.Fatalf("Expected 3 critics, got %d", len(jury))
	}

	snap := ke.Snapshot()
	if snap.Round != 1 {
		t.Errorf("Expected round 1, got %d", snap.Round)
	}
	if len(snap.Critics) != 3 {
		t.Errorf("Expected the jury in the snapshot, got %d critics", len(snap.Critics))
	}
}

func TestPurchaseDebitsGoldAndCreditsInventory(t *testing.T) {
	ke := newTestEngine(&fakeCollaborator{})

	if err := ke.Purchase("egg"); err != nil {
		t.Fatalf("Expected purchase to succeed, got %v", err)
	}
	snap := ke.Snapshot()
	if snap.Profile.Gold != player.StartingGold-10 {
		t.Errorf("Expected gold %d, got %d", player.StartingGold-10, snap.Profile.Gold)
	}
	if snap.Inventory["egg"] != 1 {
		t.Errorf("Expected one egg in inventory, got %d", snap.Inventory["egg"])
	}
}

func TestPurchaseRejectsUnknownAndUnaffordable(t *testing.T) {
	ke := newTestEngine(&fakeCollaborator{})

	if err := ke.Purchase("no_such_item"); err != ErrUnknownItem {
		t.Errorf("Expected ErrUnknownItem, got %v", err)
	}

	if err := ke.Purchase("antimatter"); err != ErrNotEnoughGold {
		t.Errorf("Expected ErrNotEnoughGold, got %v", err)
	}
	if got := ke.Profile().Gold; got != player.StartingGold {
		t.Errorf("Expected gold untouched after rejection, got %d", got)
	}
}

func TestPlaceItemRequiresOwnership(t *testing.T) {
	ke := newTestEngine(&fakeCollaborator{})

	if err := ke.PlaceItem("egg"); err != ErrNotOwned {
		t.Errorf("Expected ErrNotOwned for an unowned item, got %v", err)
	}

	ke.Purchase("egg")
	if err := ke.PlaceItem("egg"); err != nil {
		t.Fatalf("Expected placement to succeed, got %v", err)
	}
	if got := ke.Snapshot().Inventory["egg"]; got != 0 {
		t.Errorf("Expected the egg to leave the inventory, got %d", got)
	}

	// The slot is single occupancy.
	ke.Purchase("bread")
	if err := ke.PlaceItem("bread"); err != ErrStationBusy {
		t.Errorf("Expected ErrStationBusy, got %v", err)
	}
	if got := ke.Snapshot().Inventory["bread"]; got != 1 {
		t.Errorf("Expected the bread debit to roll back, got %d", got)
	}
}

func TestApplyToolWaterGate(t *testing.T) {
	ke := newTestEngine(&fakeCollaborator{})
	ke.Purchase("egg")
	ke.PlaceItem("egg")

	ke.RestoreProfile(player.Profile{Name: "Тест-Кухар", Gold: 100, Level: 1, Water: 15})
	if err := ke.ApplyTool(rules.ToolPot); err != ErrNotEnoughWater {
		t.Fatalf("Expected ErrNotEnoughWater at 15 water, got %v", err)
	}

	ke.RestoreProfile(player.Profile{Name: "Тест-Кухар", Gold: 100, Level: 1, Water: 20})
	if err := ke.ApplyTool(rules.ToolPot); err != nil {
		t.Fatalf("Expected the pot at exactly 20 water, got %v", err)
	}
	if got := ke.Profile().Water; got != 0 {
		t.Errorf("Expected the tank drained to 0, got %d", got)
	}

	ke.RefillWater()
	if got := ke.Profile().Water; got != player.WaterMax {
		t.Errorf("Expected a free refill to %d, got %d", player.WaterMax, got)
	}
}

func TestApplyToolRejectsUnknownToolAndEmptyStation(t *testing.T) {
	ke := newTestEngine(&fakeCollaborator{})

	if err := ke.ApplyTool(rules.Tool("CHAINSAW")); err != ErrUnknownTool {
		t.Errorf("Expected ErrUnknownTool, got %v", err)
	}
	if err := ke.ApplyTool(rules.ToolKnife); err != ErrStationEmpty {
		t.Errorf("Expected ErrStationEmpty, got %v", err)
	}
}

func TestMashingMinigameTransformsItem(t *testing.T) {
	ke := newTestEngine(&fakeCollaborator{})
	ke.Purchase("carrot")
	ke.PlaceItem("carrot")

	if err := ke.ApplyTool(rules.ToolKnife); err != nil {
		t.Fatalf("Expected the knife to stage, got %v", err)
	}
	snap := ke.Snapshot()
	if snap.Minigame == nil || snap.Minigame.Kind != rules.MinigameMashing {
		t.Fatal("Expected an active mashing minigame")
	}

	for i := 0; i < 9; i++ {
		if err := ke.MinigameAct(); err != nil {
			t.Fatalf("Expected mash %d to be accepted, got %v", i, err)
		}
	}
	waitResolution(ke)

	snap = ke.Snapshot()
	if snap.Minigame != nil {
		t.Error("Expected the minigame to be torn down after resolution")
	}
	if snap.Station.Item == nil || snap.Station.Item.ID != "carrot_chopped" {
		t.Fatalf("Expected carrot_chopped on the station, got %+v", snap.Station.Item)
	}

	// The derived item must resolve for later chained processing.
	if _, ok := ke.registry.Resolve("carrot_chopped"); !ok {
		t.Error("Expected the derived item recorded in the registry")
	}
}

func TestTimingMinigameFriesEgg(t *testing.T) {
	ke := newTestEngine(&fakeCollaborator{})
	ke.TickInterval = 2 * time.Millisecond

	for i := 0; i < 3; i++ {
		if err := ke.Purchase("egg"); err != nil {
			t.Fatalf("Expected purchase %d to succeed, got %v", i+1, err)
		}
	}
	if err := ke.PlaceItem("egg"); err != nil {
		t.Fatalf("Expected placement to succeed, got %v", err)
	}
	if got := ke.Snapshot().Inventory["egg"]; got != 2 {
		t.Fatalf("Expected 2 eggs left after placing one, got %d", got)
	}

	if err := ke.ApplyTool(rules.ToolPan); err != nil {
		t.Fatalf("Expected the pan to start a timing game, got %v", err)
	}
	snap := ke.Snapshot()
	if snap.Minigame == nil || snap.Minigame.Kind != rules.MinigameTiming {
		t.Fatalf("Expected an active timing minigame, got %+v", snap.Minigame)
	}

	// Watch the bar fill on the real clock and stop it inside the
	// target window.
	deadline := time.Now().Add(5 * time.Second)
	for {
		if time.Now().After(deadline) {
			t.Fatal("Timing bar never reached the target window")
		}
		snap = ke.Snapshot()
		if snap.Minigame == nil {
			t.Fatal("Minigame vanished before the stop")
		}
		p := snap.Minigame.Progress
		if p > TargetWindowEnd {
			t.Fatalf("Overshot the window at %.1f before acting", p)
		}
		if p >= TargetWindowStart {
			break
		}
	}
	if err := ke.MinigameAct(); err != nil {
		t.Fatalf("Expected the stop to be accepted, got %v", err)
	}
	waitResolution(ke)

	snap = ke.Snapshot()
	if snap.Minigame != nil {
		t.Errorf("Expected the minigame torn down, got %+v", snap.Minigame)
	}
	if snap.Station.Item == nil || snap.Station.Item.ID != "egg_fried" {
		t.Fatalf("Expected egg_fried on the station, got %+v", snap.Station.Item)
	}
	if snap.Inventory["egg"] != 2 {
		t.Errorf("Expected the pantry untouched by the cook, got %d eggs", snap.Inventory["egg"])
	}
}

func TestMinigameResolutionLoggedBeforeFollowups(t *testing.T) {
	ke := newTestEngine(&fakeCollaborator{})
	ke.Purchase("carrot")
	ke.PlaceItem("carrot")
	ke.ApplyTool(rules.ToolKnife)
	for i := 0; i < 9; i++ {
		ke.MinigameAct()
	}
	waitResolution(ke)

	if err := ke.PlateItem(); err != nil {
		t.Fatalf("Expected plating after resolution, got %v", err)
	}

	log := ke.eventLog.GetBySession("TEST_SESSION")
	resolved, plated := -1, -1
	for i, e := range log {
		switch e.Type {
		case events.EventTypeMinigameResolved:
			resolved = i
		case events.EventTypeItemPlated:
			plated = i
		}
	}
	if resolved == -1 || plated == -1 {
		t.Fatalf("Expected both entries in the log, got resolved=%d plated=%d", resolved, plated)
	}
	if resolved > plated {
		t.Errorf("Expected resolution logged before plating, got positions %d and %d", resolved, plated)
	}
}

func TestDiscardCancelsPendingMinigame(t *testing.T) {
	ke := newTestEngine(&fakeCollaborator{})
	ke.Purchase("carrot")
	ke.PlaceItem("carrot")
	ke.ApplyTool(rules.ToolKnife)

	if err := ke.Discard(); err != nil {
		t.Fatalf("Expected discard to succeed, got %v", err)
	}

	snap := ke.Snapshot()
	if snap.Station.Item != nil {
		t.Error("Expected an empty station after discard")
	}
	if err := ke.MinigameAct(); err != ErrNoMinigame {
		t.Errorf("Expected ErrNoMinigame after discard, got %v", err)
	}
}

func TestSubmitDishAppliesRewards(t *testing.T) {
	fake := &fakeCollaborator{verdict: ai.DishResult{
		Name:       "Морквяний Шедевр",
		TotalScore: 8.5,
		RewardGold: 40,
		RewardXP:   120,
		Reviews:    []ai.Review{{CriticName: "Пан Василь", Persona: "Гурман з села", Text: "Смачно!", Score: 8.5}},
	}}
	ke := newTestEngine(fake)
	ke.StartRound(context.Background())
	ke.Purchase("carrot")
	ke.PlaceItem("carrot")
	if err := ke.PlateItem(); err != nil {
		t.Fatalf("Expected plating to succeed, got %v", err)
	}

	goldBefore := ke.Profile().Gold
	result, err := ke.SubmitDish(context.Background())
	if err != nil {
		t.Fatalf("Expected a verdict, got %v", err)
	}
	if result.Name != "Морквяний Шедевр" {
		t.Errorf("Unexpected verdict: %+v", result)
	}

	prof := ke.Profile()
	if prof.Gold != goldBefore+40 {
		t.Errorf("Expected gold %d, got %d", goldBefore+40, prof.Gold)
	}
	if prof.XP != 120 || prof.Level != 2 {
		t.Errorf("Expected 120 XP and level 2, got %d XP level %d", prof.XP, prof.Level)
	}

	snap := ke.Snapshot()
	if len(snap.Plate) != 0 {
		t.Error("Expected the plate cleared after judging")
	}
	if snap.LastResult == nil {
		t.Error("Expected the verdict kept for excuses")
	}

	// The judged descriptions carry the processing state.
	if len(fake.judged) != 1 || !strings.Contains(fake.judged[0][0], "Стан: raw") {
		t.Errorf("Unexpected judged descriptions: %v", fake.judged)
	}
	if fake.judgedCost[0] != 9 {
		t.Errorf("Expected judged cost 9, got %d", fake.judgedCost[0])
	}
}

func TestSubmitDishClampsPenalties(t *testing.T) {
	fake := &fakeCollaborator{verdict: ai.DishResult{
		Name:       "Жахіття",
		TotalScore: 2.0,
		RewardGold: -3,
		RewardXP:   -5,
	}}
	ke := newTestEngine(fake)
	ke.Purchase("carrot")
	ke.PlaceItem("carrot")
	ke.PlateItem()

	goldBefore := ke.Profile().Gold
	xpBefore := ke.Profile().XP
	if _, err := ke.SubmitDish(context.Background()); err != nil {
		t.Fatalf("Expected a verdict, got %v", err)
	}

	prof := ke.Profile()
	if prof.Gold != goldBefore-MinGoldPenalty {
		t.Errorf("Expected the gold penalty floored at %d, got delta %d", MinGoldPenalty, prof.Gold-goldBefore)
	}
	if prof.XP != xpBefore-MinXPPenalty {
		t.Errorf("Expected the XP penalty floored at %d, got delta %d", MinXPPenalty, prof.XP-xpBefore)
	}
}

func TestSubmitDishKeepsLargePenalties(t *testing.T) {
	fake := &fakeCollaborator{verdict: ai.DishResult{
		Name:       "Катастрофа",
		TotalScore: 1.0,
		RewardGold: -55,
		RewardXP:   -80,
	}}
	ke := newTestEngine(fake)
	ke.Purchase("carrot")
	ke.PlaceItem("carrot")
	ke.PlateItem()

	goldBefore := ke.Profile().Gold
	ke.SubmitDish(context.Background())
	if delta := ke.Profile().Gold - goldBefore; delta != -55 {
		t.Errorf("Expected the judged penalty -55 to pass through, got %d", delta)
	}
}

func TestSubmitDishForcesPositiveRewardsNegativeOnFailure(t *testing.T) {
	// A failing score with positive rewards keeps the magnitude but
	// flips the sign.
	fake := &fakeCollaborator{verdict: ai.DishResult{
		Name:       "Оманливий Блиск",
		TotalScore: 2.0,
		RewardGold: 50,
		RewardXP:   30,
	}}
	ke := newTestEngine(fake)
	ke.Purchase("carrot")
	ke.PlaceItem("carrot")
	ke.PlateItem()

	goldBefore := ke.Profile().Gold
	xpBefore := ke.Profile().XP
	ke.SubmitDish(context.Background())

	prof := ke.Profile()
	if delta := prof.Gold - goldBefore; delta != -50 {
		t.Errorf("Expected gold +50 flipped to -50, got %d", delta)
	}
	if delta := prof.XP - xpBefore; delta != -30 {
		t.Errorf("Expected XP +30 flipped to -30, got %d", delta)
	}
}

func TestSubmitDishRejectsEmptyPlateAndConcurrentJudging(t *testing.T) {
	fake := &fakeCollaborator{block: make(chan struct{}), verdict: ai.DishResult{Name: "Щось", TotalScore: 5}}
	ke := newTestEngine(fake)

	if _, err := ke.SubmitDish(context.Background()); err != ErrEmptyPlate {
		t.Fatalf("Expected ErrEmptyPlate, got %v", err)
	}

	ke.Purchase("carrot")
	ke.PlaceItem("carrot")
	ke.PlateItem()

	done := make(chan struct{})
	go func() {
		ke.SubmitDish(context.Background())
		close(done)
	}()

	// Wait for the first submission to take the judging slot.
	for i := 0; i < 100; i++ {
		fake.mu.Lock()
		started := len(fake.judged) > 0
		fake.mu.Unlock()
		if started {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}

	if _, err := ke.SubmitDish(context.Background()); err != ErrJudgingInFlight {
		t.Errorf("Expected ErrJudgingInFlight, got %v", err)
	}

	close(fake.block)
	<-done
}

func TestCreateCustomItem(t *testing.T) {
	fake := &fakeCollaborator{analysis: ai.CustomAnalysis{Emoji: "🦄", Tier: 4, Category: "magic"}}
	ke := newTestEngine(fake)

	it, err := ke.CreateCustomItem(context.Background(), "Сльози Єдинорога", 50)
	if err != nil {
		t.Fatalf("Expected custom creation, got %v", err)
	}
	if !strings.HasPrefix(it.ID, "custom_") {
		t.Errorf("Expected a custom_ id, got %s", it.ID)
	}
	if it.Tier != 4 || it.Emoji != "🦄" {
		t.Errorf("Expected the analysis applied, got %+v", it)
	}

	snap := ke.Snapshot()
	if snap.Profile.Gold != player.StartingGold-50 {
		t.Errorf("Expected the price charged, got gold %d", snap.Profile.Gold)
	}
	if snap.Inventory[it.ID] != 1 {
		t.Error("Expected the custom item credited to the inventory")
	}
	if _, ok := ke.registry.Resolve(it.ID); !ok {
		t.Error("Expected the custom item registered")
	}
}

func TestCreateCustomItemRejections(t *testing.T) {
	fake := &fakeCollaborator{analysis: ai.CustomAnalysis{Emoji: "💸", Tier: 1, Category: "weird"}}
	ke := newTestEngine(fake)

	if _, err := ke.CreateCustomItem(context.Background(), "", 10); err != ErrEmptyName {
		t.Errorf("Expected ErrEmptyName, got %v", err)
	}
	if _, err := ke.CreateCustomItem(context.Background(), "Золотий Пил", 9999); err != ErrNotEnoughGold {
		t.Errorf("Expected ErrNotEnoughGold, got %v", err)
	}
}

func TestReplyToExcuse(t *testing.T) {
	fake := &fakeCollaborator{verdict: ai.DishResult{
		Name:       "Борщ",
		TotalScore: 6.0,
		Reviews:    []ai.Review{{CriticName: "Пан Василь", Persona: "Гурман з села", Text: "Без сметани?", Score: 6}},
	}}
	ke := newTestEngine(fake)

	if _, err := ke.ReplyToExcuse(context.Background(), "Пан Василь", "Сметана скінчилась"); err == nil {
		t.Error("Expected a rejection before any dish was judged")
	}

	ke.Purchase("carrot")
	ke.PlaceItem("carrot")
	ke.PlateItem()
	ke.SubmitDish(context.Background())

	reply, err := ke.ReplyToExcuse(context.Background(), "Пан Василь", "Сметана скінчилась")
	if err != nil {
		t.Fatalf("Expected a reply, got %v", err)
	}
	if !strings.Contains(reply, "Пан Василь") {
		t.Errorf("Unexpected reply: %s", reply)
	}

	if _, err := ke.ReplyToExcuse(context.Background(), "Невідомий", "..."); err == nil {
		t.Error("Expected a rejection for a critic who never reviewed")
	}
}
