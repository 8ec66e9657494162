package engine

import (
	"testing"

	"github.com/okovalenko/AlchemistChef/server/internal/domain/item"
	"github.com/okovalenko/AlchemistChef/server/internal/events"
	"github.com/okovalenko/AlchemistChef/server/internal/platform/logger"
)

func newTestSystems() (*RegistrySystem, *InventorySystem, *events.EventLog) {
	log := logger.NewLogger()
	el := events.NewEventLog(nil)
	reg := NewRegistrySystem(el, log)
	inv := NewInventorySystem(reg, el, log, "TEST_SESSION")
	return reg, inv, el
}

func TestInventoryCreditAndDebit(t *testing.T) {
	_, inv, _ := newTestSystems()
	egg, _ := item.Lookup("egg")

	inv.Credit(egg, 2, "test")
	if inv.Count("egg") != 2 {
		t.Errorf("Expected 2 eggs, got %d", inv.Count("egg"))
	}

	if !inv.Debit("egg", "test") {
		t.Error("Expected debit with stock to succeed")
	}
	if !inv.Debit("egg", "test") {
		t.Error("Expected second debit to succeed")
	}
	if inv.Debit("egg", "test") {
		t.Error("Expected debit at zero stock to be refused")
	}
	if inv.Count("egg") != 0 {
		t.Errorf("Expected empty stock, got %d", inv.Count("egg"))
	}
}

func TestInventoryCreditRegistersCustomItems(t *testing.T) {
	reg, inv, _ := newTestSystems()
	custom := item.Item{
		ID: "custom_123", Name: "Мрія", Emoji: "💭",
		Category: item.CategoryWeird, Price: 50, Tier: 2,
		State: item.StateRaw, IsCustom: true,
	}

	inv.Credit(custom, 1, "custom")

	def, ok := reg.Resolve("custom_123")
	if !ok {
		t.Fatal("Expected the custom item to be registered on credit")
	}
	if def.Name != "Мрія" {
		t.Errorf("Unexpected registered definition: %+v", def)
	}
}

func TestInventorySnapshotAndRestore(t *testing.T) {
	_, inv, _ := newTestSystems()
	egg, _ := item.Lookup("egg")
	inv.Credit(egg, 3, "test")
	inv.Debit("egg", "test")

	snap := inv.Snapshot()
	if snap["egg"] != 2 {
		t.Errorf("Expected snapshot count 2, got %d", snap["egg"])
	}

	_, inv2, _ := newTestSystems()
	inv2.Restore(snap)
	if inv2.Count("egg") != 2 {
		t.Errorf("Expected restored count 2, got %d", inv2.Count("egg"))
	}
}

func TestRegistryResolvesCatalogAndDerived(t *testing.T) {
	reg, _, _ := newTestSystems()

	if _, ok := reg.Resolve("egg"); !ok {
		t.Error("Expected catalog items to resolve")
	}

	derived := item.Item{ID: "carrot_chopped", Name: "Нарізана Морква", Category: item.CategoryVeg, Price: 11, BaseID: "carrot", State: item.StateChopped}
	reg.RecordDerived(derived)
	if _, ok := reg.Resolve("carrot_chopped"); !ok {
		t.Error("Expected derived items to resolve after recording")
	}

	// Idempotent: re-recording does not overwrite.
	changed := derived
	changed.Price = 999
	reg.RecordDerived(changed)
	def, _ := reg.Resolve("carrot_chopped")
	if def.Price != 11 {
		t.Errorf("Expected the first recording to stick, got price %d", def.Price)
	}
}

func TestRegistryRejectsNonCustomRegistration(t *testing.T) {
	reg, _, _ := newTestSystems()
	plain := item.Item{ID: "fake", Name: "Фейк"}
	if reg.RegisterCustom(plain, "TEST_SESSION") {
		t.Error("Expected non-custom items to be rejected")
	}
}

func TestPlateTotalCostUsesBasePrices(t *testing.T) {
	reg, _, _ := newTestSystems()
	p := NewPlate()

	// A processed egg with zero own price costs its base.
	fried, _ := item.Lookup("egg_fried")
	fried.BaseID = "egg"
	p.Add(fried)

	// A derived carrot points at its raw origin.
	p.Add(item.Item{ID: "carrot_chopped", Price: 11, BaseID: "carrot"})

	// An unresolvable orphan costs the default.
	p.Add(item.Item{ID: "mystery"})

	// egg(10) + carrot(9) + default(10)
	if got := p.TotalCost(reg); got != 29 {
		t.Errorf("Expected plate cost 29, got %d", got)
	}
}

func TestPlateClearAndCopy(t *testing.T) {
	p := NewPlate()
	egg, _ := item.Lookup("egg")
	p.Add(egg)

	items := p.Items()
	items[0].ID = "mutated"
	if p.Items()[0].ID != "egg" {
		t.Error("Expected Items to return a copy")
	}

	p.Clear()
	if p.Len() != 0 {
		t.Errorf("Expected an empty plate after clear, got %d", p.Len())
	}
}
