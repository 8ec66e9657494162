package rules

import (
	"testing"

	"github.com/okovalenko/AlchemistChef/server/internal/domain/item"
)

func defaultBook() *RuleBook {
	return NewRuleBook(DefaultRules)
}

func TestExactRuleBeatsCategoryRule(t *testing.T) {
	rb := defaultBook()
	egg, _ := item.Lookup("egg")

	// Egg is meat; the category rule for meat+pan would synthesize a
	// steak, but the exact egg rule must win.
	res := rb.Resolve(egg, ToolPan, egg.Price)
	if res.SuccessID != "egg_fried" {
		t.Errorf("Expected exact rule output egg_fried, got %q", res.SuccessID)
	}
	if res.Synthesized != nil {
		t.Error("Expected no synthesis when an exact rule matches")
	}
}

func TestCategoryRuleSynthesizesWhenNoOutputDeclared(t *testing.T) {
	rb := defaultBook()
	carrot, _ := item.Lookup("carrot")

	res := rb.Resolve(carrot, ToolKnife, carrot.Price)
	if res.Rule == nil {
		t.Fatal("Expected the veg+knife category rule to match")
	}
	if res.Synthesized == nil {
		t.Fatal("Expected a synthesized output for a rule without OutputID")
	}
	if res.Synthesized.ID != "carrot_chopped" {
		t.Errorf("Expected synthesized id carrot_chopped, got %s", res.Synthesized.ID)
	}
	if res.Synthesized.State != item.StateChopped {
		t.Errorf("Expected chopped state, got %s", res.Synthesized.State)
	}
}

func TestPotRequiresWater(t *testing.T) {
	rb := defaultBook()
	carrot, _ := item.Lookup("carrot")

	res := rb.Resolve(carrot, ToolPot, carrot.Price)
	if !res.RequiresWater {
		t.Error("Expected boiling vegetables to require water")
	}

	res = rb.Resolve(carrot, ToolPan, carrot.Price)
	if res.RequiresWater {
		t.Error("Expected frying to need no water")
	}
}

func TestElectronicsShortCircuitInPot(t *testing.T) {
	rb := defaultBook()

	// No category rule covers tech+pot, so the hazard fires.
	cpu, _ := item.Lookup("cpu")
	res := rb.Resolve(cpu, ToolPot, cpu.Price)
	if res.SuccessID != item.ShortCircuitID {
		t.Errorf("Expected boiled tech to short-circuit, got %q", res.SuccessID)
	}

	stapler, _ := item.Lookup("stapler")
	res = rb.Resolve(stapler, ToolPot, stapler.Price)
	if res.SuccessID != item.ShortCircuitID {
		t.Errorf("Expected boiled office gear to short-circuit, got %q", res.SuccessID)
	}
}

func TestExplicitBatteryRuleOverridesHazard(t *testing.T) {
	rb := defaultBook()
	battery, _ := item.Lookup("battery")

	res := rb.Resolve(battery, ToolPot, battery.Price)
	if res.SuccessID != "wet_electronics" {
		t.Errorf("Expected the explicit battery rule to apply, got %q", res.SuccessID)
	}
	if res.Rule == nil {
		t.Error("Expected an explicit rule match, not the generic hazard")
	}
}

func TestUnmatchedPairFallsToSynthesis(t *testing.T) {
	rb := defaultBook()
	apple, _ := item.Lookup("apple")

	// Fruit has no microwave rule and is not electronics.
	res := rb.Resolve(apple, ToolMicrowave, apple.Price)
	if res.Synthesized == nil {
		t.Fatal("Expected generic synthesis for an unmatched pair")
	}
	if res.Synthesized.ID != "apple_radiated" {
		t.Errorf("Expected apple_radiated, got %s", res.Synthesized.ID)
	}
}

func TestSynthesizePricing(t *testing.T) {
	src := item.Item{ID: "carrot", Name: "Морква", Category: item.CategoryVeg, Price: 9, Tier: 1}

	out := Synthesize(src, ToolKnife, 9)
	// ceil(9 * 1.2) = 11
	if out.Price != 11 {
		t.Errorf("Expected synthesized price 11, got %d", out.Price)
	}
	if out.BaseID != "carrot" {
		t.Errorf("Expected base reference carrot, got %s", out.BaseID)
	}
}

func TestSynthesizeKeepsBaseReferenceThroughChains(t *testing.T) {
	src := item.Item{ID: "carrot_chopped", Name: "Нарізана Морква", Category: item.CategoryVeg, Price: 11, BaseID: "carrot"}

	out := Synthesize(src, ToolPan, 9)
	if out.BaseID != "carrot" {
		t.Errorf("Expected the original base to survive chained processing, got %s", out.BaseID)
	}
	if out.ID != "carrot_chopped_fried" {
		t.Errorf("Expected state-chained id carrot_chopped_fried, got %s", out.ID)
	}
	// Markup applies to the base price, not the inflated chain price.
	if out.Price != 11 {
		t.Errorf("Expected price ceil(9*1.2)=11, got %d", out.Price)
	}
}

func TestToolProfilesCoverAllTools(t *testing.T) {
	for tool, prof := range ToolProfiles {
		if prof.NamePrefix == "" || prof.State == "" {
			t.Errorf("Tool %s has an incomplete profile", tool)
		}
		if prof.Minigame != MinigameTiming && prof.Minigame != MinigameMashing {
			t.Errorf("Tool %s has unknown minigame kind %q", tool, prof.Minigame)
		}
	}

	if KnownTool(Tool("CHAINSAW")) {
		t.Error("Expected unknown tools to be rejected")
	}
	prof := Profile(Tool("CHAINSAW"))
	if prof.NamePrefix == "" {
		t.Error("Expected a neutral fallback profile for unknown tools")
	}
}
