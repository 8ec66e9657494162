package item

import "testing"

func TestCatalogIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, it := range CatalogItems() {
		if seen[it.ID] {
			t.Errorf("Duplicate catalog id: %s", it.ID)
		}
		seen[it.ID] = true
	}
}

func TestCatalogEntriesAreComplete(t *testing.T) {
	valid := make(map[Category]bool)
	for _, c := range Categories {
		valid[c] = true
	}

	for _, it := range CatalogItems() {
		if it.Name == "" || it.Emoji == "" {
			t.Errorf("Item %s is missing name or emoji", it.ID)
		}
		if !valid[it.Category] {
			t.Errorf("Item %s has unknown category %q", it.ID, it.Category)
		}
		if it.Tier < 1 || it.Tier > 5 {
			t.Errorf("Item %s has tier %d outside 1-5", it.ID, it.Tier)
		}
		if it.Price < 0 {
			t.Errorf("Item %s has negative price %d", it.ID, it.Price)
		}
	}
}

func TestOnlyWaterIsFreeInShop(t *testing.T) {
	for _, it := range BaseIngredients {
		if it.Price == 0 && it.ID != "water_drop" {
			t.Errorf("Shop item %s is free, only water_drop may be", it.ID)
		}
	}
}

func TestProcessedItemsAreNotRaw(t *testing.T) {
	for _, it := range ProcessedItems {
		if it.State == StateRaw {
			t.Errorf("Processed item %s is still in the raw state", it.ID)
		}
	}
}

func TestFailureOutputsExist(t *testing.T) {
	if _, ok := Lookup(FallbackID); !ok {
		t.Errorf("Universal failure item %s is not in the catalog", FallbackID)
	}
	if _, ok := Lookup(ShortCircuitID); !ok {
		t.Errorf("Short-circuit item %s is not in the catalog", ShortCircuitID)
	}
}

func TestStarterKitIsTierOne(t *testing.T) {
	for _, id := range StarterKit {
		it, ok := Lookup(id)
		if !ok {
			t.Errorf("Starter item %s is not in the catalog", id)
			continue
		}
		if it.Tier != 1 {
			t.Errorf("Starter item %s has tier %d, want 1", id, it.Tier)
		}
	}
}

func TestLookup(t *testing.T) {
	egg, ok := Lookup("egg")
	if !ok {
		t.Fatal("Expected egg in the catalog")
	}
	if egg.Category != CategoryMeat || egg.Price != 10 {
		t.Errorf("Unexpected egg definition: %+v", egg)
	}

	if _, ok := Lookup("no_such_item"); ok {
		t.Error("Expected lookup of unknown id to fail")
	}
}
