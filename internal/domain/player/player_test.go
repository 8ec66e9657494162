package player

import "testing"

func TestNewProfileStartingResources(t *testing.T) {
	p := NewProfile("Шеф")

	if p.Gold != StartingGold {
		t.Errorf("Expected starting gold %d, got %d", StartingGold, p.Gold)
	}
	if p.Level != 1 {
		t.Errorf("Expected starting level 1, got %d", p.Level)
	}
	if p.Water != WaterMax {
		t.Errorf("Expected a full water tank, got %d", p.Water)
	}
}

func TestAddXPSingleLevelPerCheck(t *testing.T) {
	p := NewProfile("Шеф")

	// A huge XP jump crosses several thresholds but only one level
	// is granted per check.
	leveled := p.AddXP(2000)
	if !leveled {
		t.Error("Expected a level up after crossing the threshold")
	}
	if p.Level != 2 {
		t.Errorf("Expected exactly one level gained, got level %d", p.Level)
	}

	// The banked XP grants the next level on the next check.
	leveled = p.AddXP(0)
	if !leveled || p.Level != 3 {
		t.Errorf("Expected banked XP to grant level 3 on next check, got level %d (leveled=%v)", p.Level, leveled)
	}
}

func TestAddXPNegativeNeverDelevels(t *testing.T) {
	p := NewProfile("Шеф")
	p.AddXP(150)
	if p.Level != 2 {
		t.Fatalf("Setup failed, expected level 2, got %d", p.Level)
	}

	p.AddXP(-1000)
	if p.Level != 2 {
		t.Errorf("Expected level to survive an XP penalty, got %d", p.Level)
	}
	if p.XP != -850 {
		t.Errorf("Expected XP to go negative after penalty, got %d", p.XP)
	}
}

func TestAddGoldMayGoNegative(t *testing.T) {
	p := NewProfile("Шеф")
	p.Gold = 5
	p.AddGold(-10)
	if p.Gold != -5 {
		t.Errorf("Expected penalties to push gold negative, got %d", p.Gold)
	}
}

func TestWaterGateAndFloor(t *testing.T) {
	p := NewProfile("Шеф")

	p.Water = WaterThreshold - 1
	if p.HasWater() {
		t.Error("Expected the gate to close below the threshold")
	}

	p.Water = WaterThreshold
	if !p.HasWater() {
		t.Error("Expected the gate to open at exactly the threshold")
	}

	p.UseWater()
	if p.Water != 0 {
		t.Errorf("Expected water %d - %d = 0, got %d", WaterThreshold, WaterCost, p.Water)
	}

	// Draining an already low tank floors at zero.
	p.Water = 5
	p.UseWater()
	if p.Water != 0 {
		t.Errorf("Expected water floored at zero, got %d", p.Water)
	}

	p.RefillWater()
	if p.Water != WaterMax {
		t.Errorf("Expected refill to restore %d, got %d", WaterMax, p.Water)
	}
}
