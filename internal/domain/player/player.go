// Package player defines the profile state for a kitchen session.
// This package is PURE and must NOT import any infrastructure packages.
package player

// LevelThresholds is the cumulative XP required for each level.
// Index i holds the XP needed to reach level i+1.
var LevelThresholds = []int{0, 100, 500, 1500, 4000, 10000, 25000, 60000, 100000}

const (
	// WaterMax is the capacity of the water tank.
	WaterMax = 100
	// WaterCost is charged per water-gated tool use.
	WaterCost = 20
	// WaterThreshold is the minimum water required to invoke a gated tool.
	WaterThreshold = 20

	StartingGold  = 150
	StartingWater = WaterMax
)

// Profile represents the mutable state of the player within a session.
type Profile struct {
	Name  string `json:"name"`
	Gold  int    `json:"gold"`
	XP    int    `json:"xp"`
	Level int    `json:"level"`
	Water int    `json:"water"` // 0-100
}

// NewProfile creates a fresh profile with starting resources.
func NewProfile(name string) *Profile {
	return &Profile{
		Name:  name,
		Gold:  StartingGold,
		XP:    0,
		Level: 1,
		Water: StartingWater,
	}
}

// CanAfford reports whether the player has at least cost gold.
func (p *Profile) CanAfford(cost int) bool {
	return p.Gold >= cost
}

// AddGold applies a gold delta. May leave gold negative after a penalty.
func (p *Profile) AddGold(delta int) {
	p.Gold += delta
}

// AddXP applies an XP delta and runs a single level-up check.
// A level increments by exactly one per check even if the XP jump
// crosses several thresholds at once. Levels never decrease.
func (p *Profile) AddXP(delta int) (leveledUp bool) {
	p.XP += delta
	if p.Level < len(LevelThresholds) && p.XP >= LevelThresholds[p.Level] {
		p.Level++
		return true
	}
	return false
}

// HasWater reports whether a water-gated tool may be invoked.
func (p *Profile) HasWater() bool {
	return p.Water >= WaterThreshold
}

// UseWater charges the fixed water cost, floored at zero.
func (p *Profile) UseWater() {
	p.Water -= WaterCost
	if p.Water < 0 {
		p.Water = 0
	}
}

// RefillWater restores the tank to capacity.
func (p *Profile) RefillWater() {
	p.Water = WaterMax
}
