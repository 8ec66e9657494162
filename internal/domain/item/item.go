// Package item defines the core domain entities for ingredients and
// processed foods. This package is PURE and must NOT import any
// infrastructure packages.
package item

// Category represents the kind of ingredient.
type Category string

const (
	CategoryMeat    Category = "meat"
	CategoryVeg     Category = "veg"
	CategoryFruit   Category = "fruit"
	CategorySpice   Category = "spice"
	CategoryLiquid  Category = "liquid"
	CategoryGrain   Category = "grain"
	CategoryWeird   Category = "weird"
	CategoryMagic   Category = "magic"
	CategoryCosmic  Category = "cosmic"
	CategoryTech    Category = "tech"
	CategoryOffice  Category = "office"
	CategoryDungeon Category = "dungeon"
)

// Categories lists every valid ingredient category.
var Categories = []Category{
	CategoryMeat, CategoryVeg, CategoryFruit, CategorySpice,
	CategoryLiquid, CategoryGrain, CategoryWeird, CategoryMagic,
	CategoryCosmic, CategoryTech, CategoryOffice, CategoryDungeon,
}

// State represents the processing state of an item.
type State string

const (
	StateRaw          State = "raw"
	StateChopped      State = "chopped"
	StateBoiled       State = "boiled"
	StateFried        State = "fried"
	StateBaked        State = "baked"
	StateSeasoned     State = "seasoned"
	StateCracked      State = "cracked"
	StateBlended      State = "blended"
	StateMagicInfused State = "magic_infused"
	StateBurnt        State = "burnt"
	StateWaste        State = "waste"
	StateFrozen       State = "frozen"
	StateSmashed      State = "smashed"
	StateGrated       State = "grated"
	StateRadiated     State = "radiated"
)

// Item is an ingredient or processed food. Immutable once created.
type Item struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Emoji    string   `json:"emoji"`
	Category Category `json:"category"`
	Price    int      `json:"price"`
	Tier     int      `json:"tier"` // 1=Common .. 5=Legendary
	Desc     string   `json:"desc"`
	State    State    `json:"state"`
	BaseID   string   `json:"base_id,omitempty"` // Unprocessed origin, if derived
	IsCustom bool     `json:"is_custom,omitempty"`
}

// FallbackID is the universal failure output when no explicit
// failure item is declared for a transformation.
const FallbackID = "burnt_food"

// ShortCircuitID is the forced output when electronics meet the pot.
const ShortCircuitID = "wet_electronics"

// Lookup returns the catalog definition for an item id.
func Lookup(id string) (Item, bool) {
	def, ok := catalogIndex[id]
	return def, ok
}

// CatalogItems returns the full static catalog (base + processed outputs).
func CatalogItems() []Item {
	out := make([]Item, 0, len(BaseIngredients)+len(ProcessedItems))
	out = append(out, BaseIngredients...)
	out = append(out, ProcessedItems...)
	return out
}

var catalogIndex = func() map[string]Item {
	idx := make(map[string]Item, len(BaseIngredients)+len(ProcessedItems))
	for _, it := range BaseIngredients {
		idx[it.ID] = it
	}
	for _, it := range ProcessedItems {
		idx[it.ID] = it
	}
	return idx
}()
