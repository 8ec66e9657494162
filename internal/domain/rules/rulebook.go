package rules

import (
	"math"

	"github.com/okovalenko/AlchemistChef/server/internal/domain/item"
)

// SynthPriceMultiplier is applied to the base price when a transformation
// is synthesized generically instead of matching an explicit rule.
const SynthPriceMultiplier = 1.2

// Rule maps an input selector and a tool to its outputs. A rule selects
// either by exact item id or by category; exact always wins.
type Rule struct {
	InputID         string        `json:"input_id,omitempty"`
	InputCategory   item.Category `json:"input_category,omitempty"`
	Tool            Tool          `json:"tool"`
	RequiresWater   bool          `json:"requires_water,omitempty"`
	OutputID        string        `json:"output_id,omitempty"`
	FailureOutputID string        `json:"failure_output_id,omitempty"`
	Description     string        `json:"description"`
}

type exactKey struct {
	inputID string
	tool    Tool
}

type categoryKey struct {
	category item.Category
	tool     Tool
}

// RuleBook holds transformation rules in explicit priority order:
// exact-id rules are indexed first, category rules second in declared
// order, so matching never depends on incidental slice ordering.
type RuleBook struct {
	exact    map[exactKey]Rule
	category map[categoryKey][]Rule
}

// NewRuleBook indexes the given rules.
func NewRuleBook(list []Rule) *RuleBook {
	rb := &RuleBook{
		exact:    make(map[exactKey]Rule),
		category: make(map[categoryKey][]Rule),
	}
	for _, r := range list {
		if r.InputID != "" {
			k := exactKey{inputID: r.InputID, tool: r.Tool}
			if _, dup := rb.exact[k]; !dup {
				rb.exact[k] = r
			}
			continue
		}
		if r.InputCategory != "" {
			k := categoryKey{category: r.InputCategory, tool: r.Tool}
			rb.category[k] = append(rb.category[k], r)
		}
	}
	return rb
}

// Resolution is the outcome of matching an item against a tool.
// Either SuccessID names an explicit output, or Synthesized holds a
// generated derived item. FailureID may be empty; callers substitute
// the universal fallback.
type Resolution struct {
	Rule          *Rule
	SuccessID     string
	FailureID     string
	Synthesized   *item.Item
	RequiresWater bool
	Description   string
}

// Resolve determines the success and failure candidates for applying a
// tool to an item. Deterministic priority: exact id rule, first declared
// category rule, the electronics short-circuit hazard, generic synthesis.
// basePrice is the price of the item's unprocessed origin, used for
// synthesized pricing.
func (rb *RuleBook) Resolve(src item.Item, tool Tool, basePrice int) Resolution {
	prof := Profile(tool)

	if r, ok := rb.exact[exactKey{inputID: src.ID, tool: tool}]; ok {
		return Resolution{
			Rule:          &r,
			SuccessID:     r.OutputID,
			FailureID:     r.FailureOutputID,
			RequiresWater: r.RequiresWater || prof.RequiresWater,
			Description:   r.Description,
		}
	}

	if list := rb.category[categoryKey{category: src.Category, tool: tool}]; len(list) > 0 {
		r := list[0]
		res := Resolution{
			Rule:          &r,
			SuccessID:     r.OutputID,
			FailureID:     r.FailureOutputID,
			RequiresWater: r.RequiresWater || prof.RequiresWater,
			Description:   r.Description,
		}
		if r.OutputID == "" {
			synth := Synthesize(src, tool, basePrice)
			res.Synthesized = &synth
		}
		return res
	}

	// Environment hazard: boiling electronics always short-circuits
	// unless an explicit rule said otherwise above.
	if (src.Category == item.CategoryTech || src.Category == item.CategoryOffice) && tool == ToolPot {
		return Resolution{
			SuccessID:     item.ShortCircuitID,
			RequiresWater: prof.RequiresWater,
			Description:   "Коротке замикання",
		}
	}

	synth := Synthesize(src, tool, basePrice)
	return Resolution{
		Synthesized:   &synth,
		RequiresWater: prof.RequiresWater,
		Description:   prof.NamePrefix,
	}
}

// Synthesize derives a generic processed item for an unmatched (item, tool)
// pair. The id encodes the processing state, the base reference points at
// the unprocessed origin, and the price gains a fixed markup over it.
func Synthesize(src item.Item, tool Tool, basePrice int) item.Item {
	prof := Profile(tool)
	baseID := src.BaseID
	if baseID == "" {
		baseID = src.ID
	}
	if basePrice <= 0 {
		basePrice = src.Price
	}
	return item.Item{
		ID:       src.ID + "_" + string(prof.State),
		Name:     prof.NamePrefix + " " + src.Name,
		Emoji:    src.Emoji,
		Category: src.Category,
		Price:    int(math.Ceil(float64(basePrice) * SynthPriceMultiplier)),
		Tier:     src.Tier,
		Desc:     src.Desc,
		State:    prof.State,
		BaseID:   baseID,
		IsCustom: src.IsCustom,
	}
}

// DefaultRules is the built-in rule set: specific recipes first for
// readability, then category-level behaviour. Indexing in NewRuleBook
// makes the priority explicit regardless of this ordering.
var DefaultRules = []Rule{
	// Specific recipes
	{InputID: "egg", Tool: ToolPan, OutputID: "egg_fried", Description: "Смаження"},
	{InputID: "egg", Tool: ToolPot, RequiresWater: true, OutputID: "egg_boiled", Description: "Варіння"},
	{InputID: "battery", Tool: ToolPot, OutputID: "wet_electronics", Description: "Вибух"},
	{InputID: "iphone", Tool: ToolBlender, OutputID: "glass_shards", Description: "Will it blend?"},
	{InputID: "water_drop", Tool: ToolFreezer, OutputID: "ice_cube", Description: "Заморозка"},
	{InputID: "cheese", Tool: ToolKnife, Description: "Кубики"},
	{InputID: "cheese", Tool: ToolGrater, Description: "Тертий сир"},
	{InputID: "popcorn", Tool: ToolMicrowave, Description: "Розігрів"},

	// Pan
	{InputCategory: item.CategoryMeat, Tool: ToolPan, Description: "Стейк"},
	{InputCategory: item.CategoryVeg, Tool: ToolPan, Description: "Гриль"},
	{InputCategory: item.CategoryDungeon, Tool: ToolPan, Description: "Печеня"},

	// Pot
	{InputCategory: item.CategoryVeg, Tool: ToolPot, RequiresWater: true, Description: "Суп"},
	{InputCategory: item.CategoryGrain, Tool: ToolPot, RequiresWater: true, Description: "Каша"},
	{InputCategory: item.CategoryMeat, Tool: ToolPot, RequiresWater: true, Description: "Бульйон"},

	// Knife
	{InputCategory: item.CategoryVeg, Tool: ToolKnife, Description: "Нарізка"},
	{InputCategory: item.CategoryFruit, Tool: ToolKnife, Description: "Салат"},
	{InputCategory: item.CategoryMeat, Tool: ToolKnife, Description: "Тартар"},

	// Blender
	{InputCategory: item.CategoryFruit, Tool: ToolBlender, Description: "Смузі"},
	{InputCategory: item.CategoryVeg, Tool: ToolBlender, Description: "Пюре"},

	// Oven
	{InputCategory: item.CategoryGrain, Tool: ToolOven, Description: "Випічка"},
	{InputCategory: item.CategoryMeat, Tool: ToolOven, Description: "Запікання"},

	// Hammer
	{InputCategory: item.CategoryMeat, Tool: ToolHammer, Description: "Відбивна"},
	{InputCategory: item.CategoryDungeon, Tool: ToolHammer, Description: "Розплющення"},

	// Grater
	{InputCategory: item.CategoryVeg, Tool: ToolGrater, Description: "Стружка"},

	// Freezer
	{InputCategory: item.CategoryLiquid, Tool: ToolFreezer, Description: "Лід"},
	{InputCategory: item.CategoryMeat, Tool: ToolFreezer, Description: "Заморозка"},

	// Microwave
	{InputCategory: item.CategoryTech, Tool: ToolMicrowave, Description: "Радіація"},
}
