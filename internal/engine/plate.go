package engine

import "github.com/okovalenko/AlchemistChef/server/internal/domain/item"

// DefaultItemCost prices plate entries whose definition is unresolvable.
const DefaultItemCost = 10

// Plate is the ordered, append-only collection of finished items the
// player commits as one dish. Cleared on submission or explicit reset.
type Plate struct {
	items []item.Item
}

func NewPlate() *Plate {
	return &Plate{}
}

// Add appends a finished item.
func (p *Plate) Add(it item.Item) {
	p.items = append(p.items, it)
}

// Items returns a copy of the plated sequence.
func (p *Plate) Items() []item.Item {
	out := make([]item.Item, len(p.items))
	copy(out, p.items)
	return out
}

// Len returns the number of plated items.
func (p *Plate) Len() int {
	return len(p.items)
}

// Clear resets the plate.
func (p *Plate) Clear() {
	p.items = nil
}

// TotalCost sums the base price of every plated item: the unprocessed
// origin's price where one exists, else the item's own price, else a
// fixed default. Forwarded to the critics as pricing context.
func (p *Plate) TotalCost(registry *RegistrySystem) int {
	total := 0
	for _, it := range p.items {
		total += baseCost(it, registry)
	}
	return total
}

func baseCost(it item.Item, registry *RegistrySystem) int {
	id := it.BaseID
	if id == "" {
		id = it.ID
	}
	if def, ok := registry.Resolve(id); ok && def.Price > 0 {
		return def.Price
	}
	if it.Price > 0 {
		return it.Price
	}
	return DefaultItemCost
}
