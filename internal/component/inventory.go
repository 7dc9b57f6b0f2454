package component

import "roguemind/internal/ecs"

const CInventory ecs.ComponentType = 6

type Inventory struct {
	Items    []Item
	Capacity int
}

// Take removes and returns the item at index i.
func (inv *Inventory) Take(i int) (Item, bool) {
	if i < 0 || i >= len(inv.Items) {
		return Item{}, false
	}
	it := inv.Items[i]
	inv.Items = append(inv.Items[:i:i], inv.Items[i+1:]...)
	return it, true
}

// Full reports whether another item would exceed capacity. Zero capacity
// means unlimited.
func (inv Inventory) Full() bool {
	return inv.Capacity > 0 && len(inv.Items) >= inv.Capacity
}

func (Inventory) Type() ecs.ComponentType { return CInventory }
