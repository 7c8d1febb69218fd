package game

import (
	"fmt"
	"slices"
)

// Inventory is what a mobile carries. The wielded weapon and wand are
// always items in the inventory.
type Inventory struct {
	items  []*Item
	weapon *Item
	wand   *Item
}

// Add puts an item in the inventory. The first weapon (or wand) added while
// nothing is wielded in that slot becomes wielded.
func (inv *Inventory) Add(item *Item) {
	inv.items = append(inv.items, item)
	switch {
	case item.Class == ItemWeapon && inv.weapon == nil:
		inv.weapon = item
	case item.Class == ItemWand && inv.wand == nil:
		inv.wand = item
	}
}

// Remove takes an item out of the inventory, unwielding it first.
func (inv *Inventory) Remove(item *Item) error {
	i := slices.Index(inv.items, item)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrItemNotCarried, item.Id())
	}
	if inv.weapon == item {
		inv.weapon = nil
	}
	if inv.wand == item {
		inv.wand = nil
	}
	inv.items = slices.Delete(inv.items, i, i+1)
	return nil
}

// Find returns the carried item with the given id, or nil.
func (inv *Inventory) Find(id string) *Item {
	for _, item := range inv.items {
		if item.Id() == id {
			return item
		}
	}
	return nil
}

// Items returns the carried items in the order they were added.
func (inv *Inventory) Items() []*Item {
	return slices.Clone(inv.items)
}

func (inv *Inventory) Len() int {
	return len(inv.items)
}

// WieldedWeapon returns the wielded weapon or nil.
func (inv *Inventory) WieldedWeapon() *Item {
	return inv.weapon
}

// WieldedWand returns the wielded wand or nil.
func (inv *Inventory) WieldedWand() *Item {
	return inv.wand
}

func (inv *Inventory) WieldWeapon(item *Item) error {
	if err := inv.checkWieldable(item, ItemWeapon); err != nil {
		return err
	}
	inv.weapon = item
	return nil
}

func (inv *Inventory) WieldWand(item *Item) error {
	if err := inv.checkWieldable(item, ItemWand); err != nil {
		return err
	}
	inv.wand = item
	return nil
}

func (inv *Inventory) UnwieldWeapon() {
	inv.weapon = nil
}

func (inv *Inventory) UnwieldWand() {
	inv.wand = nil
}

func (inv *Inventory) checkWieldable(item *Item, class ItemClass) error {
	if !slices.Contains(inv.items, item) {
		return fmt.Errorf("%w: %s", ErrItemNotCarried, item.Id())
	}
	if item.Class != class {
		return fmt.Errorf("%w: %s", ErrNotWieldable, item.Name)
	}
	return nil
}

// takeAll empties the inventory and returns what it held.
func (inv *Inventory) takeAll() []*Item {
	items := inv.items
	inv.items = nil
	inv.weapon = nil
	inv.wand = nil
	return items
}
