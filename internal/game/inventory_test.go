package game

import (
	"errors"
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestInventoryAutoWield(t *testing.T) {
	var inv Inventory
	first := NewWeapon("Dagger", tileSword, 1, NoSound)
	second := NewWeapon("Sword", tileSword, 2, NoSound)
	wand := NewWand("Wand", tileWand, &HealingSpell{Amount: 1, Sound: NoSound}, 1)

	inv.Add(NewItem("Rock", tileRock))
	testutil.AssertEqual(t, "weapon after rock", inv.WieldedWeapon() == nil, true)

	inv.Add(first)
	inv.Add(second)
	inv.Add(wand)
	testutil.AssertEqual(t, "weapon", inv.WieldedWeapon() == first, true)
	testutil.AssertEqual(t, "wand", inv.WieldedWand() == wand, true)
	testutil.AssertEqual(t, "len", inv.Len(), 4)
}

func TestInventoryRemoveClearsWielded(t *testing.T) {
	tests := map[string]struct {
		remove    func(sword, wand, rock *Item) *Item
		expWeapon bool
		expWand   bool
	}{
		"remove weapon": {
			remove:  func(sword, _, _ *Item) *Item { return sword },
			expWand: true,
		},
		"remove wand": {
			remove:    func(_, wand, _ *Item) *Item { return wand },
			expWeapon: true,
		},
		"remove plain item": {
			remove:    func(_, _, rock *Item) *Item { return rock },
			expWeapon: true,
			expWand:   true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var inv Inventory
			sword := NewWeapon("Sword", tileSword, 2, NoSound)
			wand := NewWand("Wand", tileWand, &HealingSpell{Amount: 1, Sound: NoSound}, 1)
			rock := NewItem("Rock", tileRock)
			inv.Add(sword)
			inv.Add(wand)
			inv.Add(rock)

			if err := inv.Remove(tt.remove(sword, wand, rock)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "weapon wielded", inv.WieldedWeapon() != nil, tt.expWeapon)
			testutil.AssertEqual(t, "wand wielded", inv.WieldedWand() != nil, tt.expWand)
			checkWieldedCarried(t, &inv)
		})
	}
}

func TestInventoryWieldNotCarried(t *testing.T) {
	var inv Inventory
	sword := NewWeapon("Sword", tileSword, 2, NoSound)

	err := inv.WieldWeapon(sword)
	if !errors.Is(err, ErrItemNotCarried) {
		t.Errorf("expected ErrItemNotCarried, got %v", err)
	}
	err = inv.Remove(sword)
	if !errors.Is(err, ErrItemNotCarried) {
		t.Errorf("expected ErrItemNotCarried, got %v", err)
	}
	testutil.AssertEqual(t, "find", inv.Find(sword.Id()) == nil, true)
}

func TestInventoryTakeAll(t *testing.T) {
	var inv Inventory
	inv.Add(NewWeapon("Sword", tileSword, 2, NoSound))
	inv.Add(NewItem("Rock", tileRock))

	items := inv.takeAll()
	testutil.AssertEqual(t, "taken", len(items), 2)
	testutil.AssertEqual(t, "len", inv.Len(), 0)
	checkWieldedCarried(t, &inv)
}

func checkWieldedCarried(t *testing.T, inv *Inventory) {
	t.Helper()
	if w := inv.WieldedWeapon(); w != nil && inv.Find(w.Id()) == nil {
		t.Errorf("wielded weapon %s is not carried", w.Name)
	}
	if w := inv.WieldedWand(); w != nil && inv.Find(w.Id()) == nil {
		t.Errorf("wielded wand %s is not carried", w.Name)
	}
}
