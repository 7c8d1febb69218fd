package game

import (
	"fmt"

	"github.com/google/uuid"
)

// Alignment decides who a mobile is hostile to.
type Alignment int

const (
	AlignmentNeutral Alignment = iota
	AlignmentFriendly
	AlignmentUnfriendly
)

func (a Alignment) String() string {
	switch a {
	case AlignmentFriendly:
		return "friendly"
	case AlignmentUnfriendly:
		return "unfriendly"
	default:
		return "neutral"
	}
}

// EquipmentType selects the wield slot for an equip request.
type EquipmentType string

const (
	EquipWeapon EquipmentType = "W"
	EquipWand   EquipmentType = "S"
)

type Stats struct {
	Speed     int
	Health    int
	MaxHealth int
	Mana      int
	MaxMana   int
}

// NewStats returns stats at full health and mana.
func NewStats(maxHealth, maxMana, speed int) Stats {
	return Stats{Speed: speed, Health: maxHealth, MaxHealth: maxHealth, Mana: maxMana, MaxMana: maxMana}
}

// Mobile is a thing that moves around and can be hurt. Its room and position
// always name the cell that holds it.
type Mobile struct {
	Name      string
	Tile      int
	Stats     Stats
	Brain     Brain
	Inventory Inventory

	id           string
	room         *Room
	position     Point
	whenItCanAct Millis
	dead         bool
	player       *Player
}

// NewMobile creates a mobile at full health carrying items. It is not placed
// anywhere until it is spawned or added to a world.
func NewMobile(name string, tile int, stats Stats, brain Brain, items ...*Item) *Mobile {
	m := &Mobile{
		Name:  name,
		Tile:  tile,
		Stats: stats,
		Brain: brain,
		id:    uuid.New().String(),
	}
	for _, item := range items {
		m.Inventory.Add(item)
	}
	return m
}

func (m *Mobile) TileId() int { return m.Tile }
func (m *Mobile) Kind() Kind  { return KindMobile }
func (m *Mobile) thing()      {}

func (m *Mobile) Id() string           { return m.id }
func (m *Mobile) Room() *Room          { return m.room }
func (m *Mobile) Position() Point      { return m.position }
func (m *Mobile) IsDead() bool         { return m.dead }
func (m *Mobile) WhenItCanAct() Millis { return m.whenItCanAct }

// Player returns the player this mobile belongs to, or nil for monsters.
func (m *Mobile) Player() *Player {
	return m.player
}

// Location returns where the mobile stands.
func (m *Mobile) Location() Location {
	return Location{RoomNumber: m.room.Number(), Coordinates: m.position}
}

func (m *Mobile) Alignment() Alignment {
	if m.player != nil {
		return AlignmentFriendly
	}
	if m.Brain == nil {
		return AlignmentNeutral
	}
	return m.Brain.Alignment()
}

// Cooldown is the time between actions. Fast mobiles can reach zero or less.
func (m *Mobile) Cooldown() Millis {
	return Millis(500 - m.Stats.Speed*20)
}

// CanAct reports whether the mobile's cooldown has elapsed at now.
func (m *Mobile) CanAct(now Millis) bool {
	return now >= m.whenItCanAct
}

// advanceCooldown is called after each action. whenItCanAct never moves
// backwards.
func (m *Mobile) advanceCooldown(now Millis) {
	m.whenItCanAct = max(m.whenItCanAct, now+m.Cooldown())
}

// WieldedWeapon returns the weapon the mobile is wielding, or nil.
func (m *Mobile) WieldedWeapon() *Item {
	return m.Inventory.WieldedWeapon()
}

func (m *Mobile) MoveNorth(w *World, sc *ScreenChanges) error { return m.move(0, -1, w, sc) }
func (m *Mobile) MoveSouth(w *World, sc *ScreenChanges) error { return m.move(0, 1, w, sc) }
func (m *Mobile) MoveEast(w *World, sc *ScreenChanges) error  { return m.move(1, 0, w, sc) }
func (m *Mobile) MoveWest(w *World, sc *ScreenChanges) error  { return m.move(-1, 0, w, sc) }

// move steps one cell. Moving off the edge of the room does nothing; a
// blocked cell is bumped instead of entered.
func (m *Mobile) move(dx, dy int, w *World, sc *ScreenChanges) error {
	from := m.position
	to := from.Add(dx, dy)
	if !m.room.InBounds(to) {
		return nil
	}

	target := m.room.CellAt(to)
	if !target.CanEnter(m) {
		return target.DoBump(m, w, sc)
	}

	if err := m.room.CellAt(from).Remove(m); err != nil {
		return fmt.Errorf("moving %s from %s: %w", m.Name, from, err)
	}
	m.position = to
	target.Add(m)
	sc.ChangeTwoCells(m.room, from, to)
	return target.DoEnter(m, w, sc)
}

// GoToLocation moves the mobile anywhere in the world regardless of what
// occupies the destination. A player arriving in a new room triggers that
// room's lazy spawn.
func (m *Mobile) GoToLocation(loc Location, w *World, sc *ScreenChanges) error {
	dest := w.Room(loc.RoomNumber)
	if dest == nil {
		return fmt.Errorf("%w: %d", ErrRoomNotFound, loc.RoomNumber)
	}

	oldRoom, oldPos := m.room, m.position
	if err := oldRoom.CellAt(oldPos).Remove(m); err != nil {
		return fmt.Errorf("moving %s from %s: %w", m.Name, oldPos, err)
	}
	sc.ChangeCell(oldRoom, oldPos)

	m.room = dest
	m.position = loc.Coordinates
	dest.CellAt(loc.Coordinates).Add(m)
	sc.ChangeCell(dest, loc.Coordinates)

	if m.player == nil || dest == oldRoom {
		return nil
	}
	if err := sc.PlayerSwitchedRooms(m.player, oldRoom, dest); err != nil {
		return err
	}
	w.addMobiles(dest.PlayerEntersRoom(sc))
	return nil
}

// TakeDamage lowers health. Death is resolved later by the world.
func (m *Mobile) TakeDamage(amount int) {
	m.Stats.Health -= amount
	if m.Stats.Health < 1 {
		m.dead = true
	}
}

// PickUpItem picks up the topmost item in the mobile's cell, if any.
func (m *Mobile) PickUpItem(sc *ScreenChanges) error {
	cell := m.room.CellAt(m.position)
	things := cell.Things()
	var top *Item
	for i := len(things) - 1; i >= 0; i-- {
		if item, ok := things[i].(*Item); ok {
			top = item
			break
		}
	}
	if top == nil {
		if m.player != nil {
			sc.AddConsoleTextForPlayer(m.player, render(tmplNothingHere, nil))
		}
		return nil
	}

	if err := cell.Remove(top); err != nil {
		return err
	}
	m.Inventory.Add(top)
	sc.ChangeCell(m.room, m.position)
	if m.player != nil {
		sc.InventoryChanged(m.player)
		sc.AddConsoleTextForPlayer(m.player, render(tmplPickedUp, map[string]any{"Item": top.Name}))
	}
	return nil
}

// DropItem places a carried item in the mobile's cell. An unknown id is
// ignored.
func (m *Mobile) DropItem(itemId string, sc *ScreenChanges) error {
	item := m.Inventory.Find(itemId)
	if item == nil {
		return nil
	}
	if err := m.Inventory.Remove(item); err != nil {
		return err
	}
	m.room.CellAt(m.position).Add(item)
	sc.ChangeCell(m.room, m.position)
	if m.player != nil {
		sc.InventoryChanged(m.player)
		sc.AddConsoleTextForPlayer(m.player, render(tmplDropped, map[string]any{"Item": item.Name}))
	}
	return nil
}

// Equip wields a carried item in the given slot. An unknown id is ignored;
// an item of the wrong class returns ErrNotWieldable.
func (m *Mobile) Equip(slot EquipmentType, itemId string, sc *ScreenChanges) error {
	item := m.Inventory.Find(itemId)
	if item == nil {
		return nil
	}

	var err error
	switch slot {
	case EquipWeapon:
		err = m.Inventory.WieldWeapon(item)
	case EquipWand:
		err = m.Inventory.WieldWand(item)
	default:
		err = fmt.Errorf("%w: slot %q", ErrNotWieldable, slot)
	}
	if err != nil {
		return err
	}

	if m.player != nil {
		sc.InventoryChanged(m.player)
		sc.AddConsoleTextForPlayer(m.player, render(tmplWielded, map[string]any{"Item": item.Name}))
	}
	return nil
}

// CastSpell casts the wielded wand's spell on the mobile itself, paying its
// mana cost.
func (m *Mobile) CastSpell(w *World, sc *ScreenChanges) error {
	wand := m.Inventory.WieldedWand()
	if wand == nil || wand.Spell == nil {
		if m.player != nil {
			sc.AddConsoleTextForPlayer(m.player, render(tmplNoWand, nil))
		}
		return nil
	}
	if m.Stats.Mana < wand.ManaCost {
		if m.player != nil {
			sc.AddConsoleTextForPlayer(m.player, render(tmplNoMana, map[string]any{"Cost": wand.ManaCost, "Item": wand.Name}))
		}
		return nil
	}

	m.Stats.Mana -= wand.ManaCost
	if m.player != nil {
		sc.AddConsoleTextForPlayer(m.player, render(tmplCastSpell, map[string]any{"Spell": wand.Spell.Name()}))
	}
	return wand.Spell.Cast(m, w, sc)
}

// DoRegen restores one point of health and mana.
func (m *Mobile) DoRegen() {
	m.Stats.Health = min(m.Stats.Health+1, m.Stats.MaxHealth)
	m.Stats.Mana = min(m.Stats.Mana+1, m.Stats.MaxMana)
}
