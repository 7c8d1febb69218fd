package game

import "github.com/google/uuid"

// ItemClass says how an item can be wielded.
type ItemClass int

const (
	ItemPlain ItemClass = iota
	ItemWeapon
	ItemWand
)

// Feature codes describe an item's class to clients.
const (
	FeatureWeapon = "W"
	FeatureWand   = "S"
	FeatureNone   = "N"
)

// Item is anything that can be carried in an inventory.
type Item struct {
	Name  string
	Tile  int
	Class ItemClass

	// Weapons
	Damage   int
	HitSound SoundId

	// Wands
	Spell    Spell
	ManaCost int

	id string
}

// NewItem creates an item that can be carried but not wielded.
func NewItem(name string, tile int) *Item {
	return &Item{Name: name, Tile: tile, Class: ItemPlain, HitSound: NoSound, id: uuid.New().String()}
}

// NewWeapon creates an item that can be wielded as a weapon.
func NewWeapon(name string, tile int, damage int, hitSound SoundId) *Item {
	i := NewItem(name, tile)
	i.Class = ItemWeapon
	i.Damage = damage
	i.HitSound = hitSound
	return i
}

// NewWand creates an item that casts spell when wielded as a wand.
func NewWand(name string, tile int, spell Spell, manaCost int) *Item {
	i := NewItem(name, tile)
	i.Class = ItemWand
	i.Spell = spell
	i.ManaCost = manaCost
	return i
}

func (i *Item) TileId() int { return i.Tile }
func (i *Item) Kind() Kind  { return KindItem }
func (i *Item) thing()      {}

// Id is the item's unique id, stable for the life of the process.
func (i *Item) Id() string {
	return i.id
}

func (i *Item) FeatureCode() string {
	switch i.Class {
	case ItemWeapon:
		return FeatureWeapon
	case ItemWand:
		return FeatureWand
	default:
		return FeatureNone
	}
}
