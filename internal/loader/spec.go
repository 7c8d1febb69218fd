package loader

import (
	"fmt"
	"unicode/utf8"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-exploratron/internal/game"
	"github.com/pixil98/go-exploratron/internal/storage"
)

// PointSpec is a cell coordinate inside a room.
type PointSpec struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p PointSpec) point() game.Point {
	return game.Point{X: p.X, Y: p.Y}
}

// LocationSpec is a cell anywhere in the world.
type LocationSpec struct {
	Room int `json:"room"`
	X    int `json:"x"`
	Y    int `json:"y"`
}

func (l LocationSpec) location() game.Location {
	return game.Location{RoomNumber: l.Room, Coordinates: game.Point{X: l.X, Y: l.Y}}
}

// soundOf maps an optional sound id onto game.NoSound.
func soundOf(s *int) game.SoundId {
	if s == nil {
		return game.NoSound
	}
	return game.SoundId(*s)
}

type SpellSpec struct {
	Kind        string        `json:"kind"`
	Amount      int           `json:"amount,omitempty"`
	Destination *LocationSpec `json:"destination,omitempty"`
	Sound       *int          `json:"sound,omitempty"`
}

func (s *SpellSpec) Validate() error {
	el := errors.NewErrorList()
	switch s.Kind {
	case "healing":
		if s.Amount < 1 {
			el.Add(fmt.Errorf("healing amount must be positive"))
		}
	case "teleport":
		if s.Destination == nil {
			el.Add(fmt.Errorf("teleport destination must be set"))
		}
	default:
		el.Add(fmt.Errorf("%w: spell %q", ErrUnknownKind, s.Kind))
	}
	return el.Err()
}

func (s *SpellSpec) build() game.Spell {
	switch s.Kind {
	case "healing":
		return &game.HealingSpell{Amount: s.Amount, Sound: soundOf(s.Sound)}
	default:
		return &game.TeleportSpell{Destination: s.Destination.location(), Sound: soundOf(s.Sound)}
	}
}

// ItemSpec describes an item that can lie in a room or be carried.
type ItemSpec struct {
	Name     string     `json:"name"`
	Tile     int        `json:"tile"`
	Class    string     `json:"class"`
	Damage   int        `json:"damage,omitempty"`
	HitSound *int       `json:"hit_sound,omitempty"`
	Spell    *SpellSpec `json:"spell,omitempty"`
	ManaCost int        `json:"mana_cost,omitempty"`
}

func (s *ItemSpec) Validate() error {
	el := errors.NewErrorList()

	if s.Name == "" {
		el.Add(fmt.Errorf("name must be set"))
	}
	if s.Tile < 0 {
		el.Add(fmt.Errorf("tile must not be negative"))
	}

	switch s.Class {
	case "", "plain":
	case "weapon":
		if s.Damage < 1 {
			el.Add(fmt.Errorf("weapon damage must be positive"))
		}
	case "wand":
		if s.Spell == nil {
			el.Add(fmt.Errorf("wand spell must be set"))
		} else {
			el.Add(s.Spell.Validate())
		}
		if s.ManaCost < 0 {
			el.Add(fmt.Errorf("mana cost must not be negative"))
		}
	default:
		el.Add(fmt.Errorf("%w: item class %q", ErrUnknownKind, s.Class))
	}

	return el.Err()
}

// Build creates a new, uniquely identified item.
func (s *ItemSpec) Build() *game.Item {
	switch s.Class {
	case "weapon":
		return game.NewWeapon(s.Name, s.Tile, s.Damage, soundOf(s.HitSound))
	case "wand":
		return game.NewWand(s.Name, s.Tile, s.Spell.build(), s.ManaCost)
	default:
		return game.NewItem(s.Name, s.Tile)
	}
}

// MobileSpec describes a creature.
type MobileSpec struct {
	Name   string                   `json:"name"`
	Tile   int                      `json:"tile"`
	Health int                      `json:"health"`
	Mana   int                      `json:"mana"`
	Speed  int                      `json:"speed"`
	Brain  string                   `json:"brain"`
	Items  []storage.Ref[*ItemSpec] `json:"items,omitempty"`
}

func (s *MobileSpec) Validate() error {
	el := errors.NewErrorList()
	if s.Name == "" {
		el.Add(fmt.Errorf("name must be set"))
	}
	el.Add(validateStats(s.Health, s.Mana, s.Speed))
	if _, err := brainOf(s.Brain); err != nil {
		el.Add(err)
	}
	for _, ref := range s.Items {
		el.Add(ref.Validate())
	}
	return el.Err()
}

func validateStats(health, mana, speed int) error {
	el := errors.NewErrorList()
	if health < 1 {
		el.Add(fmt.Errorf("health must be positive"))
	}
	if mana < 0 {
		el.Add(fmt.Errorf("mana must not be negative"))
	}
	if speed < 0 {
		el.Add(fmt.Errorf("speed must not be negative"))
	}
	return el.Err()
}

func brainOf(name string) (game.Brain, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "random":
		return game.RandomBrain{}, nil
	case "aggressive":
		return game.AggressiveBrain{}, nil
	case "pursuit":
		return game.PursuitBrain{}, nil
	default:
		return nil, fmt.Errorf("%w: brain %q", ErrUnknownKind, name)
	}
}

func buildItems(refs []storage.Ref[*ItemSpec]) []*game.Item {
	items := make([]*game.Item, 0, len(refs))
	for _, ref := range refs {
		items = append(items, ref.Get().Build())
	}
	return items
}

// Build creates a new mobile. Its references must be resolved.
func (s *MobileSpec) Build() *game.Mobile {
	brain, _ := brainOf(s.Brain)
	return game.NewMobile(s.Name, s.Tile, game.NewStats(s.Health, s.Mana, s.Speed), brain, buildItems(s.Items)...)
}

// PlayerSpec is one entry in the player catalog.
type PlayerSpec struct {
	PlayerId string                   `json:"player_id"`
	Name     string                   `json:"name"`
	Tile     int                      `json:"tile"`
	Health   int                      `json:"health"`
	Mana     int                      `json:"mana"`
	Speed    int                      `json:"speed"`
	Start    LocationSpec             `json:"start"`
	Items    []storage.Ref[*ItemSpec] `json:"items,omitempty"`
}

func (s *PlayerSpec) Validate() error {
	el := errors.NewErrorList()
	if s.PlayerId == "" {
		el.Add(fmt.Errorf("player id must be set"))
	}
	if s.Name == "" {
		el.Add(fmt.Errorf("name must be set"))
	}
	el.Add(validateStats(s.Health, s.Mana, s.Speed))
	for _, ref := range s.Items {
		el.Add(ref.Validate())
	}
	return el.Err()
}

func (s *PlayerSpec) entry() game.PlayerCatalogEntry {
	return game.PlayerCatalogEntry{
		PlayerId: s.PlayerId,
		Name:     s.Name,
		Tile:     s.Tile,
		Stats:    game.NewStats(s.Health, s.Mana, s.Speed),
		Start:    s.Start.location(),
		Items:    func() []*game.Item { return buildItems(s.Items) },
	}
}

// TerrainSpec is what a layout character stands for.
type TerrainSpec struct {
	Kind      string `json:"kind"`
	Tile      int    `json:"tile"`
	BumpSound *int   `json:"bump_sound,omitempty"`
}

func (s TerrainSpec) build() game.Thing {
	if s.Kind == "wall" {
		return &game.Wall{Tile: s.Tile, BumpSound: soundOf(s.BumpSound)}
	}
	return &game.Floor{Tile: s.Tile}
}

// FeatureSpec is a fixture placed on top of the terrain.
type FeatureSpec struct {
	Kind        string        `json:"kind"`
	At          PointSpec     `json:"at"`
	Tile        int           `json:"tile"`
	Destination *LocationSpec `json:"destination,omitempty"`
	Sound       *int          `json:"sound,omitempty"`
	Damage      int           `json:"damage,omitempty"`
	Text        string        `json:"text,omitempty"`
}

func (s FeatureSpec) validate() error {
	switch s.Kind {
	case "floor", "wall", "trap":
		return nil
	case "door":
		if s.Destination == nil {
			return fmt.Errorf("door at %v: destination must be set", s.At.point())
		}
	case "sign":
		if s.Text == "" {
			return fmt.Errorf("sign at %v: text must be set", s.At.point())
		}
		if err := game.ValidateSignText(s.Text); err != nil {
			return fmt.Errorf("sign at %v: %w", s.At.point(), err)
		}
	default:
		return fmt.Errorf("%w: feature %q", ErrUnknownKind, s.Kind)
	}
	return nil
}

func (s FeatureSpec) build() game.Thing {
	switch s.Kind {
	case "wall":
		return &game.Wall{Tile: s.Tile, BumpSound: soundOf(s.Sound)}
	case "door":
		return &game.Door{Tile: s.Tile, Destination: s.Destination.location(), Sound: soundOf(s.Sound)}
	case "trap":
		return &game.Trap{Tile: s.Tile, Damage: s.Damage}
	case "sign":
		return &game.Sign{Tile: s.Tile, Text: s.Text}
	default:
		return &game.Floor{Tile: s.Tile}
	}
}

type PlacedItem struct {
	At   PointSpec              `json:"at"`
	Item storage.Ref[*ItemSpec] `json:"item"`
}

type PlacedMobile struct {
	At     PointSpec                `json:"at"`
	Mobile storage.Ref[*MobileSpec] `json:"mobile"`
}

// RoomSpec draws a room as rows of characters looked up in Legend, then
// stacks features, items and lazily spawned mobiles on top.
type RoomSpec struct {
	Number   int                    `json:"number"`
	Layout   []string               `json:"layout"`
	Legend   map[string]TerrainSpec `json:"legend"`
	Features []FeatureSpec          `json:"features,omitempty"`
	Items    []PlacedItem           `json:"items,omitempty"`
	Mobiles  []PlacedMobile         `json:"mobiles,omitempty"`
}

func (s *RoomSpec) Validate() error {
	el := errors.NewErrorList()

	if s.Number < 0 {
		el.Add(fmt.Errorf("number must not be negative"))
	}

	for key, terrain := range s.Legend {
		if utf8.RuneCountInString(key) != 1 {
			el.Add(fmt.Errorf("%w: legend key %q must be one character", ErrBadLayout, key))
		}
		if terrain.Kind != "floor" && terrain.Kind != "wall" {
			el.Add(fmt.Errorf("%w: terrain %q", ErrUnknownKind, terrain.Kind))
		}
	}

	if len(s.Layout) == 0 {
		el.Add(fmt.Errorf("%w: layout must have at least one row", ErrBadLayout))
		return el.Err()
	}
	width := utf8.RuneCountInString(s.Layout[0])
	if width == 0 {
		el.Add(fmt.Errorf("%w: rows must not be empty", ErrBadLayout))
	}
	for y, row := range s.Layout {
		if utf8.RuneCountInString(row) != width {
			el.Add(fmt.Errorf("%w: row %d is not %d wide", ErrBadLayout, y, width))
		}
		for _, r := range row {
			if _, ok := s.Legend[string(r)]; !ok {
				el.Add(fmt.Errorf("%w: row %d uses %q which is not in the legend", ErrBadLayout, y, r))
			}
		}
	}

	inBounds := func(p PointSpec) bool {
		return p.X >= 0 && p.Y >= 0 && p.X < width && p.Y < len(s.Layout)
	}
	for _, f := range s.Features {
		el.Add(f.validate())
		if !inBounds(f.At) {
			el.Add(fmt.Errorf("%w: feature at %v is outside the room", ErrBadLayout, f.At.point()))
		}
	}
	for _, it := range s.Items {
		el.Add(it.Item.Validate())
		if !inBounds(it.At) {
			el.Add(fmt.Errorf("%w: item at %v is outside the room", ErrBadLayout, it.At.point()))
		}
	}
	for _, m := range s.Mobiles {
		el.Add(m.Mobile.Validate())
		if !inBounds(m.At) {
			el.Add(fmt.Errorf("%w: mobile at %v is outside the room", ErrBadLayout, m.At.point()))
		}
	}

	return el.Err()
}

// Build creates the room. Its references must be resolved.
func (s *RoomSpec) Build() *game.Room {
	height := len(s.Layout)
	width := utf8.RuneCountInString(s.Layout[0])
	r := game.NewRoom(s.Number, width, height)

	for y, row := range s.Layout {
		x := 0
		for _, ch := range row {
			r.CellAt(game.Point{X: x, Y: y}).Add(s.Legend[string(ch)].build())
			x++
		}
	}
	for _, f := range s.Features {
		r.CellAt(f.At.point()).Add(f.build())
	}
	for _, it := range s.Items {
		r.CellAt(it.At.point()).Add(it.Item.Get().Build())
	}
	for _, m := range s.Mobiles {
		r.AddSpawn(game.Spawn{At: m.At.point(), Make: m.Mobile.Get().Build})
	}
	return r
}
