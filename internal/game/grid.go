package game

import (
	"fmt"
	"slices"
)

// Cell is an ordered stack of things. Index 0 is drawn first.
type Cell struct {
	things []Thing
}

// Things returns a copy of the cell's occupants in stack order.
func (c *Cell) Things() []Thing {
	return slices.Clone(c.things)
}

// Add pushes a thing on top of the stack.
func (c *Cell) Add(t Thing) {
	c.things = append(c.things, t)
}

// Remove takes a thing out of the stack. Removing a thing that is not
// present returns ErrThingNotInCell.
func (c *Cell) Remove(t Thing) error {
	i := slices.Index(c.things, t)
	if i < 0 {
		return ErrThingNotInCell
	}
	c.things = slices.Delete(c.things, i, i+1)
	return nil
}

// Contains reports whether t is in this cell.
func (c *Cell) Contains(t Thing) bool {
	return slices.Contains(c.things, t)
}

// TileIds returns the tile stack, bottom first.
func (c *Cell) TileIds() []int {
	ids := make([]int, len(c.things))
	for i, t := range c.things {
		ids[i] = t.TileId()
	}
	return ids
}

// CanEnter returns false if any occupant blocks the mobile.
func (c *Cell) CanEnter(m *Mobile) bool {
	for _, t := range c.things {
		if !capabilitiesOf(t).canEnter(t, m) {
			return false
		}
	}
	return true
}

// DoEnter runs the enter hook of every occupant. Hooks may relocate the
// mover, so it iterates a snapshot and stops once the mover has left.
func (c *Cell) DoEnter(m *Mobile, w *World, sc *ScreenChanges) error {
	for _, t := range c.Things() {
		if !c.Contains(m) {
			return nil
		}
		if err := capabilitiesOf(t).onEnter(t, m, w, sc); err != nil {
			return err
		}
	}
	return nil
}

// DoBump runs the bump hook of every occupant.
func (c *Cell) DoBump(m *Mobile, w *World, sc *ScreenChanges) error {
	for _, t := range c.Things() {
		if err := capabilitiesOf(t).onBump(t, m, w, sc); err != nil {
			return err
		}
	}
	return nil
}

// Spawn describes a mobile created the first time a player enters a room.
type Spawn struct {
	At   Point
	Make func() *Mobile
}

// Room is a fixed-size grid of cells. Its shape never changes.
type Room struct {
	number  int
	width   int
	height  int
	cells   []Cell
	spawns  []Spawn
	entered bool
}

// NewRoom creates an empty room. Width and height must be positive.
func NewRoom(number, width, height int) *Room {
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("room %d: invalid size %dx%d", number, width, height))
	}
	return &Room{
		number: number,
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

func (r *Room) Number() int { return r.number }
func (r *Room) Width() int  { return r.width }
func (r *Room) Height() int { return r.height }

// InBounds reports whether p addresses a cell in this room.
func (r *Room) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < r.width && p.Y < r.height
}

// CellAt returns the cell at p. Out-of-range coordinates panic.
func (r *Room) CellAt(p Point) *Cell {
	if !r.InBounds(p) {
		panic(fmt.Sprintf("room %d: cell %s out of bounds %dx%d", r.number, p, r.width, r.height))
	}
	return &r.cells[p.X+p.Y*r.width]
}

// AddSpawn registers a mobile to be created on first entry.
func (r *Room) AddSpawn(s Spawn) {
	r.spawns = append(r.spawns, s)
}

// HasBeenEntered reports whether a player has ever entered the room.
func (r *Room) HasBeenEntered() bool {
	return r.entered
}

// PlayerEntersRoom is called whenever a player arrives. The first call
// creates and places the room's spawns and returns them; later calls
// return nil.
func (r *Room) PlayerEntersRoom(sc *ScreenChanges) []*Mobile {
	if r.entered {
		return nil
	}
	r.entered = true

	var spawned []*Mobile
	for _, s := range r.spawns {
		m := s.Make()
		m.room = r
		m.position = s.At
		r.CellAt(s.At).Add(m)
		sc.ChangeCell(r, s.At)
		spawned = append(spawned, m)
	}
	return spawned
}
