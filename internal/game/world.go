package game

import (
	"cmp"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"
)

// DefaultRegenInterval is how often every mobile regenerates.
const DefaultRegenInterval = Millis(10 * time.Second / time.Millisecond)

// World owns every room, mobile and player. It is only touched from the
// goroutine running Update.
type World struct {
	rooms   map[int]*Room
	mobiles []*Mobile
	players []*Player
	catalog *PlayerCatalog
	rand    *rand.Rand

	regenInterval   Millis
	timeOfNextRegen Millis

	hadObservers   bool
	gameOver       bool
	keepWhenUnseen bool
}

// WorldOpt is a functional option for configuring a World.
type WorldOpt func(*World)

// WithRand sets the random source used by brains.
func WithRand(r *rand.Rand) WorldOpt {
	return func(w *World) {
		w.rand = r
	}
}

// WithCatalog sets the players that may join.
func WithCatalog(c *PlayerCatalog) WorldOpt {
	return func(w *World) {
		w.catalog = c
	}
}

// WithRegenInterval sets the time between regeneration rounds.
func WithRegenInterval(d Millis) WorldOpt {
	return func(w *World) {
		w.regenInterval = d
	}
}

// WithKeepRunningWhenEmpty stops the world ending once nobody is watching.
func WithKeepRunningWhenEmpty() WorldOpt {
	return func(w *World) {
		w.keepWhenUnseen = true
	}
}

func NewWorld(opts ...WorldOpt) *World {
	w := &World{
		rooms:         map[int]*Room{},
		catalog:       NewPlayerCatalog(),
		rand:          rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		regenInterval: DefaultRegenInterval,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.timeOfNextRegen = w.regenInterval
	return w
}

func (w *World) AddRoom(r *Room) error {
	if _, ok := w.rooms[r.Number()]; ok {
		return fmt.Errorf("%w: %d", ErrRoomExists, r.Number())
	}
	w.rooms[r.Number()] = r
	return nil
}

// Room returns the room with the given number, or nil.
func (w *World) Room(number int) *Room {
	return w.rooms[number]
}

// Rooms returns every room ordered by number.
func (w *World) Rooms() []*Room {
	rooms := make([]*Room, 0, len(w.rooms))
	for _, r := range w.rooms {
		rooms = append(rooms, r)
	}
	slices.SortFunc(rooms, func(a, b *Room) int { return cmp.Compare(a.Number(), b.Number()) })
	return rooms
}

func (w *World) Catalog() *PlayerCatalog {
	return w.catalog
}

// Mobiles returns the non-player mobiles.
func (w *World) Mobiles() []*Mobile {
	return slices.Clone(w.mobiles)
}

// Players returns the players in the order they joined.
func (w *World) Players() []*Player {
	return slices.Clone(w.players)
}

// Player returns the player with the given id, or nil.
func (w *World) Player(playerId string) *Player {
	for _, p := range w.players {
		if p.Id() == playerId {
			return p
		}
	}
	return nil
}

// HadObservers reports whether any player has ever joined.
func (w *World) HadObservers() bool {
	return w.hadObservers
}

// IsGameOver reports whether the session should end.
func (w *World) IsGameOver() bool {
	return w.gameOver
}

// AddMobile places a non-player mobile at loc.
func (w *World) AddMobile(m *Mobile, loc Location) error {
	if err := w.place(m, loc); err != nil {
		return err
	}
	w.mobiles = append(w.mobiles, m)
	return nil
}

// AddPlayer places a player at loc. If it is the first visit to that room
// the room's spawns appear.
func (w *World) AddPlayer(p *Player, loc Location, sc *ScreenChanges) error {
	if w.Player(p.Id()) != nil {
		return fmt.Errorf("%w: %s", ErrPlayerExists, p.Id())
	}
	if err := w.place(&p.Mobile, loc); err != nil {
		return err
	}
	w.players = append(w.players, p)
	w.hadObservers = true
	sc.ChangeCell(p.room, p.position)
	w.addMobiles(p.room.PlayerEntersRoom(sc))
	return nil
}

func (w *World) place(m *Mobile, loc Location) error {
	r := w.Room(loc.RoomNumber)
	if r == nil {
		return fmt.Errorf("%w: %d", ErrRoomNotFound, loc.RoomNumber)
	}
	if !r.InBounds(loc.Coordinates) {
		return fmt.Errorf("placing %s: %s is outside room %d", m.Name, loc.Coordinates, r.Number())
	}
	m.room = r
	m.position = loc.Coordinates
	r.CellAt(loc.Coordinates).Add(m)
	return nil
}

func (w *World) addMobiles(ms []*Mobile) {
	if len(ms) > 0 {
		slog.Debug("spawned mobiles", "count", len(ms))
	}
	w.mobiles = append(w.mobiles, ms...)
}

// removeMobile and removePlayer take a dead mobile out of its cell and its
// collection together.
func (w *World) removeMobile(m *Mobile) error {
	if err := m.room.CellAt(m.position).Remove(m); err != nil {
		return fmt.Errorf("removing %s: %w", m.Name, err)
	}
	w.mobiles = slices.DeleteFunc(w.mobiles, func(o *Mobile) bool { return o == m })
	return nil
}

func (w *World) removePlayer(p *Player) error {
	if err := p.room.CellAt(p.position).Remove(&p.Mobile); err != nil {
		return fmt.Errorf("removing %s: %w", p.Id(), err)
	}
	w.players = slices.DeleteFunc(w.players, func(o *Player) bool { return o == p })
	return nil
}
