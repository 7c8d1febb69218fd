package game

import (
	"fmt"
	"slices"
)

// Client is a connection observing a player.
type Client interface {
	ClientId() string
}

// Player is a mobile controlled from outside. Any number of clients may be
// attached to one player.
type Player struct {
	Mobile

	// Displayed marks the player rendered by a local display. A displayed
	// player keeps the world alive without any clients.
	Displayed bool

	id      string
	clients []Client
	queued  *KeyPressed
}

// NewPlayer creates a player at full health. It is placed when added to a
// world.
func NewPlayer(playerId, name string, tile int, stats Stats, items ...*Item) *Player {
	p := &Player{
		Mobile: *NewMobile(name, tile, stats, nil, items...),
		id:     playerId,
	}
	p.Mobile.player = p
	return p
}

// Id is the player's stable external id.
func (p *Player) Id() string {
	return p.id
}

func (p *Player) AddClient(c Client) {
	p.clients = append(p.clients, c)
}

func (p *Player) RemoveClient(c Client) error {
	i := slices.IndexFunc(p.clients, func(o Client) bool { return o.ClientId() == c.ClientId() })
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrClientNotAttached, c.ClientId())
	}
	p.clients = slices.Delete(p.clients, i, i+1)
	return nil
}

// Clients returns the attached clients in the order they joined.
func (p *Player) Clients() []Client {
	return slices.Clone(p.clients)
}

// IsObserved reports whether anyone is watching this player.
func (p *Player) IsObserved() bool {
	return p.Displayed || len(p.clients) > 0
}

// QueuedEvent returns the action buffered while the player was on cooldown.
func (p *Player) QueuedEvent() (KeyPressed, bool) {
	if p.queued == nil {
		return KeyPressed{}, false
	}
	return *p.queued, true
}

// PlayerCatalogEntry describes one player that can join the world.
type PlayerCatalogEntry struct {
	PlayerId string
	Name     string
	Tile     int
	Stats    Stats
	Start    Location
	Items    func() []*Item
}

// NewPlayer builds a fresh player from the entry.
func (e PlayerCatalogEntry) NewPlayer() *Player {
	var items []*Item
	if e.Items != nil {
		items = e.Items()
	}
	return NewPlayer(e.PlayerId, e.Name, e.Tile, e.Stats, items...)
}

// PlayerCatalog lists the players that may join, by player id.
type PlayerCatalog struct {
	entries map[string]PlayerCatalogEntry
}

func NewPlayerCatalog() *PlayerCatalog {
	return &PlayerCatalog{entries: map[string]PlayerCatalogEntry{}}
}

func (c *PlayerCatalog) Add(e PlayerCatalogEntry) error {
	if _, ok := c.entries[e.PlayerId]; ok {
		return fmt.Errorf("%w: %s", ErrPlayerExists, e.PlayerId)
	}
	c.entries[e.PlayerId] = e
	return nil
}

// Entry returns the entry for playerId, if there is one.
func (c *PlayerCatalog) Entry(playerId string) (PlayerCatalogEntry, bool) {
	e, ok := c.entries[playerId]
	return e, ok
}

func (c *PlayerCatalog) Len() int {
	return len(c.entries)
}
