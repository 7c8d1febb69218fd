package game

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
)

// RoomSwitch is a player's move between rooms within one tick.
type RoomSwitch struct {
	From *Room
	To   *Room
}

// ClientJoin records a client attaching to a player.
type ClientJoin struct {
	Player *Player
	Client Client
}

// Departure records a player removed from the world along with the clients
// that were watching it.
type Departure struct {
	Player  *Player
	Clients []Client
}

type roomChanges struct {
	everything bool
	cells      map[Point]struct{}
}

type consoleLine struct {
	player *Player
	room   *Room
	text   string
}

// ScreenChanges collects everything viewers must be told about one tick. It
// is written during the tick, read once by view synchronization and then
// cleared.
type ScreenChanges struct {
	rooms          map[*Room]*roomChanges
	switches       map[*Player]RoomSwitch
	sounds         map[*Room][]SoundId
	infoText       map[*Player][]string
	console        []consoleLine
	inventory      map[*Player]bool
	inventoryAsked map[string]bool
	joins          []ClientJoin
	rejected       []Client
	departures     []Departure
}

func NewScreenChanges() *ScreenChanges {
	sc := &ScreenChanges{}
	sc.Clear()
	return sc
}

// Clear forgets every change.
func (sc *ScreenChanges) Clear() {
	sc.rooms = map[*Room]*roomChanges{}
	sc.switches = map[*Player]RoomSwitch{}
	sc.sounds = map[*Room][]SoundId{}
	sc.infoText = map[*Player][]string{}
	sc.console = nil
	sc.inventory = map[*Player]bool{}
	sc.inventoryAsked = map[string]bool{}
	sc.joins = nil
	sc.rejected = nil
	sc.departures = nil
}

func (sc *ScreenChanges) roomChanges(r *Room) *roomChanges {
	rc, ok := sc.rooms[r]
	if !ok {
		rc = &roomChanges{cells: map[Point]struct{}{}}
		sc.rooms[r] = rc
	}
	return rc
}

// ChangeCell marks one cell of a room as changed.
func (sc *ScreenChanges) ChangeCell(r *Room, p Point) {
	rc := sc.roomChanges(r)
	if !rc.everything {
		rc.cells[p] = struct{}{}
	}
}

// ChangeTwoCells marks both cells of a move as changed.
func (sc *ScreenChanges) ChangeTwoCells(r *Room, a, b Point) {
	sc.ChangeCell(r, a)
	sc.ChangeCell(r, b)
}

// GeneralRoomChanges marks the whole room as changed. Individual cell
// changes are no longer tracked for it.
func (sc *ScreenChanges) GeneralRoomChanges(r *Room) {
	rc := sc.roomChanges(r)
	rc.everything = true
	clear(rc.cells)
}

// RoomChanges reports what changed in r. If everything is true the cell list
// is empty. Cells are sorted row by row.
func (sc *ScreenChanges) RoomChanges(r *Room) (everything bool, cells []Point) {
	rc, ok := sc.rooms[r]
	if !ok {
		return false, nil
	}
	if rc.everything {
		return true, nil
	}
	cells = slices.Collect(maps.Keys(rc.cells))
	slices.SortFunc(cells, func(a, b Point) int {
		return cmp.Or(cmp.Compare(a.Y, b.Y), cmp.Compare(a.X, b.X))
	})
	return false, cells
}

// RoomPlaySound queues a sound for everyone in r.
func (sc *ScreenChanges) RoomPlaySound(r *Room, s SoundId) {
	sc.sounds[r] = append(sc.sounds[r], s)
}

// RoomSounds returns the sounds queued for r in order.
func (sc *ScreenChanges) RoomSounds(r *Room) []SoundId {
	return slices.Clone(sc.sounds[r])
}

// PlayerSwitchedRooms records a room switch. A player can switch rooms at
// most once between clears.
func (sc *ScreenChanges) PlayerSwitchedRooms(p *Player, from, to *Room) error {
	if _, ok := sc.switches[p]; ok {
		return fmt.Errorf("%w: %s", ErrRoomSwitchPending, p.Id())
	}
	sc.switches[p] = RoomSwitch{From: from, To: to}
	return nil
}

// RoomSwitch returns the player's room switch this tick, if any.
func (sc *ScreenChanges) RoomSwitch(p *Player) (RoomSwitch, bool) {
	s, ok := sc.switches[p]
	return s, ok
}

// AddInfoTextForPlayer queues a message box for one player.
func (sc *ScreenChanges) AddInfoTextForPlayer(p *Player, text string) {
	sc.infoText[p] = append(sc.infoText[p], text)
}

func (sc *ScreenChanges) InfoTexts(p *Player) []string {
	return slices.Clone(sc.infoText[p])
}

// AddConsoleTextForPlayer queues a console line for one player.
func (sc *ScreenChanges) AddConsoleTextForPlayer(p *Player, text string) {
	if text == "" {
		return
	}
	sc.console = append(sc.console, consoleLine{player: p, text: text})
}

// AddConsoleTextForRoom queues a console line for whoever is in r when the
// changes are sent.
func (sc *ScreenChanges) AddConsoleTextForRoom(r *Room, text string) {
	if text == "" {
		return
	}
	sc.console = append(sc.console, consoleLine{room: r, text: text})
}

// AddConsoleTextForAll queues a console line for every player.
func (sc *ScreenChanges) AddConsoleTextForAll(text string) {
	if text == "" {
		return
	}
	sc.console = append(sc.console, consoleLine{text: text})
}

// ConsoleTexts returns, in the order they were added, the console lines p
// should see.
func (sc *ScreenChanges) ConsoleTexts(p *Player) []string {
	var texts []string
	for _, l := range sc.console {
		switch {
		case l.player != nil:
			if l.player != p {
				continue
			}
		case l.room != nil:
			if l.room != p.room {
				continue
			}
		}
		texts = append(texts, l.text)
	}
	return texts
}

// InventoryChanged marks p's inventory for sending to all its clients.
func (sc *ScreenChanges) InventoryChanged(p *Player) {
	sc.inventory[p] = true
}

// RequestInventory marks p's inventory for sending to one client.
func (sc *ScreenChanges) RequestInventory(c Client) {
	sc.inventoryAsked[c.ClientId()] = true
}

// InventoryWanted reports whether c should be sent p's inventory.
func (sc *ScreenChanges) InventoryWanted(p *Player, c Client) bool {
	return sc.inventory[p] || sc.inventoryAsked[c.ClientId()]
}

// ClientJoined records a client newly attached to p.
func (sc *ScreenChanges) ClientJoined(p *Player, c Client) {
	sc.joins = append(sc.joins, ClientJoin{Player: p, Client: c})
}

// Joined reports whether c attached this tick.
func (sc *ScreenChanges) Joined(c Client) bool {
	return slices.ContainsFunc(sc.joins, func(j ClientJoin) bool { return j.Client.ClientId() == c.ClientId() })
}

func (sc *ScreenChanges) Joins() []ClientJoin {
	return slices.Clone(sc.joins)
}

// RejectClient records a client whose join was refused.
func (sc *ScreenChanges) RejectClient(c Client) {
	sc.rejected = append(sc.rejected, c)
}

func (sc *ScreenChanges) Rejected() []Client {
	return slices.Clone(sc.rejected)
}

// PlayerDeparted records a player removed from the world.
func (sc *ScreenChanges) PlayerDeparted(p *Player) {
	sc.departures = append(sc.departures, Departure{Player: p, Clients: p.Clients()})
}

func (sc *ScreenChanges) Departures() []Departure {
	return slices.Clone(sc.departures)
}
