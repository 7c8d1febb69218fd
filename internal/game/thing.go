package game

import "log/slog"

// Kind tags each variant of Thing.
type Kind int

const (
	KindFloor Kind = iota
	KindWall
	KindDoor
	KindTrap
	KindSign
	KindItem
	KindMobile
)

func (k Kind) String() string {
	switch k {
	case KindFloor:
		return "floor"
	case KindWall:
		return "wall"
	case KindDoor:
		return "door"
	case KindTrap:
		return "trap"
	case KindSign:
		return "sign"
	case KindItem:
		return "item"
	case KindMobile:
		return "mobile"
	default:
		return "unknown"
	}
}

// Thing is anything that can occupy a cell. The set of implementations is
// closed; behavior is looked up by Kind in capabilitiesOf.
type Thing interface {
	TileId() int
	Kind() Kind
	thing()
}

// Floor is scenery that can be walked over.
type Floor struct {
	Tile int
}

func (f *Floor) TileId() int { return f.Tile }
func (f *Floor) Kind() Kind  { return KindFloor }
func (f *Floor) thing()      {}

// Wall blocks movement. BumpSound, when set, plays on a bump.
type Wall struct {
	Tile      int
	BumpSound SoundId
}

func (w *Wall) TileId() int { return w.Tile }
func (w *Wall) Kind() Kind  { return KindWall }
func (w *Wall) thing()      {}

// Door sends whoever enters it to Destination.
type Door struct {
	Tile        int
	Destination Location
	Sound       SoundId
}

func (d *Door) TileId() int { return d.Tile }
func (d *Door) Kind() Kind  { return KindDoor }
func (d *Door) thing()      {}

// Trap hurts whoever enters it.
type Trap struct {
	Tile   int
	Damage int
}

func (t *Trap) TileId() int { return t.Tile }
func (t *Trap) Kind() Kind  { return KindTrap }
func (t *Trap) thing()      {}

// Sign shows its text to players who step on it.
type Sign struct {
	Tile int
	Text string
}

func (s *Sign) TileId() int { return s.Tile }
func (s *Sign) Kind() Kind  { return KindSign }
func (s *Sign) thing()      {}

type capability struct {
	canEnter func(t Thing, m *Mobile) bool
	onEnter  func(t Thing, m *Mobile, w *World, sc *ScreenChanges) error
	onBump   func(t Thing, m *Mobile, w *World, sc *ScreenChanges) error
}

func alwaysEnter(Thing, *Mobile) bool { return true }
func neverEnter(Thing, *Mobile) bool  { return false }

func noHook(Thing, *Mobile, *World, *ScreenChanges) error { return nil }

// capabilitiesOf is the dispatch table for thing behavior.
func capabilitiesOf(t Thing) capability {
	switch t.Kind() {
	case KindWall:
		return capability{canEnter: neverEnter, onEnter: noHook, onBump: bumpWall}
	case KindDoor:
		return capability{canEnter: alwaysEnter, onEnter: enterDoor, onBump: noHook}
	case KindTrap:
		return capability{canEnter: alwaysEnter, onEnter: enterTrap, onBump: noHook}
	case KindSign:
		return capability{canEnter: alwaysEnter, onEnter: enterSign, onBump: noHook}
	case KindMobile:
		return capability{canEnter: neverEnter, onEnter: noHook, onBump: bumpMobile}
	default:
		return capability{canEnter: alwaysEnter, onEnter: noHook, onBump: noHook}
	}
}

func bumpWall(t Thing, m *Mobile, _ *World, sc *ScreenChanges) error {
	if w := t.(*Wall); w.BumpSound != NoSound {
		sc.RoomPlaySound(m.room, w.BumpSound)
	}
	return nil
}

func enterDoor(t Thing, m *Mobile, w *World, sc *ScreenChanges) error {
	d := t.(*Door)
	if d.Sound != NoSound {
		sc.RoomPlaySound(m.room, d.Sound)
	}
	return m.GoToLocation(d.Destination, w, sc)
}

func enterTrap(t Thing, m *Mobile, _ *World, sc *ScreenChanges) error {
	trap := t.(*Trap)
	m.TakeDamage(trap.Damage)
	if m.player != nil {
		sc.AddConsoleTextForPlayer(m.player, render(tmplTrap, map[string]any{"Damage": trap.Damage}))
	}
	return nil
}

func enterSign(t Thing, m *Mobile, _ *World, sc *ScreenChanges) error {
	if m.player == nil {
		return nil
	}
	sign := t.(*Sign)
	msg, err := readSign(sign.Text, m)
	if err != nil {
		slog.Warn("reading sign", "room", m.room.Number(), "position", m.position, "error", err)
		msg = sign.Text
	}
	sc.AddInfoTextForPlayer(m.player, msg)
	return nil
}

// bumpMobile hits the bumped mobile with the mover's wielded weapon, if any.
func bumpMobile(t Thing, m *Mobile, _ *World, sc *ScreenChanges) error {
	target := t.(*Mobile)
	weapon := m.WieldedWeapon()
	if weapon == nil {
		return nil
	}
	if weapon.HitSound != NoSound {
		sc.RoomPlaySound(target.room, weapon.HitSound)
	}
	target.TakeDamage(weapon.Damage)

	data := map[string]any{"Attacker": m.Name, "Target": target.Name, "Damage": weapon.Damage}
	if m.player != nil {
		sc.AddConsoleTextForPlayer(m.player, render(tmplYouHit, data))
	}
	if target.player != nil {
		sc.AddConsoleTextForPlayer(target.player, render(tmplHitsYou, data))
	}
	return nil
}
