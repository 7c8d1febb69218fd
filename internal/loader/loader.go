package loader

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-exploratron/internal/game"
	"github.com/pixil98/go-exploratron/internal/protocol"
	"github.com/pixil98/go-exploratron/internal/storage"
)

//go:embed world
var shipped embed.FS

// Shipped is the world bundled with the server.
func Shipped() fs.FS {
	sub, err := fs.Sub(shipped, "world")
	if err != nil {
		panic(err)
	}
	return sub
}

// Stores holds every asset kind a world is built from. Each kind lives in
// its own directory of the asset file system.
type Stores struct {
	Items   *storage.FileStore[*ItemSpec]
	Mobiles *storage.FileStore[*MobileSpec]
	Players *storage.FileStore[*PlayerSpec]
	Rooms   *storage.FileStore[*RoomSpec]
}

// Load reads the items, mobiles, players and rooms directories of fsys and
// resolves the references between them.
func Load(fsys fs.FS) (*Stores, error) {
	var st Stores
	var err error

	if st.Items, err = storage.NewFileStore[*ItemSpec](fsys, "items"); err != nil {
		return nil, err
	}
	if st.Mobiles, err = storage.NewFileStore[*MobileSpec](fsys, "mobiles"); err != nil {
		return nil, err
	}
	if st.Players, err = storage.NewFileStore[*PlayerSpec](fsys, "players"); err != nil {
		return nil, err
	}
	if st.Rooms, err = storage.NewFileStore[*RoomSpec](fsys, "rooms"); err != nil {
		return nil, err
	}

	if err := st.resolve(); err != nil {
		return nil, fmt.Errorf("resolving references: %w", err)
	}
	return &st, nil
}

func (st *Stores) resolve() error {
	el := errors.NewErrorList()

	for id, m := range st.Mobiles.GetAll() {
		for i := range m.Items {
			if err := m.Items[i].Resolve(st.Items); err != nil {
				el.Add(fmt.Errorf("mobile %s: %w", id, err))
			}
		}
	}
	for id, p := range st.Players.GetAll() {
		for i := range p.Items {
			if err := p.Items[i].Resolve(st.Items); err != nil {
				el.Add(fmt.Errorf("player %s: %w", id, err))
			}
		}
	}
	for id, r := range st.Rooms.GetAll() {
		for i := range r.Items {
			if err := r.Items[i].Item.Resolve(st.Items); err != nil {
				el.Add(fmt.Errorf("room %s: %w", id, err))
			}
		}
		for i := range r.Mobiles {
			if err := r.Mobiles[i].Mobile.Resolve(st.Mobiles); err != nil {
				el.Add(fmt.Errorf("room %s: %w", id, err))
			}
		}
	}

	return el.Err()
}

// BuildWorld creates a fresh world from the stores. Every door, teleport
// and player start must land on an existing cell.
func BuildWorld(st *Stores, opts ...game.WorldOpt) (*game.World, error) {
	catalog := game.NewPlayerCatalog()
	w := game.NewWorld(append(opts, game.WithCatalog(catalog))...)

	el := errors.NewErrorList()

	for _, id := range st.Rooms.Ids() {
		spec, _ := st.Rooms.Get(id)
		r := spec.Build()
		if err := w.AddRoom(r); err != nil {
			el.Add(fmt.Errorf("room %s: %w: %d", id, ErrDuplicateNumber, spec.Number))
			continue
		}
		el.Add(checkSnapshot(id, r))
	}
	if err := el.Err(); err != nil {
		return nil, err
	}

	for _, id := range st.Rooms.Ids() {
		spec, _ := st.Rooms.Get(id)
		for _, f := range spec.Features {
			if f.Destination != nil {
				el.Add(checkDestination(w, *f.Destination, fmt.Sprintf("room %s door at %v", id, f.At.point())))
			}
		}
	}
	for _, id := range st.Items.Ids() {
		spec, _ := st.Items.Get(id)
		if spec.Spell != nil && spec.Spell.Destination != nil {
			el.Add(checkDestination(w, *spec.Spell.Destination, fmt.Sprintf("item %s", id)))
		}
	}
	for _, id := range st.Players.Ids() {
		spec, _ := st.Players.Get(id)
		el.Add(checkDestination(w, spec.Start, fmt.Sprintf("player %s start", id)))
		if err := catalog.Add(spec.entry()); err != nil {
			el.Add(fmt.Errorf("player %s: %w", id, err))
		}
	}
	if err := el.Err(); err != nil {
		return nil, err
	}

	slog.Info("world built", "rooms", len(w.Rooms()), "players", catalog.Len())
	return w, nil
}

// checkSnapshot rejects a room whose full snapshot, as built, cannot be
// sent to a client in one packet.
func checkSnapshot(id string, r *game.Room) error {
	_, err := protocol.Encode(protocol.RefreshRoom{Grid: protocol.GridFromRoom(r)})
	if err != nil {
		return fmt.Errorf("room %s: %w", id, err)
	}
	return nil
}

func checkDestination(w *game.World, dest LocationSpec, what string) error {
	r := w.Room(dest.Room)
	if r == nil {
		return fmt.Errorf("%s: %w: no room %d", what, ErrBadDestination, dest.Room)
	}
	loc := dest.location()
	if !r.InBounds(loc.Coordinates) {
		return fmt.Errorf("%s: %w: %s", what, ErrBadDestination, loc)
	}
	blocked := slices.ContainsFunc(r.CellAt(loc.Coordinates).Things(), func(t game.Thing) bool {
		return t.Kind() == game.KindWall
	})
	if blocked {
		return fmt.Errorf("%s: %w: %s is a wall", what, ErrBadDestination, loc)
	}
	return nil
}
