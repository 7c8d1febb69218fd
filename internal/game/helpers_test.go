package game

import (
	"math/rand/v2"
	"testing"
)

const (
	tileDirt   = 1
	tileWall   = 2
	tileDoor   = 3
	tileTrap   = 4
	tileSign   = 5
	tilePlayer = 10
	tileRat    = 11
	tileSword  = 20
	tileWand   = 21
	tileRock   = 22
)

const soundBump SoundId = 7

// buildRoom makes a room from rows of '#' (wall) and '.' (dirt).
func buildRoom(t *testing.T, number int, rows ...string) *Room {
	t.Helper()
	r := NewRoom(number, len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != r.Width() {
			t.Fatalf("row %d has width %d, want %d", y, len(row), r.Width())
		}
		for x, ch := range row {
			c := r.CellAt(Point{X: x, Y: y})
			switch ch {
			case '#':
				c.Add(&Wall{Tile: tileWall, BumpSound: soundBump})
			case '.':
				c.Add(&Floor{Tile: tileDirt})
			default:
				t.Fatalf("unknown room character %q", ch)
			}
		}
	}
	return r
}

func newTestWorld(t *testing.T, rooms ...*Room) *World {
	t.Helper()
	w := NewWorld(WithRand(rand.New(rand.NewPCG(1, 2))))
	for _, r := range rooms {
		if err := w.AddRoom(r); err != nil {
			t.Fatalf("adding room: %v", err)
		}
	}
	return w
}

type fakeClient string

func (c fakeClient) ClientId() string { return string(c) }

func addTestPlayer(t *testing.T, w *World, id string, loc Location, sc *ScreenChanges) *Player {
	t.Helper()
	p := NewPlayer(id, "Adventurer "+id, tilePlayer, NewStats(9, 10, 5))
	p.AddClient(fakeClient("client-" + id))
	if err := w.AddPlayer(p, loc, sc); err != nil {
		t.Fatalf("adding player: %v", err)
	}
	return p
}

func addTestMobile(t *testing.T, w *World, m *Mobile, loc Location) *Mobile {
	t.Helper()
	if err := w.AddMobile(m, loc); err != nil {
		t.Fatalf("adding mobile: %v", err)
	}
	return m
}

func at(room, x, y int) Location {
	return Location{RoomNumber: room, Coordinates: Point{X: x, Y: y}}
}

// checkOccupancy verifies that every mobile's recorded position holds it and
// that every mobile in a cell is in one of the world's collections.
func checkOccupancy(t *testing.T, w *World) {
	t.Helper()
	known := map[*Mobile]bool{}
	for _, m := range w.Mobiles() {
		known[m] = true
	}
	for _, p := range w.Players() {
		known[&p.Mobile] = true
	}

	for m := range known {
		if !m.Room().CellAt(m.Position()).Contains(m) {
			t.Errorf("%s records %s but its cell does not hold it", m.Name, m.Location())
		}
	}
	for _, r := range w.Rooms() {
		for y := 0; y < r.Height(); y++ {
			for x := 0; x < r.Width(); x++ {
				p := Point{X: x, Y: y}
				for _, th := range r.CellAt(p).Things() {
					m, ok := th.(*Mobile)
					if !ok {
						continue
					}
					if !known[m] {
						t.Errorf("room %d cell %s holds %s which is not in the world", r.Number(), p, m.Name)
					}
					if m.Room() != r || m.Position() != p {
						t.Errorf("room %d cell %s holds %s which records %s", r.Number(), p, m.Name, m.Location())
					}
				}
			}
		}
	}
}

func changedCells(sc *ScreenChanges, r *Room) []Point {
	_, cells := sc.RoomChanges(r)
	return cells
}
