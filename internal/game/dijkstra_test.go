package game

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestDijkstraMapMatchesBFS(t *testing.T) {
	tests := map[string]struct {
		rows  []string
		seeds []Point
	}{
		"open room": {
			rows: []string{
				".....",
				".....",
				".....",
			},
			seeds: []Point{{X: 0, Y: 0}},
		},
		"corridor around a wall": {
			rows: []string{
				".....",
				".###.",
				".#...",
				".#.#.",
			},
			seeds: []Point{{X: 2, Y: 3}},
		},
		"two seeds": {
			rows: []string{
				"......",
				"..##..",
				"......",
			},
			seeds: []Point{{X: 0, Y: 0}, {X: 5, Y: 2}},
		},
		"isolated pocket": {
			rows: []string{
				"..#..",
				"..#..",
				"###..",
			},
			seeds: []Point{{X: 4, Y: 2}},
		},
		"no seeds": {
			rows: []string{
				"..",
				"#.",
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			r := buildRoom(t, 0, tt.rows...)
			seeds := map[*Cell]bool{}
			for _, s := range tt.seeds {
				seeds[r.CellAt(s)] = true
			}
			dm := NewDijkstraMap(r, func(c *Cell) bool { return seeds[c] })
			dm.PopulateValues()

			exp := bfsDistances(r, tt.seeds)
			for y := 0; y < r.Height(); y++ {
				for x := 0; x < r.Width(); x++ {
					p := Point{X: x, Y: y}
					got := dm.ValueAt(p)
					if got == DistanceUnset {
						t.Errorf("%s left unset", p)
					}
					if got != exp[p] {
						t.Errorf("%s: got %d, expected %d", p, got, exp[p])
					}
				}
			}
		})
	}
}

// bfsDistances is a plain breadth-first search used as the reference.
func bfsDistances(r *Room, seeds []Point) map[Point]int {
	dist := map[Point]int{}
	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			p := Point{X: x, Y: y}
			if isImpassable(r.CellAt(p)) {
				dist[p] = DistanceImpassable
			} else {
				dist[p] = DistanceUnreachable
			}
		}
	}

	queue := append([]Point(nil), seeds...)
	for _, s := range seeds {
		dist[s] = 0
	}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range directions {
			n := p.Add(d.X, d.Y)
			if !r.InBounds(n) || dist[n] != DistanceUnreachable {
				continue
			}
			dist[n] = dist[p] + 1
			queue = append(queue, n)
		}
	}
	return dist
}

func TestDijkstraMapSeedsFriendlyMobiles(t *testing.T) {
	r := buildRoom(t, 0, "....")
	w := newTestWorld(t, r)
	sc := NewScreenChanges()
	addTestPlayer(t, w, "0", at(0, 3, 0), sc)
	addTestMobile(t, w, NewMobile("Rat", tileRat, NewStats(2, 0, 5), AggressiveBrain{}), at(0, 0, 0))

	dm := NewDijkstraMap(r, hasFriendly)
	dm.PopulateValues()

	testutil.AssertEqual(t, "player cell", dm.ValueAt(Point{X: 3, Y: 0}), 0)
	testutil.AssertEqual(t, "rat cell", dm.ValueAt(Point{X: 0, Y: 0}), 3)
}
