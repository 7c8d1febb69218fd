package game

// Special DijkstraMap values. Every other value is a distance >= 0.
const (
	DistanceUnset       = -1
	DistanceImpassable  = -2
	DistanceUnreachable = -3
)

// DijkstraMap holds, for every cell of a room, the number of steps to the
// nearest seed cell. Walls are impassable; everything else can be crossed.
type DijkstraMap struct {
	width  int
	height int
	values []int
}

// NewDijkstraMap creates an unpopulated map of r with every cell matching
// isSeed at distance zero.
func NewDijkstraMap(r *Room, isSeed func(*Cell) bool) *DijkstraMap {
	dm := &DijkstraMap{
		width:  r.Width(),
		height: r.Height(),
		values: make([]int, r.Width()*r.Height()),
	}
	for y := 0; y < dm.height; y++ {
		for x := 0; x < dm.width; x++ {
			c := r.CellAt(Point{X: x, Y: y})
			switch {
			case isImpassable(c):
				dm.values[dm.index(x, y)] = DistanceImpassable
			case isSeed(c):
				dm.values[dm.index(x, y)] = 0
			default:
				dm.values[dm.index(x, y)] = DistanceUnset
			}
		}
	}
	return dm
}

func isImpassable(c *Cell) bool {
	for _, t := range c.things {
		if t.Kind() == KindWall {
			return true
		}
	}
	return false
}

func (dm *DijkstraMap) index(x, y int) int {
	return x + y*dm.width
}

// ValueAt returns the distance at p, or one of the Distance constants.
func (dm *DijkstraMap) ValueAt(p Point) int {
	return dm.values[dm.index(p.X, p.Y)]
}

// PopulateValues relaxes the map to a fixed point. Each scan computes every
// update from the previous scan's values before applying any of them, so
// a cell first set in scan n is exactly n steps from the nearest seed no
// matter which order the cells are visited. Cells never set are marked
// unreachable.
func (dm *DijkstraMap) PopulateValues() {
	type update struct{ i, v int }
	var updates []update
	for {
		updates = updates[:0]
		for y := 0; y < dm.height; y++ {
			for x := 0; x < dm.width; x++ {
				i := dm.index(x, y)
				if dm.values[i] != DistanceUnset {
					continue
				}
				if best := dm.minNeighbor(x, y); best >= 0 {
					updates = append(updates, update{i: i, v: best + 1})
				}
			}
		}
		if len(updates) == 0 {
			break
		}
		for _, u := range updates {
			dm.values[u.i] = u.v
		}
	}

	for i, v := range dm.values {
		if v == DistanceUnset {
			dm.values[i] = DistanceUnreachable
		}
	}
}

// minNeighbor returns the smallest distance among the orthogonal neighbors
// of (x,y), or -1 if none has one.
func (dm *DijkstraMap) minNeighbor(x, y int) int {
	best := -1
	for _, d := range directions {
		nx, ny := x+d.X, y+d.Y
		if nx < 0 || ny < 0 || nx >= dm.width || ny >= dm.height {
			continue
		}
		v := dm.values[dm.index(nx, ny)]
		if v >= 0 && (best < 0 || v < best) {
			best = v
		}
	}
	return best
}
