package game

// Brain decides what a non-player mobile does with its turn. Brains hold no
// state; the world schedules them and advances the mobile's cooldown.
type Brain interface {
	Alignment() Alignment
	TakeOneAction(m *Mobile, now Millis, w *World, sc *ScreenChanges) error
}

// directions are north, south, east, west.
var directions = [4]Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: 1, Y: 0}, {X: -1, Y: 0}}

func randomStep(m *Mobile, w *World, sc *ScreenChanges) error {
	d := directions[w.rand.IntN(len(directions))]
	return m.move(d.X, d.Y, w, sc)
}

// RandomBrain wanders one step in a random direction every turn.
type RandomBrain struct{}

func (RandomBrain) Alignment() Alignment { return AlignmentNeutral }

func (RandomBrain) TakeOneAction(m *Mobile, _ Millis, w *World, sc *ScreenChanges) error {
	return randomStep(m, w, sc)
}

// AggressiveBrain attacks an adjacent friendly mobile if there is one and
// wanders otherwise.
type AggressiveBrain struct{}

func (AggressiveBrain) Alignment() Alignment { return AlignmentUnfriendly }

func (AggressiveBrain) TakeOneAction(m *Mobile, _ Millis, w *World, sc *ScreenChanges) error {
	var targets []Point
	for _, d := range directions {
		p := m.position.Add(d.X, d.Y)
		if m.room.InBounds(p) && hasFriendly(m.room.CellAt(p)) {
			targets = append(targets, d)
		}
	}
	if len(targets) == 0 {
		return randomStep(m, w, sc)
	}
	d := targets[w.rand.IntN(len(targets))]
	return m.move(d.X, d.Y, w, sc)
}

// PursuitBrain walks the shortest path toward the nearest friendly mobile in
// its room and attacks once adjacent. With nothing reachable it wanders.
type PursuitBrain struct{}

func (PursuitBrain) Alignment() Alignment { return AlignmentUnfriendly }

func (PursuitBrain) TakeOneAction(m *Mobile, _ Millis, w *World, sc *ScreenChanges) error {
	dm := NewDijkstraMap(m.room, hasFriendly)
	dm.PopulateValues()

	best := -1
	var step Point
	for _, d := range directions {
		p := m.position.Add(d.X, d.Y)
		if !m.room.InBounds(p) {
			continue
		}
		v := dm.ValueAt(p)
		if v < 0 {
			continue
		}
		if best < 0 || v < best {
			best = v
			step = d
		}
	}
	if best < 0 {
		return randomStep(m, w, sc)
	}
	return m.move(step.X, step.Y, w, sc)
}

func hasFriendly(c *Cell) bool {
	for _, t := range c.things {
		if o, ok := t.(*Mobile); ok && o.Alignment() == AlignmentFriendly {
			return true
		}
	}
	return false
}
