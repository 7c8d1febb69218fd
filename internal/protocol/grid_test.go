package protocol

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/pixil98/go-exploratron/internal/game"
	"github.com/pixil98/go-testutil"
)

func TestCellDataJSON(t *testing.T) {
	tests := map[string]struct {
		cell CellData
		exp  string
	}{
		"single tile": {cell: CellData{7}, exp: `7`},
		"stack":       {cell: CellData{1, 2, 3}, exp: `[1,2,3]`},
		"empty":       {cell: CellData{}, exp: `[]`},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b, err := json.Marshal(tt.cell)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "json", string(b), tt.exp)

			var back CellData
			if err := json.Unmarshal(b, &back); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "round trip", back.Equal(tt.cell), true)
		})
	}
}

func TestCellDataRejectsOtherJSON(t *testing.T) {
	var c CellData
	err := json.Unmarshal([]byte(`"seven"`), &c)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed, got %v", err)
	}
}

func TestGridDataRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for _, size := range [][2]int{{1, 1}, {1, 5}, {5, 1}, {4, 3}, {16, 12}} {
		g := NewGridData(size[0], size[1])
		for y := 0; y < g.Height; y++ {
			for x := 0; x < g.Width; x++ {
				cell := make(CellData, 1+rng.IntN(3))
				for i := range cell {
					cell[i] = rng.IntN(50)
				}
				if err := g.SetCell(x, y, cell); err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
			}
		}

		b, err := json.Marshal(g)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		var back GridData
		if err := json.Unmarshal(b, &back); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !back.Equal(g) {
			t.Errorf("%dx%d grid did not round trip: %s", size[0], size[1], b)
		}
	}
}

func TestGridDataRowMajor(t *testing.T) {
	g := NewGridData(3, 2)
	_ = g.SetCell(2, 0, CellData{5})
	_ = g.SetCell(0, 1, CellData{1, 6})

	b, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "json", string(b), `[[[],[],5],[[1,6],[],[]]]`)
}

func TestGridDataUnmarshalErrors(t *testing.T) {
	tests := map[string]string{
		"empty":    `[]`,
		"ragged":   `[[1,2],[3]]`,
		"not rows": `[1,2,3]`,
	}

	for name, in := range tests {
		t.Run(name, func(t *testing.T) {
			var g GridData
			err := json.Unmarshal([]byte(in), &g)
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("expected ErrMalformed, got %v", err)
			}
		})
	}
}

func TestGridDataChangeIdempotent(t *testing.T) {
	g := NewGridData(3, 3)
	_ = g.SetCell(1, 1, CellData{1, 2, 3})
	d := GridDataChange{
		{X: 1, Y: 1, Cell: CellData{4}},
		{X: 2, Y: 0, Cell: CellData{5, 6}},
	}

	if err := d.ApplyTo(g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	once := NewGridData(3, 3)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			_ = once.SetCell(x, y, g.CellAt(x, y))
		}
	}

	if err := d.ApplyTo(g); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "idempotent", g.Equal(once), true)
	testutil.AssertEqual(t, "replaced not merged", g.CellAt(1, 1).Equal(CellData{4}), true)
}

func TestGridDataChangeOutOfBounds(t *testing.T) {
	g := NewGridData(2, 2)
	err := GridDataChange{{X: 2, Y: 0, Cell: CellData{1}}}.ApplyTo(g)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}

func TestGridFromRoom(t *testing.T) {
	r := game.NewRoom(0, 2, 2)
	r.CellAt(game.Point{X: 0, Y: 0}).Add(&game.Floor{Tile: 1})
	r.CellAt(game.Point{X: 1, Y: 1}).Add(&game.Floor{Tile: 1})
	r.CellAt(game.Point{X: 1, Y: 1}).Add(game.NewItem("Rock", 8))

	g := GridFromRoom(r)
	b, err := json.Marshal(g)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "json", string(b), `[[1,[]],[[],[1,8]]]`)

	d := ChangesFromRoom(r, []game.Point{{X: 1, Y: 1}})
	b, err = json.Marshal(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "delta", string(b), `[[1,1,[1,8]]]`)
}

func TestInventoryDataOf(t *testing.T) {
	var inv game.Inventory
	sword := game.NewWeapon("Sword", 20, 2, game.NoSound)
	rock := game.NewItem("Rock", 8)
	inv.Add(rock)
	inv.Add(sword)

	d := InventoryDataOf(&inv)
	testutil.AssertEqual(t, "items", len(d.Items), 2)
	testutil.AssertEqual(t, "first feature", d.Items[0].FeatureCode, "N")
	testutil.AssertEqual(t, "second feature", d.Items[1].FeatureCode, "W")
	testutil.AssertEqual(t, "weapon id", *d.WieldedWeaponId, sword.Id())
	testutil.AssertEqual(t, "no wand", d.WieldedWandId == nil, true)
}
