package loader

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/pixil98/go-exploratron/internal/game"
	"github.com/pixil98/go-testutil"
)

func TestShippedWorld(t *testing.T) {
	st, err := Load(Shipped())
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	w, err := BuildWorld(st)
	if err != nil {
		t.Fatalf("building: %v", err)
	}

	testutil.AssertEqual(t, "rooms", len(w.Rooms()), 5)
	testutil.AssertEqual(t, "catalog", w.Catalog().Len(), 3)

	entry, ok := w.Catalog().Entry("2")
	if !ok {
		t.Fatal("player 2 missing from catalog")
	}
	testutil.AssertEqual(t, "start", entry.Start, game.Location{RoomNumber: 1, Coordinates: game.Point{X: 1, Y: 2}})
	testutil.AssertEqual(t, "max mana", entry.Stats.MaxMana, 11)

	// Room 0 spawns its bee only once a player arrives.
	room0 := w.Room(0)
	testutil.AssertEqual(t, "entered", room0.HasBeenEntered(), false)
	spawned := room0.PlayerEntersRoom(game.NewScreenChanges())
	testutil.AssertEqual(t, "spawned", len(spawned), 1)
	testutil.AssertEqual(t, "spawn name", spawned[0].Name, "Giant Bee")
	if spawned[0].WieldedWeapon() == nil {
		t.Error("bee should wield its stinger")
	}
}

func TestBuildRoom(t *testing.T) {
	fsys := fstest.MapFS{
		"items/sword.json": {Data: []byte(`{"version":1,"id":"sword","spec":{"name":"Sword","tile":15,"class":"weapon","damage":2,"hit_sound":2}}`)},
		"mobiles/rat.json": {Data: []byte(`{"version":1,"id":"rat","spec":{"name":"Rat","tile":12,"health":2,"speed":1,"brain":"random"}}`)},
		"players/ada.json": {Data: []byte(`{"version":1,"id":"ada","spec":{"player_id":"0","name":"Ada","tile":11,"health":9,"mana":10,"speed":5,"start":{"room":0,"x":1,"y":1},"items":["sword"]}}`)},
		"rooms/room-0.json": {Data: []byte(`{"version":1,"id":"room-0","spec":{
			"number":0,
			"layout":["#.#","#.#","#.#"],
			"legend":{"#":{"kind":"wall","tile":7},".":{"kind":"floor","tile":0}},
			"features":[
				{"kind":"sign","at":{"x":1,"y":2},"tile":19,"text":"hello"},
				{"kind":"door","at":{"x":1,"y":0},"tile":8,"destination":{"room":0,"x":1,"y":1},"sound":1}
			],
			"items":[{"at":{"x":1,"y":2},"item":"sword"}],
			"mobiles":[{"at":{"x":1,"y":2},"mobile":"rat"}]
		}}`)},
	}

	st, err := Load(fsys)
	if err != nil {
		t.Fatalf("loading: %v", err)
	}
	w, err := BuildWorld(st)
	if err != nil {
		t.Fatalf("building: %v", err)
	}

	r := w.Room(0)
	testutil.AssertEqual(t, "width", r.Width(), 3)
	testutil.AssertEqual(t, "height", r.Height(), 3)

	tiles := r.CellAt(game.Point{X: 1, Y: 2}).TileIds()
	exp := []int{0, 19, 15}
	if len(tiles) != len(exp) {
		t.Fatalf("tiles = %v, want %v", tiles, exp)
	}
	for i := range exp {
		testutil.AssertEqual(t, "tile", tiles[i], exp[i])
	}

	door := r.CellAt(game.Point{X: 1, Y: 0}).Things()
	if d, ok := door[len(door)-1].(*game.Door); !ok || d.Sound != 1 {
		t.Errorf("expected a door with sound 1, got %#v", door[len(door)-1])
	}

	entry, _ := w.Catalog().Entry("0")
	p := entry.NewPlayer()
	if p.WieldedWeapon() == nil || p.WieldedWeapon().Name != "Sword" {
		t.Error("player should start wielding the sword")
	}
}

// wideRows returns n quoted layout rows of width floor cells.
func wideRows(width, n int) string {
	row := `"` + strings.Repeat(".", width) + `"`
	rows := make([]string, n)
	for i := range rows {
		rows[i] = row
	}
	return strings.Join(rows, ",")
}

func TestLoadErrors(t *testing.T) {
	room := func(spec string) *fstest.MapFile {
		return &fstest.MapFile{Data: []byte(`{"version":1,"id":"room-0","spec":` + spec + `}`)}
	}
	legend := `"legend":{"#":{"kind":"wall","tile":7},".":{"kind":"floor","tile":0}}`

	tests := map[string]struct {
		rooms    *fstest.MapFile
		players  *fstest.MapFile
		expErr   string
		expBuild bool
	}{
		"ragged layout": {
			rooms:  room(`{"number":0,"layout":["###","#."],` + legend + `}`),
			expErr: "row 1 is not 3 wide",
		},
		"unknown layout character": {
			rooms:  room(`{"number":0,"layout":["#x#"],` + legend + `}`),
			expErr: "not in the legend",
		},
		"unknown mobile reference": {
			rooms:  room(`{"number":0,"layout":["..."],` + legend + `,"mobiles":[{"at":{"x":0,"y":0},"mobile":"dragon"}]}`),
			expErr: `MobileSpec "dragon"`,
		},
		"feature out of bounds": {
			rooms:  room(`{"number":0,"layout":["..."],` + legend + `,"features":[{"kind":"trap","at":{"x":5,"y":0},"tile":14}]}`),
			expErr: "outside the room",
		},
		"door to missing room": {
			rooms:    room(`{"number":0,"layout":["..."],` + legend + `,"features":[{"kind":"door","at":{"x":0,"y":0},"tile":8,"destination":{"room":4,"x":0,"y":0}}]}`),
			expErr:   "no room 4",
			expBuild: true,
		},
		"sign with unknown field": {
			rooms:  room(`{"number":0,"layout":["..."],` + legend + `,"features":[{"kind":"sign","at":{"x":0,"y":0},"tile":19,"text":"Hi {{ .Gold }}"}]}`),
			expErr: "sign at (0,0)",
		},
		"room too large for one packet": {
			rooms:    room(`{"number":0,"layout":[` + wideRows(40, 40) + `],` + legend + `}`),
			expErr:   "room room-0: message exceeds packet size",
			expBuild: true,
		},
		"start inside a wall": {
			rooms:    room(`{"number":0,"layout":["#.."],` + legend + `}`),
			players:  &fstest.MapFile{Data: []byte(`{"version":1,"id":"ada","spec":{"player_id":"0","name":"Ada","tile":11,"health":9,"speed":5,"start":{"room":0,"x":0,"y":0}}}`)},
			expErr:   "is a wall",
			expBuild: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"items/.keep":       {},
				"mobiles/.keep":     {},
				"players/.keep":     {},
				"rooms/room-0.json": tt.rooms,
			}
			if tt.players != nil {
				fsys["players/ada.json"] = tt.players
			}

			st, err := Load(fsys)
			if !tt.expBuild {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("loading: %v", err)
			}
			_, err = BuildWorld(st)
			testutil.AssertErrorContains(t, err, tt.expErr)
		})
	}
}

func TestItemSpecValidate(t *testing.T) {
	tests := map[string]struct {
		spec   ItemSpec
		expErr string
	}{
		"plain": {
			spec: ItemSpec{Name: "Potion", Tile: 17},
		},
		"weapon without damage": {
			spec:   ItemSpec{Name: "Stick", Class: "weapon"},
			expErr: "weapon damage must be positive",
		},
		"wand without spell": {
			spec:   ItemSpec{Name: "Wand", Class: "wand"},
			expErr: "wand spell must be set",
		},
		"unknown spell": {
			spec:   ItemSpec{Name: "Wand", Class: "wand", Spell: &SpellSpec{Kind: "fireball"}},
			expErr: `spell "fireball"`,
		},
		"unknown class": {
			spec:   ItemSpec{Name: "Hat", Class: "armor"},
			expErr: `item class "armor"`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestItemSpecBuild(t *testing.T) {
	wand := (&ItemSpec{
		Name:     "Healing Wand",
		Tile:     18,
		Class:    "wand",
		ManaCost: 2,
		Spell:    &SpellSpec{Kind: "healing", Amount: 3},
	}).Build()

	testutil.AssertEqual(t, "feature", wand.FeatureCode(), game.FeatureWand)
	heal, ok := wand.Spell.(*game.HealingSpell)
	if !ok {
		t.Fatalf("expected healing spell, got %T", wand.Spell)
	}
	testutil.AssertEqual(t, "amount", heal.Amount, 3)
	testutil.AssertEqual(t, "sound", heal.Sound, game.NoSound)

	other := (&ItemSpec{Name: "Healing Wand", Tile: 18}).Build()
	if wand.Id() == other.Id() {
		t.Error("built items must have distinct ids")
	}
}
