package storage

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/pixil98/go-testutil"
)

func asset(id, name string, valid bool) *fstest.MapFile {
	v := "false"
	if valid {
		v = "true"
	}
	return &fstest.MapFile{Data: []byte(`{"version":1,"id":"` + id + `","spec":{"name":"` + name + `","valid":` + v + `}}`)}
}

func TestNewFileStore(t *testing.T) {
	tests := map[string]struct {
		fsys   fstest.MapFS
		expIds []string
		expErr string
	}{
		"empty directory": {
			fsys: fstest.MapFS{"items": {Mode: fs.ModeDir | 0755}},
		},
		"loads nested files": {
			fsys: fstest.MapFS{
				"items/sword.json":         asset("sword", "Sword", true),
				"items/wands/healing.json": asset("healing-wand", "Healing Wand", true),
			},
			expIds: []string{"healing-wand", "sword"},
		},
		"ignores other files and directories": {
			fsys: fstest.MapFS{
				"items/sword.json":  asset("sword", "Sword", true),
				"items/README.md":   {Data: []byte("# items")},
				"rooms/room-0.json": asset("room-0", "Room", true),
			},
			expIds: []string{"sword"},
		},
		"missing directory": {
			fsys:   fstest.MapFS{},
			expErr: "loading items",
		},
		"invalid json": {
			fsys:   fstest.MapFS{"items/bad.json": {Data: []byte(`{"version":`)}},
			expErr: "bad.json: unmarshalling asset",
		},
		"validation error": {
			fsys:   fstest.MapFS{"items/bad.json": asset("bad", "Bad", false)},
			expErr: "validating bad.json",
		},
		"duplicate id": {
			fsys: fstest.MapFS{
				"items/a.json": asset("sword", "Sword", true),
				"items/b.json": asset("sword", "Other Sword", true),
			},
			expErr: "duplicate asset id: sword",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			st, err := NewFileStore[*testSpec](tt.fsys, "items")
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "ids", strings.Join(st.Ids(), ","), strings.Join(tt.expIds, ","))
		})
	}
}

func TestNewFileStore_DuplicateIsSentinel(t *testing.T) {
	_, err := NewFileStore[*testSpec](fstest.MapFS{
		"items/a.json": asset("sword", "Sword", true),
		"items/b.json": asset("sword", "Sword", true),
	}, "items")
	if !errors.Is(err, ErrDuplicateKey) {
		t.Errorf("err = %v, want ErrDuplicateKey", err)
	}
}

func TestFileStore_Get(t *testing.T) {
	st, err := NewFileStore[*testSpec](fstest.MapFS{
		"items/sword.json": asset("sword", "Sword", true),
	}, "items")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := map[string]struct {
		id      string
		expOk   bool
		expName string
	}{
		"existing": {id: "sword", expOk: true, expName: "Sword"},
		"missing":  {id: "spear"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, ok := st.Get(tt.id)
			testutil.AssertEqual(t, "ok", ok, tt.expOk)
			if ok {
				testutil.AssertEqual(t, "name", got.Name, tt.expName)
			}
		})
	}
}

func TestFileStore_GetAllIsACopy(t *testing.T) {
	st, err := NewFileStore[*testSpec](fstest.MapFS{
		"items/sword.json": asset("sword", "Sword", true),
	}, "items")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	all := st.GetAll()
	delete(all, "sword")

	testutil.AssertEqual(t, "store size", len(st.GetAll()), 1)
}
