package protocol

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/pixil98/go-exploratron/internal/game"
	"github.com/pixil98/go-testutil"
)

func TestEncode(t *testing.T) {
	tests := map[string]struct {
		msg Message
		exp string
	}{
		"join": {
			msg: JoinServer{PlayerId: "0"},
			exp: `{"message":"JoinServer","data":{"playerId":"0"}}`,
		},
		"empty payload": {
			msg: ClientShouldExit{},
			exp: `{"message":"ClientShouldExit","data":{}}`,
		},
		"key pressed": {
			msg: KeyPressed{KeyCode: game.KeyGoDown},
			exp: `{"message":"KeyPressed","data":{"keyCode":2}}`,
		},
		"update room": {
			msg: UpdateRoom{GridDataChange: GridDataChange{{X: 1, Y: 2, Cell: CellData{5}}, {X: 0, Y: 0, Cell: CellData{1, 7}}}},
			exp: `{"message":"UpdateRoom","data":{"gridDataChange":[[1,2,5],[0,0,[1,7]]]}}`,
		},
		"visible data": {
			msg: UpdateVisibleData{VisibleData: VisibleData{Health: 3, MaxHealth: 9, Mana: 1, MaxMana: 10}},
			exp: `{"message":"UpdateVisibleData","data":{"visibleData":{"health":3,"maxHealth":9,"mana":1,"maxMana":10}}}`,
		},
		"inventory with nothing wielded": {
			msg: Inventory{InventoryData: InventoryData{Items: []InventoryItemData{{UniqueId: "a", TileId: 4, FeatureCode: "N"}}}},
			exp: `{"message":"Inventory","data":{"inventoryData":{"items":[["a",4,"N"]],"wieldedWeaponId":null,"wieldedWandId":null}}}`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			b, err := Encode(tt.msg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "encoded", string(b), tt.exp)
		})
	}
}

func TestEncodeTooLarge(t *testing.T) {
	_, err := Encode(InfoText{Text: strings.Repeat("x", MaxPacketSize)})
	if !errors.Is(err, ErrMessageTooLarge) {
		t.Errorf("expected ErrMessageTooLarge, got %v", err)
	}

	// Just under the limit still fits.
	overhead := len(`{"message":"InfoText","data":{"text":""}}`)
	b, err := Encode(InfoText{Text: strings.Repeat("x", MaxPacketSize-overhead)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "size", len(b), MaxPacketSize)
}

func TestDecode(t *testing.T) {
	tests := map[string]struct {
		in     string
		exp    Message
		expErr error
	}{
		"join": {
			in:  `{"message":"JoinServer","data":{"playerId":"1"}}`,
			exp: JoinServer{PlayerId: "1"},
		},
		"missing data": {
			in:  `{"message":"ClientDisconnecting"}`,
			exp: ClientDisconnecting{},
		},
		"equip": {
			in:  `{"message":"Equip","data":{"equipmentTypeCode":"S","itemUniqueId":"abc"}}`,
			exp: Equip{EquipmentTypeCode: game.EquipWand, ItemUniqueId: "abc"},
		},
		"unknown message": {
			in:     `{"message":"LaunchMissiles","data":{}}`,
			expErr: ErrUnknownMessage,
		},
		"not json": {
			in:     `hello`,
			expErr: ErrMalformed,
		},
		"bad payload": {
			in:     `{"message":"KeyPressed","data":{"keyCode":"up"}}`,
			expErr: ErrMalformed,
		},
		"empty player id": {
			in:     `{"message":"JoinServer","data":{"playerId":""}}`,
			expErr: ErrInvalidMessage,
		},
		"unknown key code": {
			in:     `{"message":"KeyPressed","data":{"keyCode":42}}`,
			expErr: ErrInvalidMessage,
		},
		"unknown equipment type": {
			in:     `{"message":"Equip","data":{"equipmentTypeCode":"Q","itemUniqueId":"abc"}}`,
			expErr: ErrInvalidMessage,
		},
		"oversized": {
			in:     `{"message":"InfoText","data":{"text":"` + strings.Repeat("x", MaxPacketSize) + `"}}`,
			expErr: ErrMessageTooLarge,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := Decode([]byte(tt.in))
			if tt.expErr != nil {
				if !errors.Is(err, tt.expErr) {
					t.Errorf("expected %v, got %v", tt.expErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "message", got, tt.exp)
		})
	}
}

func TestDecodeGridMessages(t *testing.T) {
	g := NewGridData(2, 1)
	if err := g.SetCell(1, 0, CellData{3, 9}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := Encode(NewRoom{Grid: g})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m, err := Decode(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	nr, ok := m.(NewRoom)
	if !ok {
		t.Fatalf("expected NewRoom, got %T", m)
	}
	testutil.AssertEqual(t, "grid equal", nr.Grid.Equal(g), true)
}

func TestName(t *testing.T) {
	testutil.AssertEqual(t, "name", Name(RefreshRoom{}), "RefreshRoom")
	testutil.AssertEqual(t, "registered", len(decoders), 16)

	var env map[string]any
	b, _ := Encode(PlaySounds{SoundIds: []game.SoundId{1, 2}})
	if err := json.Unmarshal(b, &env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "message key", env["message"], any("PlaySounds"))
}
