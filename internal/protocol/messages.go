package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-exploratron/internal/game"
)

// Message is one datagram's worth of communication. The set of messages is
// closed; each is identified on the wire by its type name.
type Message interface {
	message()
}

// Client to server.

type JoinServer struct {
	PlayerId string `json:"playerId"`
}

type KeyPressed struct {
	KeyCode game.KeyCode `json:"keyCode"`
}

type RequestInventory struct{}

type DropItem struct {
	ItemUniqueId string `json:"itemUniqueId"`
}

type Equip struct {
	EquipmentTypeCode game.EquipmentType `json:"equipmentTypeCode"`
	ItemUniqueId      string             `json:"itemUniqueId"`
}

type ClientDisconnecting struct{}

// Server to client.

type WelcomeClient struct {
	Grid GridData `json:"grid"`
}

type NewRoom struct {
	Grid GridData `json:"grid"`
}

type RefreshRoom struct {
	Grid GridData `json:"grid"`
}

type UpdateRoom struct {
	GridDataChange GridDataChange `json:"gridDataChange"`
}

type PlaySounds struct {
	SoundIds []game.SoundId `json:"soundIds"`
}

type UpdateVisibleData struct {
	VisibleData VisibleData `json:"visibleData"`
}

type Inventory struct {
	InventoryData InventoryData `json:"inventoryData"`
}

type InfoText struct {
	Text string `json:"text"`
}

type ConsoleText struct {
	Text string `json:"text"`
}

type ClientShouldExit struct{}

func (JoinServer) message()          {}
func (KeyPressed) message()          {}
func (RequestInventory) message()    {}
func (DropItem) message()            {}
func (Equip) message()               {}
func (ClientDisconnecting) message() {}
func (WelcomeClient) message()       {}
func (NewRoom) message()             {}
func (RefreshRoom) message()         {}
func (UpdateRoom) message()          {}
func (PlaySounds) message()          {}
func (UpdateVisibleData) message()   {}
func (Inventory) message()           {}
func (InfoText) message()            {}
func (ConsoleText) message()         {}
func (ClientShouldExit) message()    {}

func (m JoinServer) validate() error {
	if m.PlayerId == "" {
		return fmt.Errorf("%w: playerId is required", ErrInvalidMessage)
	}
	return nil
}

func (m KeyPressed) validate() error {
	if !m.KeyCode.Valid() {
		return fmt.Errorf("%w: unknown key code %d", ErrInvalidMessage, m.KeyCode)
	}
	return nil
}

func (m DropItem) validate() error {
	if m.ItemUniqueId == "" {
		return fmt.Errorf("%w: itemUniqueId is required", ErrInvalidMessage)
	}
	return nil
}

func (m Equip) validate() error {
	switch m.EquipmentTypeCode {
	case game.EquipWeapon, game.EquipWand:
	default:
		return fmt.Errorf("%w: unknown equipment type %q", ErrInvalidMessage, m.EquipmentTypeCode)
	}
	if m.ItemUniqueId == "" {
		return fmt.Errorf("%w: itemUniqueId is required", ErrInvalidMessage)
	}
	return nil
}

// VisibleData is the player state shown continuously by a client.
type VisibleData struct {
	Health    int `json:"health"`
	MaxHealth int `json:"maxHealth"`
	Mana      int `json:"mana"`
	MaxMana   int `json:"maxMana"`
}

// InventoryItemData is one carried item. On the wire it is
// [uniqueId, tileId, featureCode].
type InventoryItemData struct {
	UniqueId    string
	TileId      int
	FeatureCode string
}

func (d InventoryItemData) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{d.UniqueId, d.TileId, d.FeatureCode})
}

func (d *InventoryItemData) UnmarshalJSON(b []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(b, &parts); err != nil || len(parts) != 3 {
		return fmt.Errorf("%w: inventory item must be [uniqueId, tileId, featureCode]", ErrMalformed)
	}
	if err := json.Unmarshal(parts[0], &d.UniqueId); err != nil {
		return fmt.Errorf("%w: inventory item id: %w", ErrMalformed, err)
	}
	if err := json.Unmarshal(parts[1], &d.TileId); err != nil {
		return fmt.Errorf("%w: inventory item tile: %w", ErrMalformed, err)
	}
	if err := json.Unmarshal(parts[2], &d.FeatureCode); err != nil {
		return fmt.Errorf("%w: inventory item feature: %w", ErrMalformed, err)
	}
	return nil
}

// InventoryData is a snapshot of a player's inventory. The wielded ids are
// null when nothing is wielded.
type InventoryData struct {
	Items           []InventoryItemData `json:"items"`
	WieldedWeaponId *string             `json:"wieldedWeaponId"`
	WieldedWandId   *string             `json:"wieldedWandId"`
}
