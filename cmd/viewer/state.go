package main

import (
	"fmt"

	"github.com/pixil98/go-exploratron/internal/display"
	"github.com/pixil98/go-exploratron/internal/protocol"
)

// view is everything the client knows about the game, rebuilt from server
// messages.
type view struct {
	grid     protocol.GridData
	haveGrid bool

	visible   protocol.VisibleData
	inventory protocol.InventoryData
	info      string
	sounds    []int

	console *display.Console

	showInventory bool
	cursor        int
	exit          bool
}

func newView() *view {
	return &view{console: display.NewConsole(display.DefaultWidth, consoleHeight)}
}

// apply folds one server message into the view.
func (v *view) apply(msg protocol.Message) error {
	switch msg := msg.(type) {
	case protocol.WelcomeClient:
		v.grid, v.haveGrid = msg.Grid, true
	case protocol.NewRoom:
		v.grid, v.haveGrid = msg.Grid, true
		v.info = ""
	case protocol.RefreshRoom:
		if !v.haveGrid {
			return fmt.Errorf("refresh before any room")
		}
		v.grid = msg.Grid
	case protocol.UpdateRoom:
		if !v.haveGrid {
			return fmt.Errorf("update before any room")
		}
		return msg.GridDataChange.ApplyTo(v.grid)
	case protocol.PlaySounds:
		v.sounds = v.sounds[:0]
		for _, id := range msg.SoundIds {
			v.sounds = append(v.sounds, int(id))
		}
	case protocol.UpdateVisibleData:
		v.visible = msg.VisibleData
	case protocol.Inventory:
		v.inventory = msg.InventoryData
		v.cursor = min(v.cursor, max(len(v.inventory.Items)-1, 0))
	case protocol.InfoText:
		v.info = msg.Text
	case protocol.ConsoleText:
		v.console.Add(msg.Text)
	case protocol.ClientShouldExit:
		v.exit = true
	default:
		return fmt.Errorf("unexpected %s from server", protocol.Name(msg))
	}
	return nil
}

// selected returns the inventory item under the cursor.
func (v *view) selected() (protocol.InventoryItemData, bool) {
	if v.cursor < 0 || v.cursor >= len(v.inventory.Items) {
		return protocol.InventoryItemData{}, false
	}
	return v.inventory.Items[v.cursor], true
}

func (v *view) moveCursor(delta int) {
	if len(v.inventory.Items) == 0 {
		v.cursor = 0
		return
	}
	v.cursor = (v.cursor + delta + len(v.inventory.Items)) % len(v.inventory.Items)
}
