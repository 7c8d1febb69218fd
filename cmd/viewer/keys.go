package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-exploratron/internal/game"
	"github.com/pixil98/go-exploratron/internal/protocol"
)

// command is what a key press turns into: messages for the server and
// whether the viewer should quit.
type command struct {
	send []protocol.Message
	quit bool
}

var moveKeys = map[rune]game.KeyCode{
	'w': game.KeyGoUp,
	's': game.KeyGoDown,
	'a': game.KeyGoLeft,
	'd': game.KeyGoRight,
	'e': game.KeyPickUp,
	'q': game.KeyCast,
}

var arrowKeys = map[tcell.Key]game.KeyCode{
	tcell.KeyUp:    game.KeyGoUp,
	tcell.KeyDown:  game.KeyGoDown,
	tcell.KeyLeft:  game.KeyGoLeft,
	tcell.KeyRight: game.KeyGoRight,
}

func press(k game.KeyCode) protocol.Message {
	return protocol.KeyPressed{KeyCode: k}
}

// handleKey maps a key to a command. With the inventory open the arrows and
// enter drive the item list instead of the player.
func (v *view) handleKey(key tcell.Key, r rune) command {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return command{send: []protocol.Message{protocol.ClientDisconnecting{}}, quit: true}
	}

	if r == 'i' && key == tcell.KeyRune {
		v.showInventory = !v.showInventory
		return command{send: []protocol.Message{press(game.KeyToggleInventory)}}
	}

	if v.showInventory {
		return v.inventoryKey(key, r)
	}

	if key == tcell.KeyRune {
		if k, ok := moveKeys[r]; ok {
			return command{send: []protocol.Message{press(k)}}
		}
		return command{}
	}
	if k, ok := arrowKeys[key]; ok {
		return command{send: []protocol.Message{press(k)}}
	}
	return command{}
}

func (v *view) inventoryKey(key tcell.Key, r rune) command {
	switch key {
	case tcell.KeyUp:
		v.moveCursor(-1)
		return command{send: []protocol.Message{press(game.KeyMoveUIUp)}}
	case tcell.KeyDown:
		v.moveCursor(1)
		return command{send: []protocol.Message{press(game.KeyMoveUIDown)}}
	case tcell.KeyEnter:
		item, ok := v.selected()
		if !ok {
			return command{}
		}
		switch item.FeatureCode {
		case game.FeatureWeapon:
			return command{send: []protocol.Message{protocol.Equip{EquipmentTypeCode: game.EquipWeapon, ItemUniqueId: item.UniqueId}}}
		case game.FeatureWand:
			return command{send: []protocol.Message{protocol.Equip{EquipmentTypeCode: game.EquipWand, ItemUniqueId: item.UniqueId}}}
		}
		return command{send: []protocol.Message{press(game.KeyUIAction)}}
	case tcell.KeyRune:
		if r == 'x' {
			if item, ok := v.selected(); ok {
				return command{send: []protocol.Message{protocol.DropItem{ItemUniqueId: item.UniqueId}}}
			}
		}
	}
	return command{}
}
