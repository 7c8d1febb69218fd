package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pixil98/go-exploratron/internal/display"
)

const consoleHeight = 6

// canvas is the part of tcell.Screen the renderer draws with.
type canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

type glyph struct {
	r     rune
	color tcell.Color
}

// glyphs maps tile ids of the bundled world to terminal characters.
var glyphs = map[int]glyph{
	0:  {'.', tcell.ColorOlive},
	5:  {'>', tcell.ColorWhite},
	6:  {'=', tcell.ColorYellow},
	7:  {'#', tcell.ColorGray},
	8:  {'+', tcell.ColorMaroon},
	11: {'@', tcell.ColorLime},
	12: {'b', tcell.ColorYellow},
	13: {'m', tcell.ColorSilver},
	14: {'^', tcell.ColorGreen},
	15: {'/', tcell.ColorAqua},
	16: {'|', tcell.ColorAqua},
	17: {'!', tcell.ColorBlue},
	18: {'~', tcell.ColorFuchsia},
	19: {'?', tcell.ColorWhite},
	20: {',', tcell.ColorGreen},
	21: {'T', tcell.ColorGreen},
	22: {'~', tcell.ColorPurple},
	23: {'o', tcell.ColorBlue},
	24: {'o', tcell.ColorGreen},
	25: {'o', tcell.ColorRed},
	26: {'@', tcell.ColorFuchsia},
	27: {'@', tcell.ColorTeal},
}

var unknownGlyph = glyph{'*', tcell.ColorWhite}

func glyphFor(tile int) glyph {
	if g, ok := glyphs[tile]; ok {
		return g
	}
	return unknownGlyph
}

func drawText(c canvas, x, y int, s string, style tcell.Style) {
	for _, r := range s {
		c.SetContent(x, y, r, nil, style)
		x++
	}
}

// draw paints the room, status line, info text, inventory and console.
func draw(c canvas, v *view) {
	w, h := c.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}

	if !v.haveGrid {
		drawText(c, 0, 0, "Waiting for the server...", tcell.StyleDefault)
		return
	}

	// Only the top thing in each cell is drawn.
	for y := 0; y < v.grid.Height; y++ {
		for x := 0; x < v.grid.Width; x++ {
			cell := v.grid.CellAt(x, y)
			if len(cell) == 0 {
				continue
			}
			g := glyphFor(cell[len(cell)-1])
			c.SetContent(x, y, g.r, nil, tcell.StyleDefault.Foreground(g.color))
		}
	}

	row := v.grid.Height + 1
	status := fmt.Sprintf("HP %d/%d  MP %d/%d", v.visible.Health, v.visible.MaxHealth, v.visible.Mana, v.visible.MaxMana)
	drawText(c, 0, row, status, tcell.StyleDefault.Bold(true))
	row++

	if v.info != "" {
		for _, line := range display.Wrap(v.info, max(w, 1)) {
			drawText(c, 0, row, line, tcell.StyleDefault.Foreground(tcell.ColorYellow))
			row++
		}
	}

	if v.showInventory {
		row = drawInventory(c, v, row)
	}

	v.console.Resize(max(w, 1), consoleHeight)
	for _, line := range v.console.Lines() {
		drawText(c, 0, row, line, tcell.StyleDefault)
		row++
	}
}

func drawInventory(c canvas, v *view, row int) int {
	drawText(c, 0, row, "Inventory (enter: wield, x: drop)", tcell.StyleDefault.Underline(true))
	row++
	for i, item := range v.inventory.Items {
		marker := " "
		if isWielded(v, item.UniqueId) {
			marker = "*"
		}
		style := tcell.StyleDefault
		if i == v.cursor {
			style = style.Reverse(true)
		}
		g := glyphFor(item.TileId)
		drawText(c, 0, row, fmt.Sprintf("%s %c [%s]", marker, g.r, item.FeatureCode), style)
		row++
	}
	return row
}

func isWielded(v *view, id string) bool {
	inv := v.inventory
	return (inv.WieldedWeaponId != nil && *inv.WieldedWeaponId == id) ||
		(inv.WieldedWandId != nil && *inv.WieldedWandId == id)
}
