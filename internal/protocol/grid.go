package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// CellData is the stack of tile ids in one cell, bottom first. On the wire a
// single tile is a bare number and anything else is a list.
type CellData []int

func (c CellData) MarshalJSON() ([]byte, error) {
	if len(c) == 1 {
		return json.Marshal(c[0])
	}
	if c == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]int(c))
}

func (c *CellData) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var ids []int
		if err := json.Unmarshal(b, &ids); err != nil {
			return fmt.Errorf("%w: cell: %w", ErrMalformed, err)
		}
		*c = CellData(ids)
		if *c == nil {
			*c = CellData{}
		}
		return nil
	}
	var id int
	if err := json.Unmarshal(b, &id); err != nil {
		return fmt.Errorf("%w: cell must be a number or a list of numbers", ErrMalformed)
	}
	*c = CellData{id}
	return nil
}

func (c CellData) Equal(o CellData) bool {
	return slices.Equal(c, o)
}

// GridData is the full contents of a room.
type GridData struct {
	Width  int
	Height int
	cells  []CellData
}

// NewGridData creates a grid of empty cells.
func NewGridData(width, height int) GridData {
	cells := make([]CellData, width*height)
	for i := range cells {
		cells[i] = CellData{}
	}
	return GridData{Width: width, Height: height, cells: cells}
}

func (g GridData) inBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.Width && y < g.Height
}

// CellAt returns the cell at (x,y). Coordinates must be in bounds.
func (g GridData) CellAt(x, y int) CellData {
	return g.cells[x+y*g.Width]
}

// SetCell replaces the cell at (x,y).
func (g GridData) SetCell(x, y int, c CellData) error {
	if !g.inBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, g.Width, g.Height)
	}
	g.cells[x+y*g.Width] = slices.Clone(c)
	return nil
}

// Equal reports whether both grids have the same shape and tiles.
func (g GridData) Equal(o GridData) bool {
	return g.Width == o.Width && g.Height == o.Height && slices.EqualFunc(g.cells, o.cells, CellData.Equal)
}

// MarshalJSON writes the grid as rows of cells.
func (g GridData) MarshalJSON() ([]byte, error) {
	rows := make([][]CellData, g.Height)
	for y := range rows {
		rows[y] = g.cells[y*g.Width : (y+1)*g.Width]
	}
	return json.Marshal(rows)
}

func (g *GridData) UnmarshalJSON(b []byte) error {
	var rows [][]CellData
	if err := json.Unmarshal(b, &rows); err != nil {
		return fmt.Errorf("%w: grid: %w", ErrMalformed, err)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return fmt.Errorf("%w: grid must be at least 1x1", ErrMalformed)
	}
	width := len(rows[0])
	cells := make([]CellData, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return fmt.Errorf("%w: grid row %d has width %d, want %d", ErrMalformed, y, len(row), width)
		}
		cells = append(cells, row...)
	}
	*g = GridData{Width: width, Height: len(rows), cells: cells}
	return nil
}

// CellChange replaces one cell. On the wire it is [x, y, cell].
type CellChange struct {
	X    int
	Y    int
	Cell CellData
}

func (c CellChange) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{c.X, c.Y, c.Cell})
}

func (c *CellChange) UnmarshalJSON(b []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(b, &parts); err != nil || len(parts) != 3 {
		return fmt.Errorf("%w: cell change must be [x, y, cell]", ErrMalformed)
	}
	if err := json.Unmarshal(parts[0], &c.X); err != nil {
		return fmt.Errorf("%w: cell change x: %w", ErrMalformed, err)
	}
	if err := json.Unmarshal(parts[1], &c.Y); err != nil {
		return fmt.Errorf("%w: cell change y: %w", ErrMalformed, err)
	}
	return json.Unmarshal(parts[2], &c.Cell)
}

// GridDataChange is a list of cell replacements.
type GridDataChange []CellChange

// ApplyTo replaces each changed cell in g. Applying the same change twice
// gives the same grid as applying it once.
func (d GridDataChange) ApplyTo(g GridData) error {
	for _, c := range d {
		if err := g.SetCell(c.X, c.Y, c.Cell); err != nil {
			return err
		}
	}
	return nil
}
