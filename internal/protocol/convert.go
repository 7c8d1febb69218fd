package protocol

import "github.com/pixil98/go-exploratron/internal/game"

// GridFromRoom snapshots every cell of a room.
func GridFromRoom(r *game.Room) GridData {
	g := NewGridData(r.Width(), r.Height())
	for y := 0; y < r.Height(); y++ {
		for x := 0; x < r.Width(); x++ {
			g.cells[x+y*g.Width] = CellData(r.CellAt(game.Point{X: x, Y: y}).TileIds())
		}
	}
	return g
}

// ChangesFromRoom snapshots the listed cells of a room.
func ChangesFromRoom(r *game.Room, cells []game.Point) GridDataChange {
	d := make(GridDataChange, 0, len(cells))
	for _, p := range cells {
		d = append(d, CellChange{X: p.X, Y: p.Y, Cell: CellData(r.CellAt(p).TileIds())})
	}
	return d
}

func VisibleDataOf(p *game.Player) VisibleData {
	return VisibleData{
		Health:    p.Stats.Health,
		MaxHealth: p.Stats.MaxHealth,
		Mana:      p.Stats.Mana,
		MaxMana:   p.Stats.MaxMana,
	}
}

func InventoryDataOf(inv *game.Inventory) InventoryData {
	d := InventoryData{Items: []InventoryItemData{}}
	for _, item := range inv.Items() {
		d.Items = append(d.Items, InventoryItemData{
			UniqueId:    item.Id(),
			TileId:      item.TileId(),
			FeatureCode: item.FeatureCode(),
		})
	}
	if w := inv.WieldedWeapon(); w != nil {
		id := w.Id()
		d.WieldedWeaponId = &id
	}
	if w := inv.WieldedWand(); w != nil {
		id := w.Id()
		d.WieldedWandId = &id
	}
	return d
}
