package game

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// Update advances the world by one tick. The phases run in a fixed order:
// non-action events, player actions, regeneration, mobile brains, the death
// sweep and finally the game-over check. Any returned error is a broken
// invariant and the world should not be updated again.
func (w *World) Update(now Millis, events *EventList, sc *ScreenChanges) error {
	for _, e := range events.NonActionEvents() {
		if err := w.handleEvent(e, sc); err != nil {
			return err
		}
	}

	for _, p := range w.Players() {
		if err := w.playerTurn(p, now, events, sc); err != nil {
			return err
		}
	}

	if now >= w.timeOfNextRegen {
		for _, m := range w.mobiles {
			m.DoRegen()
		}
		for _, p := range w.players {
			p.DoRegen()
		}
		w.timeOfNextRegen = now + w.regenInterval
	}

	for _, m := range w.Mobiles() {
		if m.dead || m.Brain == nil || !m.CanAct(now) {
			continue
		}
		if err := m.Brain.TakeOneAction(m, now, w, sc); err != nil {
			return fmt.Errorf("%s (%s) acting: %w", m.Name, m.Id(), err)
		}
		m.advanceCooldown(now)
	}

	if err := w.sweepDead(sc); err != nil {
		return err
	}

	if !w.keepWhenUnseen && w.hadObservers && !slices.ContainsFunc(w.players, (*Player).IsObserved) {
		slog.Info("no players are being observed")
		w.gameOver = true
	}
	return nil
}

func (w *World) handleEvent(e Event, sc *ScreenChanges) error {
	switch e := e.(type) {
	case QuitGame:
		slog.Info("quit requested")
		w.gameOver = true
		return nil
	case PlayerJoined:
		return w.playerJoined(e, sc)
	case ClientLeft:
		p := w.Player(e.PlayerId)
		if p == nil {
			return nil
		}
		if err := p.RemoveClient(e.Client); err != nil {
			if errors.Is(err, ErrClientNotAttached) {
				slog.Warn("ignoring leave", "player", e.PlayerId, "client", e.Client.ClientId(), "error", err)
				return nil
			}
			return err
		}
		slog.Info("client left", "player", e.PlayerId, "client", e.Client.ClientId())
		return nil
	case KeyPressed:
		return w.uiKey(e, sc)
	case RequestInventory:
		if w.Player(e.PlayerId) != nil {
			sc.RequestInventory(e.Client)
		}
		return nil
	case DropItem:
		p := w.Player(e.PlayerId)
		if p == nil {
			return nil
		}
		return p.DropItem(e.ItemId, sc)
	case EquipItem:
		p := w.Player(e.PlayerId)
		if p == nil {
			return nil
		}
		err := p.Equip(e.Slot, e.ItemId, sc)
		if errors.Is(err, ErrNotWieldable) {
			slog.Warn("rejected equip", "player", e.PlayerId, "item", e.ItemId, "error", err)
			return nil
		}
		return err
	default:
		return fmt.Errorf("%w: %T", ErrUnknownEvent, e)
	}
}

func (w *World) playerJoined(e PlayerJoined, sc *ScreenChanges) error {
	if p := w.Player(e.PlayerId); p != nil {
		p.AddClient(e.Client)
		sc.ClientJoined(p, e.Client)
		slog.Info("client attached", "player", e.PlayerId, "client", e.Client.ClientId())
		return nil
	}

	entry, ok := w.catalog.Entry(e.PlayerId)
	if !ok {
		slog.Warn("rejected join", "player", e.PlayerId, "client", e.Client.ClientId(), "error", ErrUnknownPlayer)
		sc.RejectClient(e.Client)
		return nil
	}

	p := entry.NewPlayer()
	if err := w.AddPlayer(p, entry.Start, sc); err != nil {
		return err
	}
	p.AddClient(e.Client)
	sc.ClientJoined(p, e.Client)
	sc.AddConsoleTextForAll(render(tmplJoined, map[string]any{"Name": p.Name}))
	slog.Info("player joined", "player", e.PlayerId, "client", e.Client.ClientId(), "location", entry.Start)
	return nil
}

// uiKey handles keys that do not take a turn.
func (w *World) uiKey(e KeyPressed, sc *ScreenChanges) error {
	p := w.Player(e.PlayerId)
	if p == nil {
		return nil
	}
	switch e.Key {
	case KeyToggleInventory:
		sc.InventoryChanged(p)
	case KeyMoveUIUp, KeyMoveUIDown, KeyMoveUILeft, KeyMoveUIRight, KeyUIAction:
		// Inventory navigation happens on the client.
	default:
		return fmt.Errorf("%w: key %d", ErrUnknownEvent, e.Key)
	}
	return nil
}

// playerTurn lets a player take at most one action. Input that arrives while
// the player is on cooldown is buffered, first one wins.
func (w *World) playerTurn(p *Player, now Millis, events *EventList, sc *ScreenChanges) error {
	if p.dead {
		return nil
	}
	next, hasNext := events.FirstActionEvent(p.Id())

	if !p.CanAct(now) {
		if hasNext && p.queued == nil {
			p.queued = &next
		}
		return nil
	}

	if p.queued != nil {
		queued := *p.queued
		p.queued = nil
		if hasNext {
			p.queued = &next
		}
		return w.doAction(p, queued, now, sc)
	}
	if hasNext {
		return w.doAction(p, next, now, sc)
	}
	return nil
}

func (w *World) doAction(p *Player, e KeyPressed, now Millis, sc *ScreenChanges) error {
	var err error
	switch e.Key {
	case KeyGoUp:
		err = p.MoveNorth(w, sc)
	case KeyGoDown:
		err = p.MoveSouth(w, sc)
	case KeyGoLeft:
		err = p.MoveWest(w, sc)
	case KeyGoRight:
		err = p.MoveEast(w, sc)
	case KeyPickUp:
		err = p.PickUpItem(sc)
	case KeyCast:
		err = p.CastSpell(w, sc)
	default:
		return fmt.Errorf("%w: key %d", ErrUnknownEvent, e.Key)
	}
	if err != nil {
		return fmt.Errorf("player %s: %w", p.Id(), err)
	}
	p.advanceCooldown(now)
	return nil
}

// sweepDead removes dead mobiles and players, leaving their belongings in
// the cell where they died.
func (w *World) sweepDead(sc *ScreenChanges) error {
	for _, m := range w.Mobiles() {
		if !m.dead {
			continue
		}
		w.dropAll(m, sc)
		if err := w.removeMobile(m); err != nil {
			return err
		}
		slog.Debug("mobile died", "mobile", m.Id(), "name", m.Name, "location", m.Location())
	}

	for _, p := range w.Players() {
		if !p.dead {
			continue
		}
		w.dropAll(&p.Mobile, sc)
		if err := w.removePlayer(p); err != nil {
			return err
		}
		sc.PlayerDeparted(p)
		slog.Info("player died", "player", p.Id(), "location", p.Location())
	}
	return nil
}

func (w *World) dropAll(m *Mobile, sc *ScreenChanges) {
	cell := m.room.CellAt(m.position)
	for _, item := range m.Inventory.takeAll() {
		cell.Add(item)
	}
	sc.ChangeCell(m.room, m.position)
	sc.AddConsoleTextForRoom(m.room, render(tmplDied, map[string]any{"Name": m.Name}))
}
