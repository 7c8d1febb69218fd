package viewsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pixil98/go-exploratron/internal/game"
	"github.com/pixil98/go-exploratron/internal/protocol"
)

// Outbox delivers messages to clients by id.
type Outbox interface {
	Send(clientId string, msg protocol.Message) error
	Disconnect(clientId string)
}

// Synchronizer turns a tick's ScreenChanges into messages for every client.
// It remembers the last stats sent to each client so that several clients
// watching the same player are de-duplicated independently.
type Synchronizer struct {
	out         Outbox
	lastVisible map[string]protocol.VisibleData
}

func NewSynchronizer(out Outbox) *Synchronizer {
	return &Synchronizer{
		out:         out,
		lastVisible: map[string]protocol.VisibleData{},
	}
}

// Sync sends every client what changed this tick. Delivery failures are
// logged and ignored; an error is returned only for a message that could
// never be sent.
func (s *Synchronizer) Sync(ctx context.Context, w *game.World, sc *game.ScreenChanges) error {
	for _, c := range sc.Rejected() {
		if err := s.dismiss(ctx, c); err != nil {
			return err
		}
	}
	for _, d := range sc.Departures() {
		for _, c := range d.Clients {
			if err := s.dismiss(ctx, c); err != nil {
				return err
			}
		}
	}

	live := map[string]bool{}
	for _, p := range w.Players() {
		for _, c := range p.Clients() {
			live[c.ClientId()] = true
			if err := s.syncClient(ctx, p, c, sc); err != nil {
				return err
			}
		}
	}

	for id := range s.lastVisible {
		if !live[id] {
			delete(s.lastVisible, id)
		}
	}
	return nil
}

func (s *Synchronizer) syncClient(ctx context.Context, p *game.Player, c game.Client, sc *game.ScreenChanges) error {
	room := p.Room()

	if msg := roomMessage(p, c, sc); msg != nil {
		if err := s.send(ctx, c, msg); err != nil {
			return err
		}
	}

	if sounds := sc.RoomSounds(room); len(sounds) > 0 {
		if err := s.send(ctx, c, protocol.PlaySounds{SoundIds: sounds}); err != nil {
			return err
		}
	}
	for _, text := range sc.InfoTexts(p) {
		if err := s.send(ctx, c, protocol.InfoText{Text: text}); err != nil {
			return err
		}
	}
	for _, text := range sc.ConsoleTexts(p) {
		if err := s.send(ctx, c, protocol.ConsoleText{Text: text}); err != nil {
			return err
		}
	}
	if sc.InventoryWanted(p, c) {
		if err := s.send(ctx, c, protocol.Inventory{InventoryData: protocol.InventoryDataOf(&p.Inventory)}); err != nil {
			return err
		}
	}

	vd := protocol.VisibleDataOf(p)
	if last, ok := s.lastVisible[c.ClientId()]; !ok || last != vd {
		if err := s.send(ctx, c, protocol.UpdateVisibleData{VisibleData: vd}); err != nil {
			return err
		}
		s.lastVisible[c.ClientId()] = vd
	}
	return nil
}

// roomMessage picks the one room state message for a client, or nil if its
// view of the room is already current. A new client is welcomed with the
// whole room; after that a room switch beats a whole-room change, which
// beats a list of changed cells.
func roomMessage(p *game.Player, c game.Client, sc *game.ScreenChanges) protocol.Message {
	room := p.Room()
	if sc.Joined(c) {
		return protocol.WelcomeClient{Grid: protocol.GridFromRoom(room)}
	}
	if _, ok := sc.RoomSwitch(p); ok {
		return protocol.NewRoom{Grid: protocol.GridFromRoom(room)}
	}
	everything, cells := sc.RoomChanges(room)
	if everything {
		return protocol.RefreshRoom{Grid: protocol.GridFromRoom(room)}
	}
	if len(cells) > 0 {
		return protocol.UpdateRoom{GridDataChange: protocol.ChangesFromRoom(room, cells)}
	}
	return nil
}

// dismiss tells a client to exit and forgets it.
func (s *Synchronizer) dismiss(ctx context.Context, c game.Client) error {
	err := s.send(ctx, c, protocol.ClientShouldExit{})
	delete(s.lastVisible, c.ClientId())
	s.out.Disconnect(c.ClientId())
	return err
}

func (s *Synchronizer) send(ctx context.Context, c game.Client, msg protocol.Message) error {
	err := s.out.Send(c.ClientId(), msg)
	if err == nil {
		return nil
	}
	if errors.Is(err, protocol.ErrMessageTooLarge) {
		return fmt.Errorf("sending %s to %s: %w", protocol.Name(msg), c.ClientId(), err)
	}
	slog.WarnContext(ctx, "dropping message", "client", c.ClientId(), "message", protocol.Name(msg), "error", err)
	return nil
}
