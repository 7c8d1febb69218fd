package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net/netip"
	"sync"
	"sync/atomic"

	"github.com/pixil98/go-exploratron/internal/game"
	"github.com/pixil98/go-exploratron/internal/protocol"
)

const DefaultQueueSize = 1024

// PacketWriter sends one datagram.
type PacketWriter interface {
	WriteToUDPAddrPort(b []byte, addr netip.AddrPort) (int, error)
}

// Mirror receives a copy of every datagram sent to a player.
type Mirror interface {
	Mirror(playerId string, data []byte) error
}

// ConnectionManager maps remote endpoints to connections and turns inbound
// datagrams into game events. Datagrams arrive on the listener goroutine;
// the game loop drains the events and sends replies.
type ConnectionManager struct {
	mu     sync.Mutex
	byAddr map[netip.AddrPort]*Conn
	byId   map[string]*Conn
	writer PacketWriter
	mirror Mirror

	events   chan game.Event
	rejected atomic.Int64
}

// ManagerOpt is a functional option for configuring a ConnectionManager.
type ManagerOpt func(*ConnectionManager)

// WithQueueSize sets how many inbound events may wait for the game loop.
func WithQueueSize(n int) ManagerOpt {
	return func(m *ConnectionManager) {
		m.events = make(chan game.Event, n)
	}
}

// WithMirror copies outbound datagrams to m.
func WithMirror(mirror Mirror) ManagerOpt {
	return func(m *ConnectionManager) {
		m.mirror = mirror
	}
}

func NewConnectionManager(opts ...ManagerOpt) *ConnectionManager {
	m := &ConnectionManager{
		byAddr: map[netip.AddrPort]*Conn{},
		byId:   map[string]*Conn{},
		events: make(chan game.Event, DefaultQueueSize),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// attach sets the socket replies are written to.
func (m *ConnectionManager) attach(w PacketWriter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writer = w
}

// HandleDatagram processes one inbound datagram. Input that cannot be
// understood is logged and dropped.
func (m *ConnectionManager) HandleDatagram(ctx context.Context, addr netip.AddrPort, b []byte) {
	msg, err := protocol.Decode(b)
	if err != nil {
		m.reject(ctx, addr, "error", err)
		return
	}

	if join, ok := msg.(protocol.JoinServer); ok {
		m.join(ctx, addr, join.PlayerId)
		return
	}

	m.mu.Lock()
	conn := m.byAddr[addr]
	m.mu.Unlock()
	if conn == nil {
		m.reject(ctx, addr, "message", protocol.Name(msg), "error", ErrUnknownClient)
		return
	}

	switch msg := msg.(type) {
	case protocol.KeyPressed:
		m.enqueue(ctx, game.KeyPressed{PlayerId: conn.playerId, Key: msg.KeyCode})
	case protocol.RequestInventory:
		m.enqueue(ctx, game.RequestInventory{PlayerId: conn.playerId, Client: conn})
	case protocol.DropItem:
		m.enqueue(ctx, game.DropItem{PlayerId: conn.playerId, ItemId: msg.ItemUniqueId})
	case protocol.Equip:
		m.enqueue(ctx, game.EquipItem{PlayerId: conn.playerId, Slot: msg.EquipmentTypeCode, ItemId: msg.ItemUniqueId})
	case protocol.ClientDisconnecting:
		m.forget(conn)
		slog.InfoContext(ctx, "client disconnecting", "remote", addr, "player", conn.playerId)
		m.enqueue(ctx, game.ClientLeft{PlayerId: conn.playerId, Client: conn})
	default:
		m.reject(ctx, addr, "message", protocol.Name(msg), "error", ErrNotClientMessage)
	}
}

func (m *ConnectionManager) reject(ctx context.Context, addr netip.AddrPort, attrs ...any) {
	m.rejected.Add(1)
	slog.WarnContext(ctx, "rejected datagram", append([]any{"remote", addr}, attrs...)...)
}

// Rejected returns how many datagrams have been dropped as unusable.
func (m *ConnectionManager) Rejected() int64 {
	return m.rejected.Load()
}

func (m *ConnectionManager) join(ctx context.Context, addr netip.AddrPort, playerId string) {
	m.mu.Lock()
	if existing, ok := m.byAddr[addr]; ok {
		m.mu.Unlock()
		slog.WarnContext(ctx, "ignoring repeated join", "remote", addr, "player", existing.playerId)
		return
	}
	conn := newConn(addr, playerId)
	m.byAddr[addr] = conn
	m.byId[conn.id] = conn
	m.mu.Unlock()

	// A join the game never sees must not leave the endpoint registered.
	if !m.enqueue(ctx, game.PlayerJoined{PlayerId: playerId, Client: conn}) {
		m.forget(conn)
		return
	}
	slog.InfoContext(ctx, "client joining", "remote", addr, "player", playerId, "client", conn.id)
}

// enqueue hands e to the game loop. It reports false when the queue is full
// and e was dropped.
func (m *ConnectionManager) enqueue(ctx context.Context, e game.Event) bool {
	select {
	case m.events <- e:
		return true
	default:
		slog.WarnContext(ctx, "inbound queue full, dropping event", "event", fmt.Sprintf("%T", e))
		return false
	}
}

// Drain moves every waiting event into list without blocking and returns
// how many there were.
func (m *ConnectionManager) Drain(list *game.EventList) int {
	n := 0
	for {
		select {
		case e := <-m.events:
			list.Add(e)
			n++
		default:
			return n
		}
	}
}

// Send encodes msg and writes it to the client. A message too large for one
// packet returns protocol.ErrMessageTooLarge.
func (m *ConnectionManager) Send(clientId string, msg protocol.Message) error {
	b, err := protocol.Encode(msg)
	if err != nil {
		return err
	}

	m.mu.Lock()
	conn := m.byId[clientId]
	w := m.writer
	m.mu.Unlock()
	if conn == nil {
		return fmt.Errorf("%w: %s", ErrUnknownClient, clientId)
	}
	return m.write(conn, w, b)
}

func (m *ConnectionManager) write(conn *Conn, w PacketWriter, b []byte) error {
	if w == nil {
		return ErrNotListening
	}
	if _, err := w.WriteToUDPAddrPort(b, conn.addr); err != nil {
		return fmt.Errorf("writing to %s: %w", conn.addr, err)
	}
	if m.mirror != nil {
		if err := m.mirror.Mirror(conn.playerId, b); err != nil {
			slog.Debug("mirroring datagram", "player", conn.playerId, "error", err)
		}
	}
	return nil
}

// Disconnect forgets a client. Later datagrams from its endpoint are
// rejected until it joins again.
func (m *ConnectionManager) Disconnect(clientId string) {
	m.mu.Lock()
	conn := m.byId[clientId]
	m.mu.Unlock()
	if conn != nil {
		m.forget(conn)
	}
}

func (m *ConnectionManager) forget(conn *Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byAddr, conn.addr)
	delete(m.byId, conn.id)
}

// Len returns the number of connected clients.
func (m *ConnectionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byId)
}

// Shutdown tells every client to exit and forgets them all.
func (m *ConnectionManager) Shutdown(ctx context.Context) {
	b, err := protocol.Encode(protocol.ClientShouldExit{})
	if err != nil {
		slog.ErrorContext(ctx, "encoding exit message", "error", err)
		return
	}

	m.mu.Lock()
	conns := make([]*Conn, 0, len(m.byId))
	for _, c := range m.byId {
		conns = append(conns, c)
	}
	w := m.writer
	clear(m.byAddr)
	clear(m.byId)
	m.mu.Unlock()

	for _, c := range conns {
		if err := m.write(c, w, b); err != nil {
			slog.WarnContext(ctx, "sending exit", "remote", c.addr, "error", err)
		}
	}
	slog.InfoContext(ctx, "told clients to exit", "count", len(conns))
}
