package transport

import (
	"net/netip"

	"github.com/google/uuid"
)

// Conn is one remote endpoint attached to a player.
type Conn struct {
	id       string
	addr     netip.AddrPort
	playerId string
}

func newConn(addr netip.AddrPort, playerId string) *Conn {
	return &Conn{
		id:       uuid.New().String(),
		addr:     addr,
		playerId: playerId,
	}
}

// ClientId identifies the connection to the world.
func (c *Conn) ClientId() string { return c.id }

func (c *Conn) Addr() netip.AddrPort { return c.addr }
func (c *Conn) PlayerId() string     { return c.playerId }
