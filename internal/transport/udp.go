package transport

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"slices"

	"github.com/pixil98/go-exploratron/internal/protocol"
)

type UDPListener struct {
	addr netip.AddrPort
	cm   *ConnectionManager
}

func NewUDPListener(addr netip.AddrPort, cm *ConnectionManager) *UDPListener {
	return &UDPListener{
		addr: addr,
		cm:   cm,
	}
}

// Start reads datagrams until ctx is canceled. Before the socket closes
// every client is told to exit.
func (l *UDPListener) Start(ctx context.Context) error {
	conn, err := net.ListenUDP("udp", net.UDPAddrFromAddrPort(l.addr))
	if err != nil {
		return fmt.Errorf("listening on %s: %w", l.addr, err)
	}
	l.cm.attach(conn)

	slog.InfoContext(ctx, "listening for datagrams", "addr", conn.LocalAddr())

	// Close the socket when the parent context is canceled
	go func() {
		<-ctx.Done()
		l.cm.Shutdown(ctx)
		conn.Close()
	}()

	// One extra byte so oversized datagrams are seen as oversized.
	buf := make([]byte, protocol.MaxPacketSize+1)
	for {
		n, addr, err := conn.ReadFromUDPAddrPort(buf)
		if err != nil {
			// Check if shutdown was requested
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			slog.ErrorContext(ctx, "reading datagram", "error", err)
			continue
		}
		l.cm.HandleDatagram(ctx, addr, slices.Clone(buf[:n]))
	}
}
