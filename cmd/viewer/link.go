package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"

	"github.com/nats-io/nats.go"
	"github.com/pixil98/go-exploratron/internal/messaging"
	"github.com/pixil98/go-exploratron/internal/protocol"
)

// link carries messages between the viewer and the server.
type link interface {
	Send(msg protocol.Message) error
	Close() error
}

// udpLink plays as a client over the game's datagram protocol.
type udpLink struct {
	conn *net.UDPConn
}

func dialUDP(ctx context.Context, server string, inbound chan<- protocol.Message) (*udpLink, error) {
	addr, err := net.ResolveUDPAddr("udp", server)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", server, err)
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", server, err)
	}

	go readDatagrams(ctx, conn, inbound)

	return &udpLink{conn: conn}, nil
}

// readDatagrams decodes server datagrams into inbound until the socket is
// closed or ctx is done. Other read errors, such as a refused port before
// the server is up, are transient.
func readDatagrams(ctx context.Context, r io.Reader, inbound chan<- protocol.Message) {
	buf := make([]byte, protocol.MaxPacketSize+1)
	for {
		n, err := r.Read(buf)
		if errors.Is(err, net.ErrClosed) || ctx.Err() != nil {
			return
		}
		if err != nil {
			slog.Debug("reading from server", "error", err)
			continue
		}
		msg, err := protocol.Decode(buf[:n])
		if err != nil {
			slog.Warn("bad datagram from server", "error", err)
			continue
		}
		select {
		case inbound <- msg:
		case <-ctx.Done():
			return
		}
	}
}

func (l *udpLink) Send(msg protocol.Message) error {
	b, err := protocol.Encode(msg)
	if err != nil {
		return err
	}
	_, err = l.conn.Write(b)
	return err
}

func (l *udpLink) Close() error {
	return l.conn.Close()
}

// natsTap watches a player's mirrored datagrams without joining. It cannot
// send.
type natsTap struct {
	conn *nats.Conn
	sub  *nats.Subscription
}

func tapNats(ctx context.Context, url, playerId string, inbound chan<- protocol.Message) (*natsTap, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", url, err)
	}

	sub, err := conn.Subscribe(messaging.PlayerSubject(playerId), func(m *nats.Msg) {
		msg, err := protocol.Decode(m.Data)
		if err != nil {
			slog.Warn("bad mirrored datagram", "error", err)
			return
		}
		select {
		case inbound <- msg:
		case <-ctx.Done():
		}
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("subscribing: %w", err)
	}

	return &natsTap{conn: conn, sub: sub}, nil
}

func (t *natsTap) Send(protocol.Message) error {
	return nil
}

func (t *natsTap) Close() error {
	_ = t.sub.Unsubscribe()
	t.conn.Close()
	return nil
}
