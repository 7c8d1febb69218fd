package command

import (
	"fmt"
	"net/netip"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-exploratron/internal/transport"
)

const defaultPort = 12000

type ServerConfig struct {
	Host          string `json:"host"`
	Port          int    `json:"port"`
	InboundQueue  int    `json:"inbound_queue"`
	ExitWhenEmpty *bool  `json:"exit_when_empty,omitempty"`
}

func (c *ServerConfig) validate() error {
	el := errors.NewErrorList()

	if c.Host != "" {
		if _, err := netip.ParseAddr(c.Host); err != nil {
			el.Add(fmt.Errorf("server host: %w", err))
		}
	}
	if c.Port < 0 || c.Port > 65535 {
		el.Add(fmt.Errorf("server port must be between 0 and 65535"))
	}
	if c.InboundQueue < 0 {
		el.Add(fmt.Errorf("server inbound_queue must not be negative"))
	}

	return el.Err()
}

func (c *ServerConfig) addr() netip.AddrPort {
	addr := netip.IPv4Unspecified()
	if c.Host != "" {
		addr, _ = netip.ParseAddr(c.Host)
	}
	port := c.Port
	if port == 0 {
		port = defaultPort
	}
	return netip.AddrPortFrom(addr, uint16(port))
}

func (c *ServerConfig) exitWhenEmpty() bool {
	return c.ExitWhenEmpty == nil || *c.ExitWhenEmpty
}

func (c *ServerConfig) buildConnectionManager(mirror transport.Mirror) *transport.ConnectionManager {
	var opts []transport.ManagerOpt
	if c.InboundQueue > 0 {
		opts = append(opts, transport.WithQueueSize(c.InboundQueue))
	}
	if mirror != nil {
		opts = append(opts, transport.WithMirror(mirror))
	}
	return transport.NewConnectionManager(opts...)
}
