package command

import (
	"fmt"
	"net/netip"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-exploratron/internal/messaging"
)

// NatsConfig turns on the spectator bus. Every datagram sent to a player is
// republished there for viewers started with -spectate.
type NatsConfig struct {
	Enabled      bool   `json:"enabled"`
	Host         string `json:"host"`
	Port         int    `json:"port"`
	StartTimeout string `json:"start_timeout"`
}

func (n *NatsConfig) validate() error {
	el := errors.NewErrorList()

	if n.Host != "" {
		if _, err := netip.ParseAddr(n.Host); err != nil {
			el.Add(fmt.Errorf("nats host: %w", err))
		}
	}
	if n.Port < -1 || n.Port > 65535 {
		el.Add(fmt.Errorf("nats port must be between -1 and 65535"))
	}
	if _, err := n.startTimeout(); err != nil {
		el.Add(err)
	}

	return el.Err()
}

func (n *NatsConfig) startTimeout() (time.Duration, error) {
	if n.StartTimeout == "" {
		return messaging.DefaultStartTimeout, nil
	}
	d, err := time.ParseDuration(n.StartTimeout)
	if err != nil {
		return 0, fmt.Errorf("parsing start_timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("start_timeout must be positive")
	}
	return d, nil
}

// listen returns where spectators connect. Port 0 means the default port.
func (n *NatsConfig) listen() (string, int) {
	host, port := messaging.DefaultHost, messaging.DefaultPort
	if n.Host != "" {
		host = n.Host
	}
	if n.Port != 0 {
		port = n.Port
	}
	return host, port
}

func (n *NatsConfig) buildNatsServer() (*messaging.NatsServer, error) {
	timeout, err := n.startTimeout()
	if err != nil {
		return nil, err
	}
	host, port := n.listen()
	return messaging.NewNatsServer(
		messaging.WithListen(host, port),
		messaging.WithStartTimeout(timeout),
	)
}
