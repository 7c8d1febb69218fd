package messaging

import "time"

const (
	DefaultHost         = "127.0.0.1"
	DefaultPort         = 4222
	DefaultStartTimeout = 10 * time.Second
)

// NatsServerOpt adjusts the spectator bus before it is created.
type NatsServerOpt func(*NatsServer)

// WithListen sets where spectators connect. Port -1 picks a free port,
// which ClientURL reports once the server is created.
func WithListen(host string, port int) NatsServerOpt {
	return func(n *NatsServer) {
		n.opts.Host = host
		n.opts.Port = port
	}
}

// WithStartTimeout bounds how long Start waits for the bus to accept
// connections.
func WithStartTimeout(d time.Duration) NatsServerOpt {
	return func(n *NatsServer) {
		n.startupTimeout = d
	}
}

// WithMaxPayload caps one published message. The default is the largest
// datagram a player can be sent.
func WithMaxPayload(bytes int32) NatsServerOpt {
	return func(n *NatsServer) {
		n.opts.MaxPayload = bytes
	}
}
