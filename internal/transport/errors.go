package transport

import "errors"

var (
	ErrUnknownClient    = errors.New("unknown client")
	ErrNotListening     = errors.New("transport is not listening")
	ErrNotClientMessage = errors.New("not a client message")
)
