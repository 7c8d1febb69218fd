package protocol

import "errors"

var (
	ErrMessageTooLarge = errors.New("message exceeds packet size")
	ErrUnknownMessage  = errors.New("unknown message")
	ErrMalformed       = errors.New("malformed message")
	ErrInvalidMessage  = errors.New("invalid message")
	ErrOutOfBounds     = errors.New("cell out of bounds")
)
