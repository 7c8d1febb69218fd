package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// MaxPacketSize is the largest datagram either side will send.
const MaxPacketSize = 4096

type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type validator interface {
	validate() error
}

type decodeFunc func(data json.RawMessage) (Message, error)

var decoders = map[string]decodeFunc{}

func init() {
	register[JoinServer]()
	register[KeyPressed]()
	register[RequestInventory]()
	register[DropItem]()
	register[Equip]()
	register[ClientDisconnecting]()
	register[WelcomeClient]()
	register[NewRoom]()
	register[RefreshRoom]()
	register[UpdateRoom]()
	register[PlaySounds]()
	register[UpdateVisibleData]()
	register[Inventory]()
	register[InfoText]()
	register[ConsoleText]()
	register[ClientShouldExit]()
}

func register[T Message]() {
	var zero T
	decoders[Name(zero)] = func(data json.RawMessage) (Message, error) {
		var m T
		data = bytes.TrimSpace(data)
		if len(data) > 0 && !bytes.Equal(data, []byte("null")) {
			if err := json.Unmarshal(data, &m); err != nil {
				return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, Name(zero), err)
			}
		}
		return m, nil
	}
}

// Name is the wire name of a message, which is its type name.
func Name(m Message) string {
	return reflect.TypeOf(m).Name()
}

// Encode serializes a message. Messages that would not fit in one packet
// return ErrMessageTooLarge; they are never truncated.
func Encode(m Message) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", Name(m), err)
	}
	b, err := json.Marshal(envelope{Message: Name(m), Data: data})
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", Name(m), err)
	}
	if len(b) > MaxPacketSize {
		return nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrMessageTooLarge, Name(m), len(b), MaxPacketSize)
	}
	return b, nil
}

// Decode parses and validates one datagram.
func Decode(b []byte) (Message, error) {
	if len(b) > MaxPacketSize {
		return nil, fmt.Errorf("%w: %d bytes, limit %d", ErrMessageTooLarge, len(b), MaxPacketSize)
	}
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	decode, ok := decoders[env.Message]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMessage, env.Message)
	}
	m, err := decode(env.Data)
	if err != nil {
		return nil, err
	}
	if v, ok := m.(validator); ok {
		if err := v.validate(); err != nil {
			return nil, err
		}
	}
	return m, nil
}
