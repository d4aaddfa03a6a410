package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// MaxMessageSize bounds a single encoded message.
const MaxMessageSize = 1 << 20

// Subprotocol names.
const (
	SubprotocolJSON    = "mathfield.json"
	SubprotocolMsgpack = "mathfield.msgpack"
)

// ErrMessageTooLarge is returned when a payload exceeds MaxMessageSize.
var ErrMessageTooLarge = errors.New("protocol: message too large")

// Codec encodes messages for one subprotocol.
type Codec interface {
	// Name is the WebSocket subprotocol.
	Name() string

	// Binary reports whether frames are binary rather than text.
	Binary() bool

	Encode(m Message) ([]byte, error)
	Decode(data []byte) (Message, error)
}

// JSONCodec encodes messages as JSON text.
type JSONCodec struct{}

func (JSONCodec) Name() string { return SubprotocolJSON }
func (JSONCodec) Binary() bool { return false }

func (JSONCodec) Encode(m Message) ([]byte, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode %s: %w", m.Type, err)
	}
	if len(data) > MaxMessageSize {
		return nil, ErrMessageTooLarge
	}
	return data, nil
}

func (JSONCodec) Decode(data []byte) (Message, error) {
	if len(data) > MaxMessageSize {
		return Message{}, ErrMessageTooLarge
	}
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("protocol: decode: %w", err)
	}
	return m, m.Validate()
}

// MsgpackCodec encodes messages as MessagePack.
type MsgpackCodec struct{}

func (MsgpackCodec) Name() string { return SubprotocolMsgpack }
func (MsgpackCodec) Binary() bool { return true }

func (MsgpackCodec) Encode(m Message) ([]byte, error) {
	data, err := msgpack.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("protocol: encode %s: %w", m.Type, err)
	}
	if len(data) > MaxMessageSize {
		return nil, ErrMessageTooLarge
	}
	return data, nil
}

func (MsgpackCodec) Decode(data []byte) (Message, error) {
	if len(data) > MaxMessageSize {
		return Message{}, ErrMessageTooLarge
	}
	var m Message
	if err := msgpack.Unmarshal(data, &m); err != nil {
		return Message{}, fmt.Errorf("protocol: decode: %w", err)
	}
	return m, m.Validate()
}

var codecs = []Codec{JSONCodec{}, MsgpackCodec{}}

// Subprotocols lists the supported subprotocols in preference order.
func Subprotocols() []string {
	out := make([]string, len(codecs))
	for i, c := range codecs {
		out[i] = c.Name()
	}
	return out
}

// Lookup returns the codec for a subprotocol name.
func Lookup(name string) (Codec, bool) {
	for _, c := range codecs {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Negotiate returns the codec for the first recognized name, or JSONCodec
// when none is recognized.
func Negotiate(names ...string) Codec {
	for _, n := range names {
		if c, ok := Lookup(n); ok {
			return c
		}
	}
	return JSONCodec{}
}
