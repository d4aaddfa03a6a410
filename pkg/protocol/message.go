package protocol

import "fmt"

// MessageType discriminates a Message.
type MessageType string

const (
	TypeSetOptions MessageType = "setOptions"
	TypeListen     MessageType = "listen"
	TypeUnlisten   MessageType = "unlisten"
	TypeEvent      MessageType = "event"
	TypeMount      MessageType = "mount"
	TypeUnmount    MessageType = "unmount"
	TypeError      MessageType = "error"
)

// Message is the envelope for every frame. Only the fields relevant to Type
// are set.
type Message struct {
	Type    MessageType    `json:"t" msgpack:"t"`
	ID      string         `json:"id,omitempty" msgpack:"id,omitempty"`
	Event   string         `json:"event,omitempty" msgpack:"event,omitempty"`
	Options map[string]any `json:"options,omitempty" msgpack:"options,omitempty"`
	Detail  any            `json:"detail,omitempty" msgpack:"detail,omitempty"`
	Code    ErrorCode      `json:"code,omitempty" msgpack:"code,omitempty"`
	Message string         `json:"message,omitempty" msgpack:"message,omitempty"`
}

// SetOptions builds a setOptions message.
func SetOptions(id string, options map[string]any) Message {
	return Message{Type: TypeSetOptions, ID: id, Options: options}
}

// Listen builds a listen message.
func Listen(id, event string) Message {
	return Message{Type: TypeListen, ID: id, Event: event}
}

// Unlisten builds an unlisten message.
func Unlisten(id, event string) Message {
	return Message{Type: TypeUnlisten, ID: id, Event: event}
}

// Event builds an event message.
func Event(id, event string, detail any) Message {
	return Message{Type: TypeEvent, ID: id, Event: event, Detail: detail}
}

// Mount builds a mount message.
func Mount(id string) Message {
	return Message{Type: TypeMount, ID: id}
}

// Unmount builds an unmount message.
func Unmount(id string) Message {
	return Message{Type: TypeUnmount, ID: id}
}

// Error builds an error message.
func Error(code ErrorCode, format string, args ...any) Message {
	return Message{Type: TypeError, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validate checks that the fields required by Type are present.
func (m Message) Validate() error {
	switch m.Type {
	case TypeSetOptions, TypeMount, TypeUnmount:
		if m.ID == "" {
			return fmt.Errorf("protocol: %s message without id", m.Type)
		}
	case TypeListen, TypeUnlisten, TypeEvent:
		if m.ID == "" {
			return fmt.Errorf("protocol: %s message without id", m.Type)
		}
		if m.Event == "" {
			return fmt.Errorf("protocol: %s message without event", m.Type)
		}
	case TypeError:
	default:
		return fmt.Errorf("protocol: unknown message type %q", m.Type)
	}
	return nil
}
