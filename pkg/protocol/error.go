package protocol

// ErrorCode identifies the type of error.
type ErrorCode uint16

const (
	ErrUnknown        ErrorCode = 0x0000 // Unknown error
	ErrInvalidMessage ErrorCode = 0x0001 // Malformed or undecodable message
	ErrUnknownField   ErrorCode = 0x0002 // No field registered under the id
	ErrTooLarge       ErrorCode = 0x0003 // Message exceeds MaxMessageSize
	ErrServerError    ErrorCode = 0x0100 // Internal server error
)

// String returns the string representation of the error code.
func (ec ErrorCode) String() string {
	switch ec {
	case ErrInvalidMessage:
		return "InvalidMessage"
	case ErrUnknownField:
		return "UnknownField"
	case ErrTooLarge:
		return "TooLarge"
	case ErrServerError:
		return "ServerError"
	default:
		return "Unknown"
	}
}
