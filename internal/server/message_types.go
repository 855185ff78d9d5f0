package server

// MessageType represents a WebSocket message type with type safety
type MessageType string

// WebSocket message type constants
const (
	// Client to server messages
	MessageTypeSelect  MessageType = "select"
	MessageTypeView    MessageType = "view"
	MessageTypeCompute MessageType = "compute"
	MessageTypeReset   MessageType = "reset"

	// Server to client messages
	MessageTypeState MessageType = "state"
	MessageTypeError MessageType = "error"
)

// String returns the string representation of the message type
func (mt MessageType) String() string {
	return string(mt)
}

// Error codes carried in ErrorData
const (
	ErrCodeInvalidMessage = "invalid_message"
	ErrCodeUnknownType    = "unknown_message_type"
	ErrCodeInvalidCard    = "invalid_card"
	ErrCodeInvalidSlot    = "invalid_slot"
	ErrCodeInvalidView    = "invalid_view"
	ErrCodeIncompleteHand = "incomplete_hand"
)
