package server

import (
	"encoding/json"
	"time"

	"github.com/lox/bjodds/internal/estimator"
	"github.com/lox/bjodds/internal/strategy"
)

// Message represents the base WebSocket message structure
type Message struct {
	Type      MessageType     `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	RequestID string          `json:"requestId,omitempty"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(messageType MessageType, data interface{}) (*Message, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      messageType,
		Data:      dataBytes,
		Timestamp: time.Now(),
	}, nil
}

// Client → Server Messages

// SelectData sets one selector. An empty card clears it.
type SelectData struct {
	Slot string `json:"slot"`
	Card string `json:"card"`
}

type ViewData struct {
	View string `json:"view"`
}

// Server → Client Messages

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EstimateResponse is the body of GET /api/estimate
type EstimateResponse struct {
	Result         estimator.Result         `json:"result"`
	Recommendation estimator.Recommendation `json:"recommendation"`
	Regime         string                   `json:"regime"`
}

// StrategyResponse is the body of GET /api/strategy
type StrategyResponse struct {
	Headers []string       `json:"headers"`
	Rows    []strategy.Row `json:"rows"`
}
