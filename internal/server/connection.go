package server

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/lox/bjodds/internal/card"
	"github.com/lox/bjodds/internal/estimator"
	"github.com/lox/bjodds/internal/session"
)

// Connection represents a WebSocket connection to one live form. Each
// connection owns its own session state.
type Connection struct {
	conn      *websocket.Conn
	send      chan *Message
	state     *session.State
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection creates a new connection wrapper
func NewConnection(conn *websocket.Conn, logger *log.Logger, opts ...session.Option) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	c := &Connection{
		conn:   conn,
		send:   make(chan *Message, 256),
		logger: logger.WithPrefix("conn"),
		ctx:    ctx,
		cancel: cancel,
	}
	opts = append(opts,
		session.WithLogger(logger),
		session.WithPulseEnd(c.sendState),
	)
	c.state = session.New(opts...)
	return c
}

// Start begins handling the connection and sends the initial form state
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
	c.sendState()
}

// Done is closed once the connection has shut down
func (c *Connection) Done() <-chan struct{} {
	return c.ctx.Done()
}

// Close closes the connection
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		c.state.Close()
		close(c.send)
		err = c.conn.Close()
	})
	return err
}

// SendMessage sends a message to the client
func (c *Connection) SendMessage(msg *Message) error {
	defer func() {
		if r := recover(); r != nil {
			// Channel was closed, this is expected during shutdown
			c.logger.Debug("Attempted to send message on closed connection", "error", r)
		}
	}()

	select {
	case c.send <- msg:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	default:
		c.logger.Warn("Connection send buffer full, closing connection")
		_ = c.Close() // Ignore close errors
		return ErrConnectionClosed
	}
}

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 4096
)

var (
	ErrConnectionClosed = websocket.ErrCloseSent
)

// readPump handles incoming messages from the client
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }() // Ignore close errors during cleanup

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		var msg Message
		err := c.conn.ReadJSON(&msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", "error", err)
			}
			break
		}

		c.handleMessage(&msg)
	}
}

// writePump handles outgoing messages to the client
func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close() // Ignore close errors during cleanup
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Error("Failed to write message", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// handleMessage processes incoming messages from the client
func (c *Connection) handleMessage(msg *Message) {
	c.logger.Debug("Received message", "type", msg.Type)

	switch msg.Type {
	case MessageTypeSelect:
		var data SelectData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg, ErrCodeInvalidMessage, "Failed to parse select data")
			return
		}
		c.handleSelect(msg, data)

	case MessageTypeView:
		var data ViewData
		if err := json.Unmarshal(msg.Data, &data); err != nil {
			c.sendError(msg, ErrCodeInvalidMessage, "Failed to parse view data")
			return
		}
		view, err := session.ParseView(data.View)
		if err != nil {
			c.sendError(msg, ErrCodeInvalidView, err.Error())
			return
		}
		c.state.SetView(view)
		c.reply(msg)

	case MessageTypeCompute:
		c.handleCompute(msg)

	case MessageTypeReset:
		c.state.Reset()
		c.reply(msg)

	default:
		c.sendError(msg, ErrCodeUnknownType, "Unknown message type: "+msg.Type.String())
	}
}

func (c *Connection) handleSelect(msg *Message, data SelectData) {
	slot, err := session.ParseSlot(data.Slot)
	if err != nil {
		c.sendError(msg, ErrCodeInvalidSlot, err.Error())
		return
	}

	sym, err := card.Parse(data.Card)
	if err != nil && !errors.Is(err, card.ErrNoCard) {
		c.sendError(msg, ErrCodeInvalidCard, err.Error())
		return
	}

	if err := c.state.Select(slot, sym); err != nil {
		c.sendError(msg, ErrCodeInvalidCard, err.Error())
		return
	}
	c.reply(msg)
}

func (c *Connection) handleCompute(msg *Message) {
	res, err := c.state.Compute()
	if errors.Is(err, estimator.ErrIncompleteHand) {
		c.sendError(msg, ErrCodeIncompleteHand, err.Error())
		return
	}
	if err != nil {
		c.sendError(msg, ErrCodeInvalidCard, err.Error())
		return
	}

	c.logger.Info("Computed estimate",
		"total", res.PlayerTotal,
		"dealer", res.DealerUpcard,
		"recommendation", estimator.Recommend(res).Action)
	c.reply(msg)
}

// reply sends the current state tagged with the request's id
func (c *Connection) reply(req *Message) {
	msg, err := NewMessage(MessageTypeState, c.state.Snapshot())
	if err != nil {
		c.logger.Error("Failed to create state message", "error", err)
		return
	}
	msg.RequestID = req.RequestID
	_ = c.SendMessage(msg) // Ignore send errors
}

// sendState pushes the current state without a request id
func (c *Connection) sendState() {
	c.reply(&Message{})
}

// sendError sends an error message to the client
func (c *Connection) sendError(req *Message, code, message string) {
	errorMsg, err := NewMessage(MessageTypeError, ErrorData{
		Code:    code,
		Message: message,
	})
	if err != nil {
		c.logger.Error("Failed to create error message", "error", err)
		return
	}
	errorMsg.RequestID = req.RequestID

	_ = c.SendMessage(errorMsg) // Ignore send errors during error handling
}
