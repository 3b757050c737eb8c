package websocket

import (
	"context"
	"time"

	"inbox-srv/pkg/log"

	"github.com/gorilla/websocket"
)

// Connection represents a WebSocket connection for a user session.
type Connection struct {
	// Hub reference
	hub *Hub

	// WebSocket connection
	conn *websocket.Conn

	// Session binding from the verified JWT
	userID string
	role   string

	// Buffered channel of outbound messages
	send chan []byte

	// Configuration
	pongWait       time.Duration
	pingPeriod     time.Duration
	writeWait      time.Duration
	maxMessageSize int64

	// Logger
	logger log.Logger

	// Done signal
	done chan struct{}
}

// NewConnection creates a new Connection instance.
func NewConnection(
	hub *Hub,
	conn *websocket.Conn,
	userID string,
	role string,
	cfg ConnConfig,
	logger log.Logger,
) *Connection {
	return &Connection{
		hub:            hub,
		conn:           conn,
		userID:         userID,
		role:           role,
		send:           make(chan []byte, 256),
		pongWait:       cfg.PongWait,
		pingPeriod:     cfg.PingPeriod,
		writeWait:      cfg.WriteWait,
		maxMessageSize: cfg.MaxMessageSize,
		logger:         logger,
		done:           make(chan struct{}),
	}
}

// ConnConfig holds per-connection timing configuration.
type ConnConfig struct {
	PongWait       time.Duration
	PingPeriod     time.Duration
	WriteWait      time.Duration
	MaxMessageSize int64
}

// readPump pumps control messages from the WebSocket connection.
//
// The application runs readPump in a per-connection goroutine. The application
// ensures that there is at most one reader on a connection by executing all
// reads from this goroutine.
func (c *Connection) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
		return nil
	})
	c.conn.SetReadLimit(c.maxMessageSize)

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Errorf(context.Background(), "WebSocket read error for user %s: %v", c.userID, err)
			}
			break
		}

		// This channel is push-only: client messages are ignored, but the
		// read pump keeps running to observe pongs and disconnects.
		c.logger.Debugf(context.Background(), "Ignoring message from user %s: %s", c.userID, string(message))
	}
}

// writePump pumps messages from the hub to the WebSocket connection.
//
// A goroutine running writePump is started for each connection. The
// application ensures that there is at most one writer to a connection by
// executing all writes from this goroutine.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeWait))

			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}

// Start starts the connection's read and write pumps.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection.
func (c *Connection) Close() {
	select {
	case <-c.done:
		// Already closed
		return
	default:
		close(c.done)
		if c.conn != nil {
			c.conn.Close()
		}
	}
}
