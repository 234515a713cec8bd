package websocket

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512 * 1024 // 512KB for audio uploads

	// HistoryWindow is how many turns prompt construction looks back.
	HistoryWindow = 5
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Turn is one user/assistant exchange in a session's history.
type Turn struct {
	User      string    `json:"user"`
	Assistant string    `json:"assistant"`
	Timestamp time.Time `json:"timestamp"`
}

// Hub is the session registry: the set of live connections and, per
// connection, a session id and conversation history. Sessions are created on
// connect and destroyed on disconnect; they are never shared.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Client

	logger *zap.Logger
}

// NewHub creates an empty session registry
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		sessions: make(map[string]*Client),
		logger:   logger,
	}
}

// OpenSession allocates a fresh session for conn, registers it and sends the
// welcome notice. It never fails.
func (h *Hub) OpenSession(conn *websocket.Conn, remoteAddr string) *Client {
	client := &Client{
		hub:        h,
		conn:       conn,
		send:       make(chan []byte, 256),
		sessionID:  uuid.NewString(),
		remoteAddr: remoteAddr,
		logger:     h.logger,
	}

	h.mu.Lock()
	h.sessions[client.sessionID] = client
	total := len(h.sessions)
	h.mu.Unlock()

	client.Enqueue(encodeFrame(CreateWelcomeMessage(client.sessionID)))

	h.logger.Info("Client connected",
		zap.String("sessionID", client.sessionID),
		zap.Int("totalClients", total))

	return client
}

// CloseSession removes the session and discards its history. Closing an
// unknown or already-closed id is a no-op.
func (h *Hub) CloseSession(sessionID string) {
	h.mu.Lock()
	client, ok := h.sessions[sessionID]
	if ok {
		delete(h.sessions, sessionID)
	}
	total := len(h.sessions)
	h.mu.Unlock()

	if !ok {
		return
	}

	client.close()
	h.logger.Info("Client disconnected",
		zap.String("sessionID", sessionID),
		zap.Int("totalClients", total))
}

// AppendTurn records one exchange in the session's history. If the session
// raced with a disconnect the append is silently dropped.
func (h *Hub) AppendTurn(sessionID, userText, assistantText string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	client, ok := h.sessions[sessionID]
	if !ok {
		return
	}
	client.history = append(client.history, Turn{
		User:      userText,
		Assistant: assistantText,
		Timestamp: time.Now(),
	})
}

// RecentHistory returns a copy of the last window turns, or fewer if the
// history is shorter. The stored history is never mutated.
func (h *Hub) RecentHistory(sessionID string, window int) []Turn {
	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.sessions[sessionID]
	if !ok {
		return nil
	}
	history := client.history
	if len(history) > window {
		history = history[len(history)-window:]
	}
	out := make([]Turn, len(history))
	copy(out, history)
	return out
}

// SessionCount returns how many sessions are live.
func (h *Hub) SessionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Client is one connected session: the connection handle, the outbound
// queue and the conversation history owned by the registry entry.
type Client struct {
	hub        *Hub
	conn       *websocket.Conn
	send       chan []byte
	sessionID  string
	remoteAddr string
	logger     *zap.Logger

	// history is guarded by hub.mu
	history []Turn

	// closeMu guards closed so Enqueue never races a channel close
	closeMu sync.Mutex
	closed  bool
}

// SessionID returns the session's opaque id.
func (c *Client) SessionID() string {
	return c.sessionID
}

// RemoteAddr returns the client's reported address for activity records.
func (c *Client) RemoteAddr() string {
	return c.remoteAddr
}

// Enqueue queues an outbound frame. After disconnect it becomes a no-op, so
// handlers that finish late simply drop their reply. Returns whether the
// frame was accepted.
func (c *Client) Enqueue(payload []byte) bool {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()

	if c.closed {
		return false
	}
	select {
	case c.send <- payload:
		return true
	default:
		c.logger.Warn("Dropping frame for slow client",
			zap.String("sessionID", c.sessionID))
		return false
	}
}

func (c *Client) close() {
	c.closeMu.Lock()
	defer c.closeMu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// frameHandler processes one inbound frame; implemented by the Router.
type frameHandler interface {
	HandleFrame(client *Client, raw []byte)
}

// readPump pumps frames from the connection into the handler. Frames from
// one session are processed strictly in arrival order because this loop is
// the only reader.
func (c *Client) readPump(handler frameHandler) {
	defer func() {
		c.hub.CloseSession(c.sessionID)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		messageType, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Error("WebSocket error", zap.Error(err))
			}
			break
		}

		switch messageType {
		case websocket.TextMessage:
			handler.HandleFrame(c, message)
		default:
			c.logger.Warn("Ignoring non-text frame",
				zap.String("sessionID", c.sessionID),
				zap.Int("type", messageType))
		}
	}
}

// writePump pumps queued frames to the connection and keeps the peer alive
// with pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.logger.Error("Failed to write message", zap.Error(err))
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
