package handlers

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/shaj13/go-guardian/auth"
	"go.uber.org/zap"
)

// Events pushed to connected dashboards
const (
	EventAnnouncementCreated = "announcement.created"
	EventAnnouncementUpdated = "announcement.updated"
	EventAnnouncementDeleted = "announcement.deleted"
	EventReadChanged         = "read.changed"
)

const writeWait = 10 * time.Second

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Event is the envelope every websocket message uses
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// sendBuffer is how many events a connection may have queued before it is
// treated as stalled and dropped
const sendBuffer = 32

// client owns one websocket. Only writePump writes to conn.
type client struct {
	conn *websocket.Conn
	send chan Event
	done chan struct{}
	once sync.Once
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn: conn,
		send: make(chan Event, sendBuffer),
		done: make(chan struct{}),
	}
}

// enqueue never blocks; false means the client is closed or its buffer is full
func (c *client) enqueue(e Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- e:
		return true
	default:
		return false
	}
}

func (c *client) close() {
	c.once.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}

func (c *client) writePump(userID string) {
	for {
		select {
		case <-c.done:
			return
		case e := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(e); err != nil {
				zap.S().Warnw("websocket write failed", "userId", userID, "event", e.Event, "error", err)
				c.close()
				return
			}
		}
	}
}

// Hub tracks open websocket connections per user. A user may hold one
// connection per device.
type Hub struct {
	// Authenticate resolves the ?token= query parameter into a user
	Authenticate func(r *http.Request, token string) (auth.Info, error)

	mu      sync.Mutex
	clients map[string]map[*client]struct{}
}

// NewHub returns an empty hub
func NewHub(authenticate func(r *http.Request, token string) (auth.Info, error)) *Hub {
	return &Hub{
		Authenticate: authenticate,
		clients:      make(map[string]map[*client]struct{}),
	}
}

// ServeWS upgrades the request and keeps the connection registered until it closes
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" || h.Authenticate == nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "unauthorized"}`))
		return
	}
	info, err := h.Authenticate(r, token)
	if err != nil {
		zap.S().Debugw("websocket auth failed", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "unauthorized"}`))
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade error", "error", err)
		return
	}

	userID := info.ID()
	c := newClient(conn)
	h.add(userID, c)
	go c.writePump(userID)
	zap.S().Infow("websocket connected", "userId", userID)

	// drain reads so close frames and pings are processed
	for {
		if _, _, err := conn.NextReader(); err != nil {
			break
		}
	}
	h.remove(userID, c)
	c.close()
	zap.S().Infow("websocket disconnected", "userId", userID)
}

func (h *Hub) add(userID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*client]struct{})
	}
	h.clients[userID][c] = struct{}{}
}

func (h *Hub) remove(userID string, c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients[userID], c)
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}

// Connected reports how many connections userID currently holds
func (h *Hub) Connected(userID string) int {
	if h == nil {
		return 0
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[userID])
}

func (h *Hub) snapshot(userID string) map[string][]*client {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[string][]*client)
	for id, set := range h.clients {
		if userID != "" && id != userID {
			continue
		}
		for c := range set {
			out[id] = append(out[id], c)
		}
	}
	return out
}

// deliver queues e for each target without waiting on any socket
func (h *Hub) deliver(targets map[string][]*client, e Event) {
	for id, clients := range targets {
		for _, c := range clients {
			if !c.enqueue(e) {
				zap.S().Warnw("dropping stalled websocket client", "userId", id, "event", e.Event)
				h.remove(id, c)
				c.close()
			}
		}
	}
}

// Broadcast sends an event to every connected user
func (h *Hub) Broadcast(event string, data interface{}) {
	if h == nil {
		return
	}
	h.deliver(h.snapshot(""), Event{Event: event, Data: data})
}

// SendToUser sends an event to each of userID's connections
func (h *Hub) SendToUser(userID, event string, data interface{}) {
	if h == nil || userID == "" {
		return
	}
	h.deliver(h.snapshot(userID), Event{Event: event, Data: data})
}
