package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"equiptrack/internal/authz"
	"equiptrack/internal/domain"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	maxMsgSize = 512
)

const (
	EventRequestSubmitted     = "request.submitted"
	EventRequestStatusChanged = "request.status_changed"
	EventEquipmentChanged     = "equipment.changed"
	EventEquipmentDeleted     = "equipment.deleted"
)

// Event is a real-time event pushed to clients
type Event struct {
	Type    string      `json:"type"`
	At      time.Time   `json:"at"`
	Payload interface{} `json:"payload,omitempty"`
}

type StatusChange struct {
	Request domain.EquipmentRequest `json:"request"`
	From    domain.RequestStatus    `json:"from"`
}

// client is a single WebSocket connection; one user may hold several.
type client struct {
	actor domain.Actor
	conn  *websocket.Conn
	send  chan []byte
}

// Hub fans lifecycle events out to connected clients. Request events only reach
// clients allowed to view the request.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	log     *zap.Logger
	now     func() time.Time
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		clients: make(map[*client]struct{}),
		log:     log,
		now:     time.Now,
	}
}

func (h *Hub) NotifyRequestSubmitted(ctx context.Context, req domain.EquipmentRequest) {
	h.publish(Event{Type: EventRequestSubmitted, Payload: req}, func(a domain.Actor) bool {
		return authz.CanViewRequest(a, req)
	})
}

func (h *Hub) NotifyRequestStatusChanged(ctx context.Context, req domain.EquipmentRequest, from domain.RequestStatus) {
	h.publish(Event{Type: EventRequestStatusChanged, Payload: StatusChange{Request: req, From: from}}, func(a domain.Actor) bool {
		return authz.CanViewRequest(a, req)
	})
}

func (h *Hub) NotifyEquipmentChanged(ctx context.Context, eq domain.Equipment, deleted bool) {
	ev := Event{Type: EventEquipmentChanged, Payload: eq}
	if deleted {
		ev.Type = EventEquipmentDeleted
	}
	h.publish(ev, func(a domain.Actor) bool { return a.SignedIn() })
}

func (h *Hub) publish(ev Event, visible func(domain.Actor) bool) {
	ev.At = h.now().UTC()
	data, err := json.Marshal(ev)
	if err != nil {
		h.log.Error("marshal event", zap.String("type", ev.Type), zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if !visible(c.actor) {
			continue
		}
		select {
		case c.send <- data:
		default:
			h.log.Warn("event dropped for slow client", zap.String("type", ev.Type), zap.String("user_id", c.actor.ID))
		}
	}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// ServeWS registers conn for actor and blocks until the client disconnects.
func (h *Hub) ServeWS(conn *websocket.Conn, actor domain.Actor) {
	c := &client{
		actor: actor,
		conn:  conn,
		send:  make(chan []byte, 64),
	}
	h.register(c)
	h.log.Debug("events client connected", zap.String("user_id", actor.ID))

	go h.writePump(c)
	h.readPump(c)
}

// readPump only services control frames; clients never send events.
func (h *Hub) readPump(c *client) {
	defer func() {
		h.unregister(c)
		c.conn.Close()
		h.log.Debug("events client disconnected", zap.String("user_id", c.actor.ID))
	}()

	c.conn.SetReadLimit(maxMsgSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn("events read failed", zap.String("user_id", c.actor.ID), zap.Error(err))
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
