package events

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"equiptrack/internal/domain"
	"equiptrack/internal/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attach(h *Hub, actor domain.Actor) *client {
	c := &client{actor: actor, send: make(chan []byte, 8)}
	h.register(c)
	return c
}

func next(t *testing.T, c *client) Event {
	t.Helper()
	select {
	case data := <-c.send:
		var ev Event
		require.NoError(t, json.Unmarshal(data, &ev))
		return ev
	default:
		t.Fatal("no event queued")
		return Event{}
	}
}

func TestHub_RequestEventsFollowVisibility(t *testing.T) {
	h := NewHub(nil)
	admin := attach(h, domain.Actor{ID: "A1", Role: domain.RoleAdmin})
	owner := attach(h, domain.Actor{ID: "U1", Role: domain.RoleUser})
	other := attach(h, domain.Actor{ID: "U2", Role: domain.RoleUser})

	req := domain.EquipmentRequest{ID: "R1", UserID: "U1", Status: domain.RequestApproved}
	h.NotifyRequestStatusChanged(context.Background(), req, domain.RequestPending)

	assert.Equal(t, EventRequestStatusChanged, next(t, admin).Type)
	assert.Equal(t, EventRequestStatusChanged, next(t, owner).Type)
	assert.Empty(t, other.send)
}

func TestHub_EquipmentEventsReachEveryone(t *testing.T) {
	h := NewHub(nil)
	a := attach(h, domain.Actor{ID: "A1", Role: domain.RoleAdmin})
	u := attach(h, domain.Actor{ID: "U1", Role: domain.RoleUser})

	h.NotifyEquipmentChanged(context.Background(), domain.Equipment{ID: "E1"}, true)

	assert.Equal(t, EventEquipmentDeleted, next(t, a).Type)
	assert.Equal(t, EventEquipmentDeleted, next(t, u).Type)
}

func TestHub_SlowClientDoesNotBlock(t *testing.T) {
	h := NewHub(nil)
	c := &client{actor: domain.Actor{ID: "U1", Role: domain.RoleUser}, send: make(chan []byte, 1)}
	h.register(c)

	for i := 0; i < 3; i++ {
		h.NotifyEquipmentChanged(context.Background(), domain.Equipment{ID: "E1"}, false)
	}
	assert.Len(t, c.send, 1)
}

func TestHandler_WebSocketDelivery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtService := jwt.New("ws-secret", time.Hour)
	hub := NewHub(nil)
	defer hub.Close()

	r := gin.New()
	NewHandler(hub, jwtService, nil).RegisterRoutes(r.Group("/api/v1"))
	srv := httptest.NewServer(r)
	defer srv.Close()

	token, err := jwtService.GenerateToken("U1", "Alice", "user")
	require.NoError(t, err)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/events?token=" + token
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, http.StatusSwitchingProtocols, resp.StatusCode)

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.NotifyEquipmentChanged(context.Background(), domain.Equipment{ID: "E9", Name: "Tripod"}, false)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev Event
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, EventEquipmentChanged, ev.Type)
}

func TestHandler_RejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(NewHub(nil), jwt.New("s", time.Hour), nil).RegisterRoutes(r.Group(""))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
