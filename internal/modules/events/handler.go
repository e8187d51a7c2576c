package events

import (
	"net/http"
	"strings"

	"equiptrack/internal/domain"
	"equiptrack/internal/pkg/jwt"
	"equiptrack/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the token is checked before upgrading, so any origin may connect
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Handler struct {
	hub        *Hub
	jwtService *jwt.Service
	log        *zap.Logger
}

func NewHandler(hub *Hub, jwtService *jwt.Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{hub: hub, jwtService: jwtService, log: log}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/events", h.HandleWebSocket)
}

// HandleWebSocket upgrades GET /events?token=JWT. Browsers cannot set headers
// on a WebSocket handshake, so the token may come from the query.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	}
	if token == "" {
		response.Error(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Token is required")
		return
	}

	claims, err := h.jwtService.ValidateToken(token)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.hub.ServeWS(conn, domain.Actor{ID: claims.UserID, Name: claims.Name, Role: domain.UserRole(claims.Role)})
}
