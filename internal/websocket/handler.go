package websocket

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"inbox-srv/pkg/log"
	"inbox-srv/pkg/scope"
)

// Handler handles WebSocket upgrade requests.
type Handler struct {
	hub       *Hub
	jwtMgr    scope.Manager
	logger    log.Logger
	wsConfig  WSConfig
	cookieCfg CookieConfig
}

// WSConfig holds WebSocket configuration.
type WSConfig struct {
	PongWait        time.Duration
	PingPeriod      time.Duration
	WriteWait       time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
}

// CookieConfig holds the auth cookie fallback configuration.
type CookieConfig struct {
	Name string
}

// NewHandler creates a new WebSocket handler.
func NewHandler(hub *Hub, jwtMgr scope.Manager, logger log.Logger, wsCfg WSConfig, cookieCfg CookieConfig) *Handler {
	return &Handler{
		hub:       hub,
		jwtMgr:    jwtMgr,
		logger:    logger,
		wsConfig:  wsCfg,
		cookieCfg: cookieCfg,
	}
}

// HandleWebSocket upgrades the HTTP connection to a WebSocket connection.
// @Summary Connect to WebSocket
// @Description Upgrade HTTP to WebSocket for real-time notifications. Requires a valid JWT in query 'token' or the auth cookie.
// @Tags Notification
// @Param token query string false "JWT Token"
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} response.Resp "Unauthorized"
// @Router /ws [GET]
func (h *Handler) HandleWebSocket(c *gin.Context) {
	// Browsers cannot set an Authorization header on the WebSocket API, so
	// the credential arrives as a query parameter with a cookie fallback.
	token := c.Query("token")
	if token == "" {
		if cookie, err := c.Cookie(h.cookieCfg.Name); err == nil {
			token = cookie
		}
	}
	if token == "" {
		h.logger.Warn(c.Request.Context(), "WebSocket connection rejected: missing token")
		c.JSON(http.StatusUnauthorized, gin.H{"error": ErrMissingToken.Error()})
		return
	}

	payload, err := h.jwtMgr.Verify(token)
	if err != nil {
		h.logger.Warnf(c.Request.Context(), "WebSocket connection rejected: invalid token - %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  h.wsConfig.ReadBufferSize,
		WriteBufferSize: h.wsConfig.WriteBufferSize,
		CheckOrigin: func(r *http.Request) bool {
			// Origin allow-list is enforced by the CORS middleware upstream
			return true
		},
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf(c.Request.Context(), "Failed to upgrade connection: %v", err)
		return
	}

	connection := NewConnection(
		h.hub,
		conn,
		payload.UserID(),
		payload.Role,
		ConnConfig{
			PongWait:       h.wsConfig.PongWait,
			PingPeriod:     h.wsConfig.PingPeriod,
			WriteWait:      h.wsConfig.WriteWait,
			MaxMessageSize: h.wsConfig.MaxMessageSize,
		},
		h.logger,
	)

	h.hub.register <- connection
	connection.Start()

	h.logger.Infof(context.Background(), "WebSocket connection established for user: %s (role: %s)", payload.UserID(), payload.Role)
}

// SetupRoutes sets up WebSocket routes.
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.GET("/ws", h.HandleWebSocket)
}
