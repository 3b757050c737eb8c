package httpserver

import (
	"errors"

	"inbox-srv/config"
	"inbox-srv/internal/notification"
	ws "inbox-srv/internal/websocket"
	wsRedis "inbox-srv/internal/websocket/delivery/redis"
	"inbox-srv/pkg/log"
	pkgRedis "inbox-srv/pkg/redis"
	"inbox-srv/pkg/scope"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// HTTPServer represents the HTTP server with all dependencies.
// New() only wires dependencies and validates them.
// Run() (in httpserver.go) is responsible for starting background services and HTTP serving.
type HTTPServer struct {
	// Server configuration
	gin         *gin.Engine
	logger      log.Logger
	host        string
	port        int
	environment string

	// Notification core
	notificationUC notification.UseCase

	// WebSocket core
	hub          *ws.Hub
	wsSubscriber *wsRedis.Subscriber
	wsConfig     config.WebSocketConfig

	// Auth & security
	jwtMgr    scope.Manager
	cookieCfg config.CookieConfig

	// External services
	redis *pkgRedis.Client
	db    *sqlx.DB
}

// Config is the constructor input for HTTPServer.
// Keep this minimal: only fields really needed by HTTPServer.
type Config struct {
	// Server configuration
	Host        string
	Port        int
	Mode        string
	Environment string

	// Notification core
	NotificationUC notification.UseCase

	// WebSocket core
	Hub        *ws.Hub
	Subscriber *wsRedis.Subscriber
	WSConfig   config.WebSocketConfig

	// Auth & security
	JWTManager scope.Manager
	Cookie     config.CookieConfig

	// External services
	Redis *pkgRedis.Client
	DB    *sqlx.DB
}

// New creates a new HTTPServer instance with the provided configuration.
// Note: This does NOT start any goroutines. Use (*HTTPServer).Run() to start the service.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &HTTPServer{
		// Server configuration
		gin:         gin.New(),
		logger:      logger,
		host:        cfg.Host,
		port:        cfg.Port,
		environment: cfg.Environment,

		// Notification core
		notificationUC: cfg.NotificationUC,

		// WebSocket core
		hub:          cfg.Hub,
		wsSubscriber: cfg.Subscriber,
		wsConfig:     cfg.WSConfig,

		// Auth & security
		jwtMgr:    cfg.JWTManager,
		cookieCfg: cfg.Cookie,

		// External services
		redis: cfg.Redis,
		db:    cfg.DB,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate ensures all required dependencies are provided.
func (srv *HTTPServer) validate() error {
	if srv.logger == nil {
		return errors.New("logger is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.notificationUC == nil {
		return errors.New("notification usecase is required")
	}
	if srv.hub == nil {
		return errors.New("websocket hub is required")
	}
	if srv.wsSubscriber == nil {
		return errors.New("redis subscriber is required")
	}
	if srv.jwtMgr == nil {
		return errors.New("JWTManager is required")
	}
	if srv.redis == nil {
		return errors.New("redis client is required")
	}
	if srv.db == nil {
		return errors.New("postgres client is required")
	}

	return nil
}
