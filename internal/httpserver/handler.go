package httpserver

import (
	"inbox-srv/internal/middleware"
	notificationHTTP "inbox-srv/internal/notification/delivery/http"
	ws "inbox-srv/internal/websocket"
)

const (
	Api = "/api/v1"
)

func (srv *HTTPServer) mapHandlers() error {
	// Global middleware
	srv.gin.Use(middleware.Recovery(srv.logger))
	srv.gin.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	// Health check endpoints (no auth required)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)
	srv.gin.GET("/stats", srv.statsHandler)

	// WebSocket endpoint authenticates via query token or cookie, not the
	// Authorization header, so it sits outside the auth middleware group.
	wsHandler := ws.NewHandler(
		srv.hub,
		srv.jwtMgr,
		srv.logger,
		ws.WSConfig{
			PongWait:        srv.wsConfig.PongWait,
			PingPeriod:      srv.wsConfig.PingInterval,
			WriteWait:       srv.wsConfig.WriteWait,
			MaxMessageSize:  srv.wsConfig.MaxMessageSize,
			ReadBufferSize:  srv.wsConfig.ReadBufferSize,
			WriteBufferSize: srv.wsConfig.WriteBufferSize,
		},
		ws.CookieConfig{
			Name: srv.cookieCfg.Name,
		},
	)
	wsHandler.SetupRoutes(srv.gin)

	// API routes
	mw := middleware.New(srv.logger, srv.jwtMgr)
	api := srv.gin.Group(Api)

	notificationHandler := notificationHTTP.New(srv.notificationUC, srv.logger)
	notificationHTTP.RegisterRoutes(api, notificationHandler, mw)

	return nil
}
