package httpserver

import (
	"net/http"
	"time"

	"inbox-srv/pkg/errors"
	"inbox-srv/pkg/response"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check if the notification service and its backends are healthy
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is healthy"
// @Failure 503 {object} response.Resp "A backend is unavailable"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	pingLatency, err := srv.redis.Ping(ctx)
	if err != nil {
		srv.logger.Errorf(ctx, "Redis health check failed: %v", err)
		response.HttpError(c, errors.NewHTTPError(http.StatusServiceUnavailable, "Redis connection failed"))
		return
	}

	if err := srv.db.PingContext(ctx); err != nil {
		srv.logger.Errorf(ctx, "Postgres health check failed: %v", err)
		response.HttpError(c, errors.NewHTTPError(http.StatusServiceUnavailable, "Postgres connection failed"))
		return
	}

	stats := srv.hub.GetStats()
	active, lastMessageAt, channel := srv.wsSubscriber.GetHealthInfo()

	response.OK(c, gin.H{
		"status":             "healthy",
		"service":            "inbox-srv",
		"uptime_seconds":     int64(time.Since(startTime).Seconds()),
		"redis_ping_ms":      float64(pingLatency.Microseconds()) / 1000.0,
		"active_connections": stats.ActiveConnections,
		"total_unique_users": stats.TotalUniqueUsers,
		"subscriber": gin.H{
			"active":          active,
			"last_message_at": lastMessageAt,
			"channel":         channel,
		},
	})
}

// readyCheck handles readiness check requests
// @Summary Readiness Check
// @Description Check if the service is ready to serve traffic
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is ready"
// @Failure 503 {object} response.Resp "Service is not ready"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if _, err := srv.redis.Ping(ctx); err != nil {
		response.HttpError(c, errors.NewHTTPError(http.StatusServiceUnavailable, "Redis connection not available"))
		return
	}
	if err := srv.db.PingContext(ctx); err != nil {
		response.HttpError(c, errors.NewHTTPError(http.StatusServiceUnavailable, "Postgres connection not available"))
		return
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"service": "inbox-srv",
	})
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Description Check if the service is alive
// @Tags Health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"service": "inbox-srv",
	})
}

// statsHandler exposes hub delivery counters for monitoring.
// @Summary Delivery Stats
// @Description WebSocket hub connection and message counters
// @Tags Health
// @Produce json
// @Success 200 {object} websocket.HubStats
// @Router /stats [get]
func (srv *HTTPServer) statsHandler(c *gin.Context) {
	response.OK(c, srv.hub.GetStats())
}
