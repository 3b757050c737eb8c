package http

import (
	"inbox-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the notification routes.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, mw middleware.Middleware) {
	notifications := r.Group("/notifications")
	notifications.Use(mw.Auth())
	{
		notifications.GET("/inbox", h.Inbox)
		notifications.POST("", h.Create)
		notifications.POST("/read-all", h.MarkAllRead)
		notifications.POST("/:id/read", h.MarkRead)
	}
}
