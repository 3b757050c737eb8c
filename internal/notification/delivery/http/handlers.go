package http

import (
	"github.com/gin-gonic/gin"

	"inbox-srv/pkg/response"
)

// Inbox returns the caller's current unread notifications.
// @Summary Unread inbox
// @Description Returns the authenticated caller's unread notifications, newest first.
// @Tags Notification
// @Produce json
// @Success 200 {object} response.Resp
// @Failure 401 {object} response.Resp "Unauthorized"
// @Router /api/v1/notifications/inbox [GET]
func (h *Handler) Inbox(c *gin.Context) {
	sc, ok := h.processScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	items, err := h.uc.Inbox(c.Request.Context(), sc)
	if err != nil {
		response.ErrorWithMap(c, err, errorMapping)
		return
	}

	response.OK(c, newInboxResp(items))
}

// Create persists a notification and dispatches it to matching sessions.
// @Summary Create notification
// @Description Creates a role-targeted notification and pushes it to connected sessions whose role matches.
// @Tags Notification
// @Accept json
// @Produce json
// @Param body body createReq true "Notification"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp "Validation error"
// @Router /api/v1/notifications [POST]
func (h *Handler) Create(c *gin.Context) {
	sc, ok := h.processScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnf(c.Request.Context(), "internal.notification.delivery.http.Create.ShouldBindJSON: %v", err)
		response.Error(c, errInvalidBody)
		return
	}

	created, err := h.uc.Create(c.Request.Context(), sc, req.toInput())
	if err != nil {
		response.ErrorWithMap(c, err, errorMapping)
		return
	}

	response.OK(c, created)
}

// MarkRead durably marks one notification read for the caller.
// @Summary Mark notification read
// @Description Marks the notification read for the authenticated caller. Idempotent.
// @Tags Notification
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Resp
// @Failure 404 {object} response.Resp "Not found"
// @Router /api/v1/notifications/{id}/read [POST]
func (h *Handler) MarkRead(c *gin.Context) {
	sc, ok := h.processScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	if err := h.uc.MarkRead(c.Request.Context(), sc, c.Param("id")); err != nil {
		response.ErrorWithMap(c, err, errorMapping)
		return
	}

	response.OK(c, nil)
}

// MarkAllRead marks the given notifications read for the caller.
// @Summary Mark notifications read (bulk)
// @Description Marks all given notifications read for the authenticated caller, atomically.
// @Tags Notification
// @Accept json
// @Produce json
// @Param body body readAllReq true "Notification IDs"
// @Success 200 {object} response.Resp
// @Failure 400 {object} response.Resp "Validation error"
// @Router /api/v1/notifications/read-all [POST]
func (h *Handler) MarkAllRead(c *gin.Context) {
	sc, ok := h.processScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	var req readAllReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnf(c.Request.Context(), "internal.notification.delivery.http.MarkAllRead.ShouldBindJSON: %v", err)
		response.Error(c, errInvalidBody)
		return
	}

	if err := h.uc.MarkAllRead(c.Request.Context(), sc, req.IDs); err != nil {
		response.ErrorWithMap(c, err, errorMapping)
		return
	}

	response.OK(c, nil)
}
