package http

import (
	"inbox-srv/internal/model"
	"inbox-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

// processScope extracts the authenticated caller's scope set by the auth
// middleware. The second return is false when the route was reached without
// authentication, which is a wiring bug rather than a user error.
func (h *Handler) processScope(c *gin.Context) (model.Scope, bool) {
	sc, ok := scope.GetScopeFromContext(c.Request.Context())
	if !ok {
		h.logger.Errorf(c.Request.Context(), "internal.notification.delivery.http.processScope: missing scope | Path: %s", c.Request.URL.Path)
		return model.Scope{}, false
	}
	return sc, true
}
