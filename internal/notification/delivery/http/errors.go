package http

import (
	"net/http"

	"inbox-srv/internal/notification"
	"inbox-srv/pkg/errors"
	"inbox-srv/pkg/response"
)

var errInvalidBody = errors.NewHTTPError(http.StatusBadRequest, "Invalid request body")

var errorMapping = response.ErrorMapping{
	notification.ErrNotificationNotFound: errors.NewHTTPError(http.StatusNotFound, "Notification not found"),
	notification.ErrInvalidID:            errors.NewHTTPError(http.StatusBadRequest, "Invalid notification id"),
	notification.ErrFieldRequired:        errors.NewHTTPError(http.StatusBadRequest, "Title, message and recipient roles are required"),
}
