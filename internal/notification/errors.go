package notification

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrFieldRequired        = errors.New("field required")
	ErrInvalidID            = errors.New("invalid notification id")
)
