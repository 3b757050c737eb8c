package repository

import "inbox-srv/internal/model"

// CreateOptions contains options for creating a notification.
// ID and CreatedAt must be set by the caller; Seq is assigned by the store.
type CreateOptions struct {
	Notification model.Notification
}
