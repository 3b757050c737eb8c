package notification

import (
	"context"

	"inbox-srv/internal/model"
)

// UseCase defines the business logic for the notification domain.
//
//go:generate mockery --name UseCase
type UseCase interface {
	// Create persists a new notification and dispatches it to connected
	// sessions whose role matches. Fan-out is best-effort: disconnected
	// sessions recover the notification on their next inbox fetch.
	Create(ctx context.Context, sc model.Scope, ip CreateInput) (model.Notification, error)

	// Inbox returns the caller's current unread notifications, newest
	// (highest seq) first.
	Inbox(ctx context.Context, sc model.Scope) ([]model.Notification, error)

	// MarkRead durably marks one notification read for the caller.
	// Idempotent: marking an already-read notification succeeds.
	MarkRead(ctx context.Context, sc model.Scope, id string) error

	// MarkAllRead marks the given notifications read for the caller,
	// atomically: on any failure none of the ids are applied.
	MarkAllRead(ctx context.Context, sc model.Scope, ids []string) error
}

// Publisher fans a created notification out to the live delivery channel.
type Publisher interface {
	Publish(ctx context.Context, n model.Notification) error
}
