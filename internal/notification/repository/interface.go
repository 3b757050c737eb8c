package repository

import (
	"context"
	"errors"

	"inbox-srv/internal/model"
)

// ErrNotFound is returned when the requested notification does not exist.
var ErrNotFound = errors.New("not found")

//go:generate mockery --name Repository
type Repository interface {
	Create(ctx context.Context, sc model.Scope, opts CreateOptions) (model.Notification, error)

	// Inbox returns the unread notifications addressed to the scope's role,
	// excluding the ones the scope's user already acknowledged, ordered by
	// seq descending.
	Inbox(ctx context.Context, sc model.Scope) ([]model.Notification, error)

	// MarkRead records the scope's user in the notification's read set.
	// Idempotent; returns ErrNotFound for unknown ids.
	MarkRead(ctx context.Context, sc model.Scope, id string) error

	// MarkAllRead applies MarkRead to every id inside one transaction.
	// All-or-nothing: any unknown id rolls the whole batch back.
	MarkAllRead(ctx context.Context, sc model.Scope, ids []string) error
}
