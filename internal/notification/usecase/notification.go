package usecase

import (
	"context"

	"inbox-srv/internal/model"
	"inbox-srv/internal/notification"
	"inbox-srv/internal/notification/repository"
	postgresPkg "inbox-srv/pkg/postgre"
)

func (uc *usecase) Create(ctx context.Context, sc model.Scope, ip notification.CreateInput) (model.Notification, error) {
	if ip.Title == "" || ip.Message == "" {
		return model.Notification{}, notification.ErrFieldRequired
	}
	if len(ip.RecipientRoles) == 0 {
		return model.Notification{}, notification.ErrFieldRequired
	}

	n := model.Notification{
		ID:             postgresPkg.NewUUID(),
		Title:          ip.Title,
		Message:        ip.Message,
		RecipientRoles: model.RoleList(ip.RecipientRoles),
	}

	created, err := uc.repo.Create(ctx, sc, repository.CreateOptions{Notification: n})
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.Create: %v", err)
		return model.Notification{}, err
	}

	// Fan-out is best-effort: a publish failure must not fail the creation.
	// Disconnected or missed sessions recover on their next inbox fetch.
	if err := uc.pub.Publish(ctx, created); err != nil {
		uc.l.Warnf(ctx, "internal.notification.usecase.Create.Publish: %v", err)
	}

	return created, nil
}

func (uc *usecase) Inbox(ctx context.Context, sc model.Scope) ([]model.Notification, error) {
	notifications, err := uc.repo.Inbox(ctx, sc)
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.Inbox: %v", err)
		return nil, err
	}
	return notifications, nil
}

func (uc *usecase) MarkRead(ctx context.Context, sc model.Scope, id string) error {
	if !postgresPkg.IsValidUUID(id) {
		return notification.ErrInvalidID
	}

	if err := uc.repo.MarkRead(ctx, sc, id); err != nil {
		if err == repository.ErrNotFound {
			return notification.ErrNotificationNotFound
		}
		uc.l.Errorf(ctx, "internal.notification.usecase.MarkRead: %v", err)
		return err
	}
	return nil
}

func (uc *usecase) MarkAllRead(ctx context.Context, sc model.Scope, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := postgresPkg.ValidateUUIDs(ids); err != nil {
		return notification.ErrInvalidID
	}

	if err := uc.repo.MarkAllRead(ctx, sc, ids); err != nil {
		if err == repository.ErrNotFound {
			return notification.ErrNotificationNotFound
		}
		uc.l.Errorf(ctx, "internal.notification.usecase.MarkAllRead: %v", err)
		return err
	}
	return nil
}
