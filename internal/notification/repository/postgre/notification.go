package postgres

import (
	"context"
	"time"

	"inbox-srv/internal/model"
	"inbox-srv/internal/notification/repository"
	postgresPkg "inbox-srv/pkg/postgre"

	"github.com/lib/pq"
)

// notificationRow mirrors the notifications table.
type notificationRow struct {
	ID             string         `db:"id"`
	Seq            int64          `db:"seq"`
	Title          string         `db:"title"`
	Message        string         `db:"message"`
	RecipientRoles pq.StringArray `db:"recipient_roles"`
	CreatedAt      time.Time      `db:"created_at"`
	ReadBy         pq.StringArray `db:"read_by"`
}

func (r notificationRow) toModel() model.Notification {
	return model.Notification{
		ID:             r.ID,
		Seq:            r.Seq,
		Title:          r.Title,
		Message:        r.Message,
		RecipientRoles: model.RoleList(r.RecipientRoles),
		CreatedAt:      r.CreatedAt,
		ReadBy:         r.ReadBy,
	}
}

func (r *implRepository) Create(ctx context.Context, sc model.Scope, opts repository.CreateOptions) (model.Notification, error) {
	n := opts.Notification
	if err := postgresPkg.IsUUID(n.ID); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Create.IsUUID: %v", err)
		return model.Notification{}, err
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = r.clock()
	}

	var seq int64
	err := r.db.QueryRowxContext(ctx, queryInsert,
		n.ID,
		n.Title,
		n.Message,
		pq.StringArray(n.RecipientRoles),
		n.CreatedAt,
	).Scan(&seq)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Create: %v", err)
		return model.Notification{}, err
	}

	n.Seq = seq
	return n, nil
}

func (r *implRepository) Inbox(ctx context.Context, sc model.Scope) ([]model.Notification, error) {
	var rows []notificationRow
	if err := r.db.SelectContext(ctx, &rows, queryInbox, sc.UserID, sc.Role); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Inbox: %v", err)
		return nil, err
	}

	notifications := make([]model.Notification, 0, len(rows))
	for _, row := range rows {
		notifications = append(notifications, row.toModel())
	}
	return notifications, nil
}

func (r *implRepository) MarkRead(ctx context.Context, sc model.Scope, id string) error {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.MarkRead.IsUUID: %v", err)
		return err
	}

	res, err := r.db.ExecContext(ctx, queryMarkRead, sc.UserID, id)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.MarkRead: %v", err)
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.MarkRead.RowsAffected: %v", err)
		return err
	}
	if affected == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *implRepository) MarkAllRead(ctx context.Context, sc model.Scope, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := postgresPkg.ValidateUUIDs(ids); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.MarkAllRead.ValidateUUIDs: %v", err)
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.MarkAllRead.BeginTxx: %v", err)
		return err
	}
	defer tx.Rollback()

	for _, id := range ids {
		res, err := tx.ExecContext(ctx, queryMarkRead, sc.UserID, id)
		if err != nil {
			r.l.Errorf(ctx, "internal.notification.repository.postgres.MarkAllRead: %v", err)
			return err
		}
		affected, err := res.RowsAffected()
		if err != nil {
			r.l.Errorf(ctx, "internal.notification.repository.postgres.MarkAllRead.RowsAffected: %v", err)
			return err
		}
		if affected == 0 {
			// All-or-nothing: an unknown id rolls the whole batch back.
			return repository.ErrNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.MarkAllRead.Commit: %v", err)
		return err
	}
	return nil
}
