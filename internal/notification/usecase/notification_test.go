package usecase

import (
	"context"
	"errors"
	"testing"

	"inbox-srv/internal/model"
	"inbox-srv/internal/notification"
	"inbox-srv/internal/notification/repository"
)

// testLogger implements log.Logger for testing
type testLogger struct{}

func (m *testLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *testLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *testLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *testLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *testLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

const (
	idA = "6f1c24a5-91c8-4b3a-b7e4-0d6a3f2e8c01"
	idB = "7a8b49e2-4c1d-4f5e-9a6b-1e2f3a4b5c02"
	idC = "8b9c5af3-5d2e-4a6f-8b7c-2f3a4b5c6d03"
)

// fakeRepository is an in-memory repository.Repository.
type fakeRepository struct {
	notifications map[string]*model.Notification
	seq           int64
	markCalls     int
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{notifications: make(map[string]*model.Notification)}
}

func (f *fakeRepository) Create(ctx context.Context, sc model.Scope, opts repository.CreateOptions) (model.Notification, error) {
	n := opts.Notification
	f.seq++
	n.Seq = f.seq
	f.notifications[n.ID] = &n
	return n, nil
}

func (f *fakeRepository) Inbox(ctx context.Context, sc model.Scope) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range f.notifications {
		if n.RecipientRoles.Matches(sc.Role) && n.UnreadFor(sc.UserID) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeRepository) MarkRead(ctx context.Context, sc model.Scope, id string) error {
	f.markCalls++
	n, ok := f.notifications[id]
	if !ok {
		return repository.ErrNotFound
	}
	if n.UnreadFor(sc.UserID) {
		n.ReadBy = append(n.ReadBy, sc.UserID)
	}
	return nil
}

func (f *fakeRepository) MarkAllRead(ctx context.Context, sc model.Scope, ids []string) error {
	for _, id := range ids {
		if _, ok := f.notifications[id]; !ok {
			return repository.ErrNotFound
		}
	}
	for _, id := range ids {
		if err := f.MarkRead(ctx, sc, id); err != nil {
			return err
		}
	}
	return nil
}

// fakePublisher records publishes and can be forced to fail.
type fakePublisher struct {
	published []model.Notification
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, n model.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, n)
	return nil
}

func TestCreateDispatches(t *testing.T) {
	repo := newFakeRepository()
	pub := &fakePublisher{}
	uc := New(&testLogger{}, repo, pub)

	sc := model.Scope{UserID: "u1", Role: model.RoleOrganizer}
	created, err := uc.Create(context.Background(), sc, notification.CreateInput{
		Title:          "Zone B full",
		Message:        "Redirect attendees to zone C",
		RecipientRoles: []string{"STAFF", "SECURITY"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" || created.Seq == 0 {
		t.Errorf("expected assigned id and seq, got %+v", created)
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected 1 publish, got %d", len(pub.published))
	}
	if pub.published[0].ID != created.ID {
		t.Errorf("published id %s, want %s", pub.published[0].ID, created.ID)
	}
}

func TestCreatePublishFailureIsNonFatal(t *testing.T) {
	repo := newFakeRepository()
	pub := &fakePublisher{err: errors.New("redis down")}
	uc := New(&testLogger{}, repo, pub)

	sc := model.Scope{UserID: "u1", Role: model.RoleOrganizer}
	created, err := uc.Create(context.Background(), sc, notification.CreateInput{
		Title:          "Lost child",
		Message:        "Report to info desk",
		RecipientRoles: []string{"STAFF"},
	})
	if err != nil {
		t.Fatalf("Create must not fail on publish error, got %v", err)
	}
	if _, ok := repo.notifications[created.ID]; !ok {
		t.Error("notification must be persisted even when publish fails")
	}
}

func TestCreateValidation(t *testing.T) {
	uc := New(&testLogger{}, newFakeRepository(), &fakePublisher{})
	sc := model.Scope{UserID: "u1", Role: model.RoleOrganizer}

	tests := []struct {
		name string
		ip   notification.CreateInput
	}{
		{name: "missing title", ip: notification.CreateInput{Message: "m", RecipientRoles: []string{"STAFF"}}},
		{name: "missing message", ip: notification.CreateInput{Title: "t", RecipientRoles: []string{"STAFF"}}},
		{name: "missing roles", ip: notification.CreateInput{Title: "t", Message: "m"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := uc.Create(context.Background(), sc, tt.ip); err != notification.ErrFieldRequired {
				t.Errorf("got %v, want ErrFieldRequired", err)
			}
		})
	}
}

func TestMarkReadIdempotent(t *testing.T) {
	repo := newFakeRepository()
	repo.notifications[idA] = &model.Notification{ID: idA, RecipientRoles: model.RoleList{"STAFF"}}
	uc := New(&testLogger{}, repo, &fakePublisher{})

	sc := model.Scope{UserID: "u1", Role: "STAFF"}

	// Two calls in quick succession (double-click): both must succeed.
	if err := uc.MarkRead(context.Background(), sc, idA); err != nil {
		t.Fatalf("first MarkRead: %v", err)
	}
	if err := uc.MarkRead(context.Background(), sc, idA); err != nil {
		t.Fatalf("second MarkRead: %v", err)
	}

	inbox, err := uc.Inbox(context.Background(), sc)
	if err != nil {
		t.Fatalf("Inbox: %v", err)
	}
	if len(inbox) != 0 {
		t.Errorf("expected empty inbox after MarkRead, got %d items", len(inbox))
	}
}

func TestMarkReadUnknownID(t *testing.T) {
	uc := New(&testLogger{}, newFakeRepository(), &fakePublisher{})
	sc := model.Scope{UserID: "u1", Role: "STAFF"}

	if err := uc.MarkRead(context.Background(), sc, idA); err != notification.ErrNotificationNotFound {
		t.Errorf("got %v, want ErrNotificationNotFound", err)
	}
	if err := uc.MarkRead(context.Background(), sc, "not-a-uuid"); err != notification.ErrInvalidID {
		t.Errorf("got %v, want ErrInvalidID", err)
	}
}

func TestMarkAllReadEmptySetIsNoOp(t *testing.T) {
	repo := newFakeRepository()
	uc := New(&testLogger{}, repo, &fakePublisher{})
	sc := model.Scope{UserID: "u1", Role: "STAFF"}

	if err := uc.MarkAllRead(context.Background(), sc, nil); err != nil {
		t.Fatalf("MarkAllRead(nil): %v", err)
	}
	if repo.markCalls != 0 {
		t.Errorf("empty id set must not reach the repository, got %d calls", repo.markCalls)
	}
}

func TestMarkAllReadAtomic(t *testing.T) {
	repo := newFakeRepository()
	repo.notifications[idA] = &model.Notification{ID: idA}
	repo.notifications[idB] = &model.Notification{ID: idB}
	uc := New(&testLogger{}, repo, &fakePublisher{})

	sc := model.Scope{UserID: "u1", Role: "STAFF"}

	// idC is unknown: nothing must be applied.
	err := uc.MarkAllRead(context.Background(), sc, []string{idA, idB, idC})
	if err != notification.ErrNotificationNotFound {
		t.Fatalf("got %v, want ErrNotificationNotFound", err)
	}
	if !repo.notifications[idA].UnreadFor("u1") || !repo.notifications[idB].UnreadFor("u1") {
		t.Error("partial failure must not mark any notification read")
	}

	if err := uc.MarkAllRead(context.Background(), sc, []string{idA, idB}); err != nil {
		t.Fatalf("MarkAllRead: %v", err)
	}
	if repo.notifications[idA].UnreadFor("u1") || repo.notifications[idB].UnreadFor("u1") {
		t.Error("expected both notifications marked read")
	}
}
