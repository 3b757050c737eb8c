package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"inbox-srv/internal/model"
	"inbox-srv/internal/notification"
	"inbox-srv/pkg/scope"
)

// testLogger implements log.Logger for testing
type testLogger struct{}

func (m *testLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *testLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *testLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Warn(ctx context.Context, arg ...any)                    {}
func (m *testLogger) Warnf(ctx context.Context, template string, arg ...any)  {}
func (m *testLogger) Error(ctx context.Context, arg ...any)                   {}
func (m *testLogger) Errorf(ctx context.Context, template string, arg ...any) {}
func (m *testLogger) Fatal(ctx context.Context, arg ...any)                   {}
func (m *testLogger) Fatalf(ctx context.Context, template string, arg ...any) {}

// stubUseCase is a notification.UseCase with programmable results.
type stubUseCase struct {
	inboxItems []model.Notification
	inboxErr   error
	markErr    error

	markedID  string
	markedIDs []string
}

func (s *stubUseCase) Create(ctx context.Context, sc model.Scope, ip notification.CreateInput) (model.Notification, error) {
	return model.Notification{ID: "created", Title: ip.Title, Message: ip.Message, RecipientRoles: model.RoleList(ip.RecipientRoles)}, nil
}

func (s *stubUseCase) Inbox(ctx context.Context, sc model.Scope) ([]model.Notification, error) {
	return s.inboxItems, s.inboxErr
}

func (s *stubUseCase) MarkRead(ctx context.Context, sc model.Scope, id string) error {
	s.markedID = id
	return s.markErr
}

func (s *stubUseCase) MarkAllRead(ctx context.Context, sc model.Scope, ids []string) error {
	s.markedIDs = ids
	return s.markErr
}

func newTestContext(t *testing.T, method, path string, body []byte, authenticated bool) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if authenticated {
		payload := scope.Payload{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
			Username:         "staff-user",
			Role:             model.RoleStaff,
		}
		req = req.WithContext(scope.SetPayloadToContext(req.Context(), payload))
	}

	c.Request = req
	return c, w
}

func decodeResp(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return out
}

func TestInboxReturnsItemsAndTotal(t *testing.T) {
	uc := &stubUseCase{inboxItems: []model.Notification{
		{ID: "2", Seq: 2, Title: "second"},
		{ID: "1", Seq: 1, Title: "first"},
	}}
	h := New(uc, &testLogger{})

	c, w := newTestContext(t, http.MethodGet, "/api/v1/notifications/inbox", nil, true)
	h.Inbox(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data, ok := decodeResp(t, w)["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data object in response")
	}
	items, ok := data["items"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("expected 2 items, got %v", data["items"])
	}
	if total, _ := data["total"].(float64); int(total) != 2 {
		t.Errorf("expected total 2, got %v", data["total"])
	}
}

func TestInboxEmptyIsNotNull(t *testing.T) {
	h := New(&stubUseCase{}, &testLogger{})

	c, w := newTestContext(t, http.MethodGet, "/api/v1/notifications/inbox", nil, true)
	h.Inbox(c)

	data, ok := decodeResp(t, w)["data"].(map[string]any)
	if !ok {
		t.Fatal("expected data object in response")
	}
	if _, ok := data["items"].([]any); !ok {
		t.Errorf("expected items to be an empty array, got %v", data["items"])
	}
}

func TestInboxRequiresScope(t *testing.T) {
	h := New(&stubUseCase{}, &testLogger{})

	c, w := newTestContext(t, http.MethodGet, "/api/v1/notifications/inbox", nil, false)
	h.Inbox(c)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without scope, got %d", w.Code)
	}
}

func TestMarkReadNotFound(t *testing.T) {
	uc := &stubUseCase{markErr: notification.ErrNotificationNotFound}
	h := New(uc, &testLogger{})

	c, w := newTestContext(t, http.MethodPost, "/api/v1/notifications/missing/read", nil, true)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	h.MarkRead(c)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown id, got %d", w.Code)
	}
}

func TestMarkReadPassesID(t *testing.T) {
	uc := &stubUseCase{}
	h := New(uc, &testLogger{})

	c, w := newTestContext(t, http.MethodPost, "/api/v1/notifications/n-1/read", nil, true)
	c.Params = gin.Params{{Key: "id", Value: "n-1"}}
	h.MarkRead(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if uc.markedID != "n-1" {
		t.Errorf("expected usecase to receive id n-1, got %q", uc.markedID)
	}
}

func TestMarkAllReadBindsBody(t *testing.T) {
	uc := &stubUseCase{}
	h := New(uc, &testLogger{})

	body := []byte(`{"ids":["a","b"]}`)
	c, w := newTestContext(t, http.MethodPost, "/api/v1/notifications/read-all", body, true)
	h.MarkAllRead(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(uc.markedIDs) != 2 || uc.markedIDs[0] != "a" || uc.markedIDs[1] != "b" {
		t.Errorf("expected usecase to receive [a b], got %v", uc.markedIDs)
	}
}

func TestMarkAllReadRejectsMalformedBody(t *testing.T) {
	h := New(&stubUseCase{}, &testLogger{})

	c, w := newTestContext(t, http.MethodPost, "/api/v1/notifications/read-all", []byte(`{"ids":"oops"`), true)
	h.MarkAllRead(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed body, got %d", w.Code)
	}
}

func TestCreateValidationErrorMapsTo400(t *testing.T) {
	h := New(&stubUseCase{}, &testLogger{})

	c, w := newTestContext(t, http.MethodPost, "/api/v1/notifications", []byte(`not json`), true)
	h.Create(c)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid body, got %d", w.Code)
	}
}
