package websocket

import (
	"context"
	"testing"
	"time"

	"inbox-srv/internal/model"
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

func newTestConnection(hub *Hub, userID, role string) *Connection {
	return &Connection{
		hub:    hub,
		userID: userID,
		role:   role,
		send:   make(chan []byte, 256),
		done:   make(chan struct{}),
		logger: &testLogger{},
	}
}

func TestHubBroadcastToMatching(t *testing.T) {
	logger := &testLogger{}
	hub := NewHub(logger, 100)

	go hub.Run()
	defer hub.Shutdown(context.Background())

	staff := newTestConnection(hub, "user1", "STAFF")
	security := newTestConnection(hub, "user2", "SECURITY")
	volunteer := newTestConnection(hub, "user3", "VOLUNTEER")

	hub.register <- staff
	hub.register <- security
	hub.register <- volunteer

	// Wait for registration
	time.Sleep(50 * time.Millisecond)

	msg, _ := NewMessage(EventNotificationNew, map[string]any{"id": "n1"})
	data, _ := msg.ToJSON()
	hub.BroadcastToMatching(model.RoleList{"STAFF", "SECURITY"}, data)

	// Wait for message delivery
	time.Sleep(50 * time.Millisecond)

	select {
	case <-staff.send:
		// Expected
	default:
		t.Error("staff connection should have received message")
	}

	select {
	case <-security.send:
		// Expected
	default:
		t.Error("security connection should have received message")
	}

	select {
	case <-volunteer.send:
		t.Error("volunteer connection should NOT have received message")
	default:
		// Expected
	}
}

func TestHubBroadcastCaseInsensitiveRole(t *testing.T) {
	logger := &testLogger{}
	hub := NewHub(logger, 100)

	go hub.Run()
	defer hub.Shutdown(context.Background())

	conn := newTestConnection(hub, "user1", "staff")
	hub.register <- conn
	time.Sleep(50 * time.Millisecond)

	hub.BroadcastToMatching(model.RoleList{"STAFF"}, []byte(`{}`))
	time.Sleep(50 * time.Millisecond)

	select {
	case <-conn.send:
		// Expected
	default:
		t.Error("role matching over the hub must be case-insensitive")
	}
}

func TestHubMultipleTabsSameUser(t *testing.T) {
	logger := &testLogger{}
	hub := NewHub(logger, 100)

	go hub.Run()
	defer hub.Shutdown(context.Background())

	tab1 := newTestConnection(hub, "user1", "STAFF")
	tab2 := newTestConnection(hub, "user1", "STAFF")
	hub.register <- tab1
	hub.register <- tab2
	time.Sleep(50 * time.Millisecond)

	stats := hub.GetStats()
	if stats.ActiveConnections != 2 {
		t.Errorf("ActiveConnections = %d, want 2", stats.ActiveConnections)
	}
	if stats.TotalUniqueUsers != 1 {
		t.Errorf("TotalUniqueUsers = %d, want 1", stats.TotalUniqueUsers)
	}

	hub.BroadcastToMatching(model.RoleList{"STAFF"}, []byte(`{}`))
	time.Sleep(50 * time.Millisecond)

	for i, tab := range []*Connection{tab1, tab2} {
		select {
		case <-tab.send:
			// Expected
		default:
			t.Errorf("tab %d should have received message", i+1)
		}
	}
}

func TestHubUnregisterRemovesConnection(t *testing.T) {
	logger := &testLogger{}
	hub := NewHub(logger, 100)

	go hub.Run()
	defer hub.Shutdown(context.Background())

	conn := newTestConnection(hub, "user1", "STAFF")
	hub.register <- conn
	time.Sleep(50 * time.Millisecond)

	hub.unregister <- conn
	time.Sleep(50 * time.Millisecond)

	stats := hub.GetStats()
	if stats.ActiveConnections != 0 {
		t.Errorf("ActiveConnections = %d, want 0", stats.ActiveConnections)
	}

	// Fan-out to a disconnected recipient is skipped silently.
	hub.BroadcastToMatching(model.RoleList{"STAFF"}, []byte(`{}`))
	time.Sleep(50 * time.Millisecond)

	if got := hub.GetStats().TotalMessagesSent; got != 0 {
		t.Errorf("TotalMessagesSent = %d, want 0", got)
	}
}

func TestHubMaxConnections(t *testing.T) {
	logger := &testLogger{}
	hub := NewHub(logger, 1)

	go hub.Run()
	defer hub.Shutdown(context.Background())

	first := newTestConnection(hub, "user1", "STAFF")
	second := newTestConnection(hub, "user2", "STAFF")

	hub.register <- first
	time.Sleep(50 * time.Millisecond)
	if hub.GetStats().ActiveConnections != 1 {
		t.Fatal("first connection should be registered")
	}

	// Second register exceeds the limit; the hub rejects and closes it.
	hub.register <- second
	time.Sleep(50 * time.Millisecond)

	if got := hub.GetStats().ActiveConnections; got != 1 {
		t.Errorf("ActiveConnections = %d, want 1", got)
	}
	select {
	case <-second.done:
		// Expected: rejected connection is closed
	default:
		t.Error("rejected connection should be closed")
	}
}
