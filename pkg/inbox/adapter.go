package inbox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"inbox-srv/internal/model"
	ws "inbox-srv/internal/websocket"
	"inbox-srv/pkg/log"
)

// Conn is the read side of a live channel connection.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	Close() error
}

// Dialer establishes live channel connections. Injected so tests can
// substitute a fake channel.
type Dialer interface {
	DialContext(ctx context.Context, url string) (Conn, error)
}

// gorillaDialer is the default Dialer backed by gorilla/websocket.
type gorillaDialer struct{}

func (gorillaDialer) DialContext(ctx context.Context, url string) (Conn, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// AlertFunc is invoked once per newly arrived notification. Any error it
// returns is swallowed; a failed alert never disturbs the pipeline.
type AlertFunc func(n model.Notification) error

const defaultReconnectWait = 5 * time.Second

// Config configures an Adapter.
type Config struct {
	// BaseURL is the REST API base, e.g. "http://localhost:8081/api/v1".
	BaseURL string
	// WSURL is the live channel endpoint, e.g. "ws://localhost:8081/ws".
	WSURL string
	// Token is the bearer credential for both transports.
	Token string

	Dialer     Dialer
	HTTPClient *http.Client
	Alert      AlertFunc
	Logger     log.Logger

	// ReconnectWait is the delay before redialing after the live channel
	// drops. Defaults to 5s.
	ReconnectWait time.Duration
}

// Adapter bridges the live push channel and the snapshot fetch into a single
// reconciled unread view. All store access is serialized by the mutex, so the
// Store itself stays unsynchronized.
type Adapter struct {
	cfg Config

	mu    sync.Mutex
	store *Store
}

// New creates an Adapter with the given configuration.
func New(cfg Config) *Adapter {
	if cfg.Dialer == nil {
		cfg.Dialer = gorillaDialer{}
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}
	if cfg.ReconnectWait == 0 {
		cfg.ReconnectWait = defaultReconnectWait
	}
	return &Adapter{
		cfg:   cfg,
		store: NewStore(),
	}
}

// Start runs the live channel loop until ctx is cancelled. Each (re)connect
// is followed by a fresh snapshot fetch, since the push channel provides no
// replay for events missed while disconnected. Transport failures are
// absorbed: the store keeps its last known state and the loop redials.
func (a *Adapter) Start(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		conn, err := a.cfg.Dialer.DialContext(ctx, a.wsURL())
		if err != nil {
			a.logf(ctx, "live channel dial failed: %v", err)
			if !a.wait(ctx) {
				return
			}
			continue
		}

		if err := a.fetchSnapshot(ctx); err != nil {
			a.logf(ctx, "snapshot fetch failed: %v", err)
		}

		a.readLoop(ctx, conn)
		_ = conn.Close()

		if !a.wait(ctx) {
			return
		}
	}
}

func (a *Adapter) readLoop(ctx context.Context, conn Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil {
				a.logf(ctx, "live channel read failed: %v", err)
			}
			return
		}
		a.handleFrame(ctx, data)
	}
}

// handleFrame processes one live channel frame. Malformed frames are ignored
// rather than failing the pipeline.
func (a *Adapter) handleFrame(ctx context.Context, data []byte) {
	msg, err := ws.FromJSON(data)
	if err != nil {
		a.logf(ctx, "ignoring malformed frame: %v", err)
		return
	}
	if err := msg.Validate(); err != nil {
		a.logf(ctx, "ignoring invalid frame: %v", err)
		return
	}
	if canonicalEvent(msg.Type) != ws.EventNotificationNew {
		return
	}

	var n model.Notification
	if err := json.Unmarshal(msg.Payload, &n); err != nil {
		a.logf(ctx, "ignoring malformed notification payload: %v", err)
		return
	}

	a.mu.Lock()
	inserted := a.store.Merge(n)
	a.mu.Unlock()

	if inserted && a.cfg.Alert != nil {
		if err := a.cfg.Alert(n); err != nil {
			a.logf(ctx, "alert failed: %v", err)
		}
	}
}

// snapshotEnvelope mirrors the server response envelope for the inbox route.
type snapshotEnvelope struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      struct {
		Items []model.Notification `json:"items"`
		Total int                  `json:"total"`
	} `json:"data"`
}

func (a *Adapter) fetchSnapshot(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.cfg.BaseURL+"/notifications/inbox", nil)
	if err != nil {
		return err
	}
	a.authorize(req)

	resp, err := a.cfg.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("snapshot fetch returned status %d", resp.StatusCode)
	}

	var envelope snapshotEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return err
	}

	a.mu.Lock()
	a.store.ReplaceAll(envelope.Data.Items)
	a.mu.Unlock()

	return nil
}

// MarkRead marks one notification read on the server and, only after the
// server confirms, removes it locally. A failure leaves the store untouched
// so the item stays visible and retryable.
func (a *Adapter) MarkRead(ctx context.Context, id string) error {
	url := fmt.Sprintf("%s/notifications/%s/read", a.cfg.BaseURL, id)
	if err := a.post(ctx, url, nil); err != nil {
		a.logf(ctx, "mark read failed for %s: %v", id, err)
		return err
	}

	a.mu.Lock()
	a.store.RemoveOne(id)
	a.mu.Unlock()
	return nil
}

// MarkAllRead marks the given ids read in one atomic server call. An empty
// set is a no-op with zero network calls. On failure no id is cleared
// locally; partial application never happens on either side.
func (a *Adapter) MarkAllRead(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	body, err := json.Marshal(map[string][]string{"ids": ids})
	if err != nil {
		return err
	}
	if err := a.post(ctx, a.cfg.BaseURL+"/notifications/read-all", body); err != nil {
		a.logf(ctx, "mark all read failed: %v", err)
		return err
	}

	a.mu.Lock()
	a.store.RemoveAll(ids)
	a.mu.Unlock()
	return nil
}

// UnreadCount returns the badge count: the full store size, independent of
// any display cap.
func (a *Adapter) UnreadCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Len()
}

// Visible returns a copy of the first n unread notifications.
func (a *Adapter) Visible(n int) []model.Notification {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.VisibleSlice(n)
}

func (a *Adapter) post(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	a.authorize(req)

	resp, err := a.cfg.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("request to %s returned status %d", url, resp.StatusCode)
	}
	return nil
}

func (a *Adapter) authorize(req *http.Request) {
	if a.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+a.cfg.Token)
	}
}

func (a *Adapter) wsURL() string {
	if a.cfg.Token == "" {
		return a.cfg.WSURL
	}
	return a.cfg.WSURL + "?token=" + a.cfg.Token
}

func (a *Adapter) wait(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(a.cfg.ReconnectWait):
		return true
	}
}

func (a *Adapter) logf(ctx context.Context, format string, args ...any) {
	if a.cfg.Logger == nil {
		return
	}
	a.cfg.Logger.Warnf(ctx, format, args...)
}
