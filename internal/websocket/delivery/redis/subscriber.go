package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"inbox-srv/internal/model"
	ws "inbox-srv/internal/websocket"
	"inbox-srv/pkg/log"
	pkgRedis "inbox-srv/pkg/redis"
)

// Broadcaster is the hub-side sink for decoded notification events.
type Broadcaster interface {
	BroadcastToMatching(roles model.RoleList, data []byte)
}

// Subscriber handles Redis Pub/Sub subscriptions and routes
// notification-created events to the Hub.
type Subscriber struct {
	client *pkgRedis.Client
	hub    Broadcaster
	logger log.Logger

	pubsub  *goredis.PubSub
	channel string

	// Context for shutdown
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	// Reconnection settings
	maxRetries int
	retryDelay time.Duration

	// Health tracking
	mu            sync.RWMutex
	lastMessageAt time.Time
	isActive      atomic.Bool
}

// NewSubscriber creates a new Redis subscriber.
func NewSubscriber(client *pkgRedis.Client, hub Broadcaster, logger log.Logger) *Subscriber {
	ctx, cancel := context.WithCancel(context.Background())

	return &Subscriber{
		client:     client,
		hub:        hub,
		logger:     logger,
		channel:    ChannelInboxNotify,
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
		maxRetries: 10,
		retryDelay: 5 * time.Second,
	}
}

// Start starts the Redis subscriber.
func (s *Subscriber) Start() error {
	s.pubsub = s.client.Client.Subscribe(s.ctx, s.channel)
	s.isActive.Store(true)

	s.logger.Infof(s.ctx, "Redis subscriber started, listening on channel: %s", s.channel)

	go s.listen()
	return nil
}

// listen listens for messages from Redis and routes them to the Hub.
func (s *Subscriber) listen() {
	defer close(s.done)

	ch := s.pubsub.Channel()

	for {
		select {
		case <-s.ctx.Done():
			s.logger.Info(context.Background(), "Redis subscriber shutting down...")
			return

		case msg, ok := <-ch:
			if !ok {
				s.logger.Error(s.ctx, "Redis pub/sub channel closed, attempting to reconnect...")
				if err := s.reconnect(); err != nil {
					s.logger.Errorf(s.ctx, "Failed to reconnect to Redis: %v", err)
					return
				}
				ch = s.pubsub.Channel()
				continue
			}

			s.handleMessage([]byte(msg.Payload))
		}
	}
}

// handleMessage decodes a published event and fans it out to matching
// sessions. Malformed payloads are ignored; they must never fail the
// delivery pipeline.
func (s *Subscriber) handleMessage(payload []byte) {
	s.mu.Lock()
	s.lastMessageAt = time.Now()
	s.mu.Unlock()

	msg, err := ws.FromJSON(payload)
	if err != nil {
		s.logger.Warnf(s.ctx, "Ignoring malformed pub/sub payload: %v", err)
		return
	}
	if err := msg.Validate(); err != nil {
		s.logger.Warnf(s.ctx, "Ignoring invalid pub/sub message: %v", err)
		return
	}
	if msg.Type != ws.EventNotificationNew {
		s.logger.Debugf(s.ctx, "Skipping pub/sub message of type %s", msg.Type)
		return
	}

	var n model.Notification
	if err := json.Unmarshal(msg.Payload, &n); err != nil {
		s.logger.Warnf(s.ctx, "Ignoring undecodable notification payload: %v", err)
		return
	}
	if len(n.RecipientRoles) == 0 {
		// Tolerant RoleList decoding maps malformed role lists to empty;
		// an unaddressed notification matches nobody.
		s.logger.Warnf(s.ctx, "Notification %s has no recipient roles, skipping fan-out", n.ID)
		return
	}

	// Forward the original envelope so every session sees the same bytes.
	s.hub.BroadcastToMatching(n.RecipientRoles, payload)

	s.logger.Debugf(s.ctx, "Routed notification %s to roles %v", n.ID, n.RecipientRoles)
}

// reconnect attempts to re-establish the pub/sub subscription.
func (s *Subscriber) reconnect() error {
	for i := 0; i < s.maxRetries; i++ {
		s.logger.Infof(s.ctx, "Reconnecting to Redis (attempt %d/%d)...", i+1, s.maxRetries)

		if s.pubsub != nil {
			s.pubsub.Close()
		}

		s.pubsub = s.client.Client.Subscribe(s.ctx, s.channel)

		if _, err := s.pubsub.Receive(s.ctx); err == nil {
			s.logger.Info(s.ctx, "Successfully reconnected to Redis")
			return nil
		}

		time.Sleep(s.retryDelay)
	}

	return fmt.Errorf("failed to reconnect to Redis after %d attempts", s.maxRetries)
}

// GetHealthInfo returns the current health info of the subscriber.
func (s *Subscriber) GetHealthInfo() (active bool, lastMessageAt time.Time, channel string) {
	s.mu.RLock()
	lastMsg := s.lastMessageAt
	s.mu.RUnlock()

	return s.isActive.Load(), lastMsg, s.channel
}

// Shutdown gracefully shuts down the subscriber.
func (s *Subscriber) Shutdown(ctx context.Context) error {
	s.isActive.Store(false)
	s.cancel()

	if s.pubsub != nil {
		if err := s.pubsub.Close(); err != nil {
			s.logger.Errorf(context.Background(), "Error closing pub/sub: %v", err)
		}
	}

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
