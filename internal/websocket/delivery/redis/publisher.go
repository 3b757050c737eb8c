package redis

import (
	"context"
	"fmt"

	"inbox-srv/internal/model"
	ws "inbox-srv/internal/websocket"
	"inbox-srv/pkg/log"
	pkgRedis "inbox-srv/pkg/redis"
)

// ChannelInboxNotify is the pub/sub channel carrying notification-created
// events between server instances.
const ChannelInboxNotify = "inbox:notify"

// Publisher fans created notifications out through Redis pub/sub so every
// server instance can deliver them to its own connected sessions.
type Publisher struct {
	client *pkgRedis.Client
	logger log.Logger
}

// NewPublisher creates a new Redis publisher.
func NewPublisher(client *pkgRedis.Client, logger log.Logger) *Publisher {
	return &Publisher{
		client: client,
		logger: logger,
	}
}

// Publish emits the canonical notification-created event.
func (p *Publisher) Publish(ctx context.Context, n model.Notification) error {
	msg, err := ws.NewMessage(ws.EventNotificationNew, n)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	data, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	if err := p.client.Client.Publish(ctx, ChannelInboxNotify, data).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", ChannelInboxNotify, err)
	}

	p.logger.Debugf(ctx, "Published notification %s to %s", n.ID, ChannelInboxNotify)
	return nil
}
