package websocket

import (
	"encoding/json"
	"time"
)

// EventType identifies the logical kind of a pushed event.
type EventType string

const (
	// EventNotificationNew is the canonical event for a newly created
	// notification. The server only ever emits this name.
	EventNotificationNew EventType = "notification:new"

	// EventNotificationNewLegacy is the pre-rename alias still emitted by
	// older deployments. Clients must treat it as EventNotificationNew.
	EventNotificationNewLegacy EventType = "newNotification"
)

// Message is the envelope sent over the live channel.
type Message struct {
	Type      EventType       `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewMessage creates a new message with the given type and payload.
func NewMessage(eventType EventType, payload any) (*Message, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Message{
		Type:      eventType,
		Payload:   payloadBytes,
		Timestamp: time.Now(),
	}, nil
}

// ToJSON converts the message to JSON bytes.
func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// FromJSON creates a message from JSON bytes.
func FromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// Validate validates the message structure.
func (m *Message) Validate() error {
	if m.Type == "" {
		return ErrInvalidMessage
	}
	if m.Payload == nil {
		return ErrInvalidMessage
	}
	return nil
}

// HubStats represents hub statistics.
type HubStats struct {
	ActiveConnections     int   `json:"active_connections"`
	TotalUniqueUsers      int   `json:"total_unique_users"`
	TotalMessagesSent     int64 `json:"total_messages_sent"`
	TotalMessagesReceived int64 `json:"total_messages_received"`
	TotalMessagesFailed   int64 `json:"total_messages_failed"`
}
