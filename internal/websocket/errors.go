package websocket

import "errors"

var (
	// ErrInvalidToken is returned when the session credential is invalid
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrMissingToken is returned when the session credential is missing
	ErrMissingToken = errors.New("missing token")

	// ErrInvalidMessage is returned when the message format is invalid
	ErrInvalidMessage = errors.New("invalid message format")

	// ErrMaxConnectionsReached is returned when max connections limit is reached
	ErrMaxConnectionsReached = errors.New("maximum connections reached")
)
