package scope

import (
	"context"
	"fmt"
	"time"

	"inbox-srv/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// TokenExpirationDuration is the default JWT token expiration (1 week).
	TokenExpirationDuration = time.Hour * 24 * 7
)

// Verify verifies the JWT token and returns the payload if valid.
func (m *implManager) Verify(token string) (Payload, error) {
	if token == "" {
		return Payload{}, fmt.Errorf("%w: token is empty", ErrInvalidToken)
	}
	keyFunc := func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method: %v", ErrInvalidToken, t.Header["alg"])
		}
		return []byte(m.secretKey), nil
	}
	jwtToken, err := jwt.ParseWithClaims(token, &Payload{}, keyFunc)
	if err != nil {
		return Payload{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !jwtToken.Valid {
		return Payload{}, fmt.Errorf("%w: token is not valid", ErrInvalidToken)
	}
	payload, ok := jwtToken.Claims.(*Payload)
	if !ok {
		return Payload{}, fmt.Errorf("%w: failed to parse claims", ErrInvalidToken)
	}
	return *payload, nil
}

// CreateToken creates a new JWT token with the given payload.
func (m *implManager) CreateToken(payload Payload) (string, error) {
	now := time.Now()
	payload.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   payload.Subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpirationDuration)),
		NotBefore: jwt.NewNumericDate(now),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	return token.SignedString([]byte(m.secretKey))
}

// NewScope builds model.Scope from Payload.
func NewScope(payload Payload) model.Scope {
	return model.Scope{
		UserID:   payload.Subject,
		Username: payload.Username,
		Role:     payload.Role,
	}
}

// SetPayloadToContext attaches Payload to context.
func SetPayloadToContext(ctx context.Context, payload Payload) context.Context {
	return context.WithValue(ctx, PayloadCtxKey{}, payload)
}

// GetPayloadFromContext returns Payload from context.
func GetPayloadFromContext(ctx context.Context) (Payload, bool) {
	payload, ok := ctx.Value(PayloadCtxKey{}).(Payload)
	return payload, ok
}

// GetScopeFromContext builds model.Scope from the payload in context.
func GetScopeFromContext(ctx context.Context) (model.Scope, bool) {
	payload, ok := GetPayloadFromContext(ctx)
	if !ok {
		return model.Scope{}, false
	}
	return NewScope(payload), true
}
