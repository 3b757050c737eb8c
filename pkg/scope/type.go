package scope

import "github.com/golang-jwt/jwt/v5"

// Payload represents the JWT token claims carried by a session credential.
type Payload struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Role     string `json:"role"`
}

// UserID returns the subject (user ID) of the payload.
func (p Payload) UserID() string {
	return p.Subject
}

type implManager struct {
	secretKey string
}

// PayloadCtxKey is the context key for the verified payload.
type PayloadCtxKey struct{}
