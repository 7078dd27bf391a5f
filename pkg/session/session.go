// Package session carries the authenticated backend session. It is passed
// explicitly to every operation that needs authentication; there is no
// ambient token storage.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNoToken is returned when a session is constructed without a token.
var ErrNoToken = errors.New("session token must not be empty")

// Session identifies one authenticated kiosk boot.
type Session struct {
	Token     string
	KioskID   uuid.UUID
	StartedAt time.Time
}

// New creates a session for a freshly acquired token.
func New(token string) (*Session, error) {
	if token == "" {
		return nil, ErrNoToken
	}
	return &Session{
		Token:     token,
		KioskID:   uuid.New(),
		StartedAt: time.Now(),
	}, nil
}
