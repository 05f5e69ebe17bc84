// Package session stores server-side login sessions.
//
// Two implementations back the same interface: an in-memory store for single
// instance deployments and a Redis store for anything that needs sessions to
// survive a restart. Tokens are opaque UUIDs handed to the browser in an
// HttpOnly cookie; everything the session knows lives server-side.
package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a session token is unknown or expired.
var ErrNotFound = errors.New("session not found")

// Session is the server-side state bound to one login.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Store persists sessions for the lifetime of a login.
type Store interface {
	// Create registers a new session for the user and returns its token.
	Create(ctx context.Context, userID string) (*Session, error)
	// Get resolves a token to its session, or ErrNotFound.
	Get(ctx context.Context, token string) (*Session, error)
	// Delete removes a session. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
	// Close releases store resources.
	Close() error
}

func newToken() string {
	return uuid.NewString()
}
