// Package auth guards admin operations behind a binary allow/deny gate.
//
// Two authority sources are consulted in a fixed order: the server-side
// session store first, then an externally issued bearer token. Each source is
// a Resolver; the chain returns the first identity that resolves. The caller
// never learns which source failed or why — the gate answers with one uniform
// denial.
package auth

import (
	"context"
	"errors"
	"net/http"
)

// ErrNoIdentity is returned when no resolver in the chain produced an
// identity.
var ErrNoIdentity = errors.New("no identity")

// Identity is an authenticated caller.
type Identity struct {
	UserID    string `json:"id"`
	Email     string `json:"email,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	IsAdmin   bool   `json:"isAdmin"`
}

// Resolver attempts to authenticate a request from one authority source.
// Returning ErrNoIdentity means "not mine, try the next source"; any other
// error aborts the chain.
type Resolver interface {
	Resolve(r *http.Request) (*Identity, error)
}

// Chain tries each resolver in order and returns the first success.
type Chain []Resolver

func (c Chain) Resolve(r *http.Request) (*Identity, error) {
	for _, resolver := range c {
		identity, err := resolver.Resolve(r)
		if err == nil {
			return identity, nil
		}
		if !errors.Is(err, ErrNoIdentity) {
			return nil, err
		}
	}
	return nil, ErrNoIdentity
}

type contextKey struct{}

// WithIdentity stores the identity on the request context.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, identity)
}

// IdentityFrom returns the identity placed on the context by the gate, if
// any.
func IdentityFrom(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(contextKey{}).(*Identity)
	return identity, ok
}
