package auth

import (
	"errors"
	"net/http"

	"github.com/duckcreek/farmstore/models"
	"github.com/duckcreek/farmstore/session"
)

// SessionCookie is the name of the session token cookie.
const SessionCookie = "farmstore_session"

// UserLookup resolves a session's user id to its stored user row.
type UserLookup interface {
	GetByID(id string) (*models.User, error)
}

// SessionResolver authenticates via the session cookie and store. It is the
// first link of the chain.
type SessionResolver struct {
	store session.Store
	users UserLookup
}

func NewSessionResolver(store session.Store, users UserLookup) *SessionResolver {
	return &SessionResolver{
		store: store,
		users: users,
	}
}

func (s *SessionResolver) Resolve(r *http.Request) (*Identity, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoIdentity
	}

	sess, err := s.store.Get(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, ErrNoIdentity
		}
		return nil, err
	}

	user, err := s.users.GetByID(sess.UserID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, ErrNoIdentity
		}
		return nil, err
	}

	return &Identity{
		UserID:    user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		IsAdmin:   user.IsAdmin,
	}, nil
}
