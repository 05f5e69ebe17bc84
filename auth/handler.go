package auth

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/duckcreek/farmstore/app/api"
	"github.com/duckcreek/farmstore/models"
	"github.com/duckcreek/farmstore/session"
)

// AdminCredential is the configured local admin login. The identifier is one
// configured identity among possibly many, not a literal baked into the
// handler.
type AdminCredential struct {
	ID           string
	Username     string
	PasswordHash string
	Email        string
}

// UserStore is the subset of the users repository the handlers need.
type UserStore interface {
	UserLookup
	UpsertUser(user *models.User) error
}

// Handler serves the login, logout and current-user endpoints.
type Handler struct {
	sessions session.Store
	users    UserStore
	resolver Resolver
	admin    AdminCredential
	ttl      time.Duration
}

func NewHandler(sessions session.Store, users UserStore, resolver Resolver, admin AdminCredential, ttl time.Duration) *Handler {
	return &Handler{
		sessions: sessions,
		users:    users,
		resolver: resolver,
		admin:    admin,
		ttl:      ttl,
	}
}

// HandleAdminLogin checks the posted credentials against the configured
// admin identity and establishes a session on success. The admin user row is
// upserted on every successful login.
func (h *Handler) HandleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		api.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	usernameOK := subtle.ConstantTimeCompare([]byte(input.Username), []byte(h.admin.Username)) == 1
	passwordErr := bcrypt.CompareHashAndPassword([]byte(h.admin.PasswordHash), []byte(input.Password))
	if !usernameOK || passwordErr != nil {
		api.WriteUnauthorized(w)
		return
	}

	user := &models.User{
		ID:      h.admin.ID,
		Email:   h.admin.Email,
		IsAdmin: true,
	}
	if err := h.users.UpsertUser(user); err != nil {
		api.WriteInternalError(w, err)
		return
	}

	sess, err := h.sessions.Create(r.Context(), user.ID)
	if err != nil {
		api.WriteInternalError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   int(h.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	api.WriteJSON(w, http.StatusOK, user)
}

// HandleGetUser returns the current identity resolved by the chain, or 401.
func (h *Handler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	identity, err := h.resolver.Resolve(r)
	if err != nil {
		if !errors.Is(err, ErrNoIdentity) {
			api.WriteInternalError(w, err)
			return
		}
		api.WriteUnauthorized(w)
		return
	}
	api.WriteJSON(w, http.StatusOK, identity)
}

// HandleLogout destroys the session behind the cookie, if any, and clears
// the cookie either way. A store failure is logged, not surfaced: the client
// must always leave without its cookie.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil {
			log.Printf("auth: deleting session on logout: %v", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	api.WriteJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}
