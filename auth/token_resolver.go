package auth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/duckcreek/farmstore/models"
)

// TokenResolver authenticates via an externally issued bearer token. The
// token must be signed with the shared secret, carry the expected issuer, be
// unexpired, and name an allow-listed subject. It is the second link of the
// chain; any defect in the token resolves to ErrNoIdentity so the caller
// sees the same denial as a missing session.
//
// A successful validation is an authentication event: the claims-derived
// user row is upserted so entities authored under this identity (blog posts)
// reference a persisted User.
type TokenResolver struct {
	issuer   string
	secret   []byte
	subjects map[string]struct{}
	users    UserStore
}

func NewTokenResolver(issuer, secret string, allowedSubjects []string, users UserStore) *TokenResolver {
	subjects := make(map[string]struct{}, len(allowedSubjects))
	for _, s := range allowedSubjects {
		subjects[s] = struct{}{}
	}
	return &TokenResolver{
		issuer:   issuer,
		secret:   []byte(secret),
		subjects: subjects,
		users:    users,
	}
}

type tokenClaims struct {
	Email     string `json:"email,omitempty"`
	FirstName string `json:"given_name,omitempty"`
	LastName  string `json:"family_name,omitempty"`
	jwt.RegisteredClaims
}

func (t *TokenResolver) Resolve(r *http.Request) (*Identity, error) {
	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || raw == "" {
		return nil, ErrNoIdentity
	}
	if len(t.secret) == 0 {
		// External tokens are disabled when no secret is configured.
		return nil, ErrNoIdentity
	}

	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrNoIdentity
	}

	if _, allowed := t.subjects[claims.Subject]; !allowed {
		return nil, ErrNoIdentity
	}

	if err := t.users.UpsertUser(&models.User{
		ID:        claims.Subject,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		IsAdmin:   true,
	}); err != nil {
		return nil, err
	}

	return &Identity{
		UserID:    claims.Subject,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		IsAdmin:   true,
	}, nil
}
