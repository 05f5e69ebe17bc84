package auth

import (
	"errors"
	"net/http"

	"github.com/duckcreek/farmstore/app/api"
)

// Gate wraps admin-only handlers. A request passes when the resolver chain
// produces an admin identity; everything else collapses to one uniform 401
// with no hint of which check failed.
type Gate struct {
	resolver Resolver
}

func NewGate(resolver Resolver) *Gate {
	return &Gate{resolver: resolver}
}

// RequireAdmin allows only admin identities through, placing the identity on
// the request context for downstream handlers.
func (g *Gate) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, err := g.resolver.Resolve(r)
		if err != nil {
			if !errors.Is(err, ErrNoIdentity) {
				api.WriteInternalError(w, err)
				return
			}
			api.WriteUnauthorized(w)
			return
		}
		if !identity.IsAdmin {
			api.WriteUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}
