package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/storeratings/storeratings/internal/auth"
)

type contextKey struct{ name string }

var identityKey = &contextKey{"identity"}

// authGate verifies the bearer token and attaches the caller's identity and
// role to the request context. Role checks, where any exist, belong to the
// individual handlers.
func (s *Server) authGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, prefix))

		identity, err := s.issuer.Verify(token)
		if err != nil {
			s.respondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing or invalid authentication information")
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// identityFrom returns the verified identity stored by authGate.
func identityFrom(ctx context.Context) (auth.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(auth.Identity)
	return identity, ok
}
