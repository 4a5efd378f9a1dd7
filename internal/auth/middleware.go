package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/isdelr/chroniclex-be/internal/apperr"
	"github.com/rs/zerolog/log"
)

// TokenResolver turns a token key into the actor that owns it.
type TokenResolver interface {
	ResolveToken(ctx context.Context, key string) (*Actor, error)
}

// ErrorWriter renders an error response.
type ErrorWriter func(w http.ResponseWriter, r *http.Request, err error)

// Middleware resolves the Authorization header once per request and stores the
// actor on the request context. Requests without the header continue as
// anonymous; a malformed header or an unknown token is rejected with 401.
func Middleware(resolver TokenResolver, writeError ErrorWriter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			key, ok := ParseAuthorization(header)
			if !ok {
				writeError(w, r, fmt.Errorf("%w: invalid token header", apperr.ErrAuthentication))
				return
			}

			actor, err := resolver.ResolveToken(r.Context(), key)
			if err != nil {
				log.Warn().Err(err).Str("path", r.URL.Path).Msg("Rejected request with invalid token")
				writeError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}
