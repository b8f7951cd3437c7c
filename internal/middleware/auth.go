package middleware

import (
	"net/http"
	"strings"

	"github.com/dukerupert/flexidiet/internal/auth"
)

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(raw string) (auth.AuthContext, error)
}

// RequireAuth validates the bearer token and populates AuthContext.
func RequireAuth(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", `Bearer realm="flexidiet"`)
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			ac, err := tokens.Parse(raw)
			if err != nil {
				w.Header().Set("WWW-Authenticate", `Bearer realm="flexidiet", error="invalid_token"`)
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := auth.WithAuth(r.Context(), ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin checks that the authenticated user has the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !auth.IsAdmin(r.Context()) {
			writeError(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearerToken reads the Authorization header, or the access_token query
// parameter for websocket clients that cannot set headers.
func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
		token = strings.TrimSpace(token)
		return token, token != ""
	}
	if r.URL.Path == "/ws" {
		if token := r.URL.Query().Get("access_token"); token != "" {
			return token, true
		}
	}
	return "", false
}
