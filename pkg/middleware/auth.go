package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/gorilla/mux"

	"github.com/mnicoli13/programmazione-web-2/pkg/composables"
	"github.com/mnicoli13/programmazione-web-2/pkg/configuration"
)

// Authenticator resolves a session token to a user-bearing context. It is
// implemented by the core auth service.
type Authenticator interface {
	Authorize(ctx context.Context, token string) (context.Context, error)
}

// Authorize resolves the session cookie, if any, and marks the request
// authenticated. It never rejects: gating is left to
// RedirectNotAuthenticated / RequireAuthenticated.
func Authorize(auth Authenticator) mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			cookie, err := r.Cookie(conf.SidCookieKey)
			if err == nil && cookie.Value != "" {
				if authCtx, err := auth.Authorize(ctx, cookie.Value); err == nil {
					ctx = authCtx
					if params, ok := composables.UseParams(ctx); ok {
						params.Authenticated = true
					}
				}
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RedirectNotAuthenticated sends anonymous page requests to the login
// page, preserving the original URL for the post-login redirect.
func RedirectNotAuthenticated() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !composables.UseAuthenticated(r.Context()) {
				nextURL := url.QueryEscape(r.URL.RequestURI())
				http.Redirect(w, r, "/login?next="+nextURL, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuthenticated is the JSON counterpart for the API surface.
func RequireAuthenticated() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !composables.UseAuthenticated(r.Context()) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"status":  "error",
					"message": "Autenticazione richiesta",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
