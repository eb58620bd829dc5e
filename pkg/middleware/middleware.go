package middleware

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/rs/cors"

	"github.com/mnicoli13/programmazione-web-2/pkg/composables"
	"github.com/mnicoli13/programmazione-web-2/pkg/configuration"
	"github.com/mnicoli13/programmazione-web-2/pkg/constants"
)

// Provide attaches a static value to every request context.
func Provide(key constants.ContextKey, value interface{}) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), key, value)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithDB makes the database handle available to repositories through the
// request context.
func WithDB(db *sqlx.DB) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(composables.WithDB(r.Context(), db)))
		})
	}
}

// RequestParams collects per-request metadata (IP, user agent, writer)
// used by services further down the stack.
func RequestParams() mux.MiddlewareFunc {
	conf := configuration.Use()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			params := &composables.Params{
				IP:        getRealIP(r, conf),
				UserAgent: r.UserAgent(),
				Request:   r,
				Writer:    w,
			}
			next.ServeHTTP(w, r.WithContext(composables.WithParams(r.Context(), params)))
		})
	}
}

// Cors restricts cross-origin calls to the configured origins.
func Cors(allowedOrigins ...string) mux.MiddlewareFunc {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})
	return c.Handler
}
