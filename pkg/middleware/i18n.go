package middleware

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"

	"github.com/mnicoli13/programmazione-web-2/pkg/application"
	"github.com/mnicoli13/programmazione-web-2/pkg/intl"
)

// ProvideLocalizer builds a request localizer from the Accept-Language
// header, falling back to the bundle default (Italian).
func ProvideLocalizer(app application.Application) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accept := r.Header.Get("Accept-Language")
			localizer := i18n.NewLocalizer(app.Bundle(), accept)
			next.ServeHTTP(w, r.WithContext(intl.WithLocalizer(r.Context(), localizer)))
		})
	}
}
