package server

import (
	"encoding/json"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/mnicoli13/programmazione-web-2/modules/core/services"
	"github.com/mnicoli13/programmazione-web-2/pkg/application"
	"github.com/mnicoli13/programmazione-web-2/pkg/configuration"
	"github.com/mnicoli13/programmazione-web-2/pkg/constants"
	"github.com/mnicoli13/programmazione-web-2/pkg/intl"
	"github.com/mnicoli13/programmazione-web-2/pkg/middleware"
	"github.com/mnicoli13/programmazione-web-2/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	DB            *sqlx.DB
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application
	authService := app.Service(services.AuthService{}).(*services.AuthService)

	app.RegisterMiddleware(
		middleware.WithLogger(options.Logger),
		middleware.Provide(constants.AppKey, app),
		middleware.WithDB(options.DB),
		middleware.Cors(options.Configuration.AllowedOrigins...),
		middleware.RequestParams(),
		middleware.Authorize(authService),
		middleware.ProvideLocalizer(app),
	)

	return server.NewHTTPServer(
		app,
		http.HandlerFunc(notFound),
		http.HandlerFunc(methodNotAllowed),
	), nil
}

func notFound(w http.ResponseWriter, r *http.Request) {
	writeErrorStatus(w, r, http.StatusNotFound, "Errors.NotFound")
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeErrorStatus(w, r, http.StatusMethodNotAllowed, "Errors.MethodNotAllowed")
}

func writeErrorStatus(w http.ResponseWriter, r *http.Request, status int, msgID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "error",
		"message": intl.MustT(r.Context(), msgID),
	})
}
