package application

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"reflect"

	"github.com/benbjohnson/hashfs"
	"github.com/gorilla/mux"
	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"

	"github.com/mnicoli13/programmazione-web-2/pkg/eventbus"
)

// Controller is the unit of routing: every page and API surface
// implements it and registers its own routes.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module wires a vertical slice (services, controllers, locale files)
// into the application.
type Module interface {
	Name() string
	Register(app Application) error
}

type Application interface {
	DB() *sqlx.DB
	Logger() *logrus.Logger
	EventPublisher() eventbus.EventBus
	Bundle() *i18n.Bundle
	Controllers() []Controller
	Middleware() []mux.MiddlewareFunc
	HashFsAssets() []*hashfs.FS
	RegisterControllers(controllers ...Controller)
	RegisterMiddleware(middleware ...mux.MiddlewareFunc)
	RegisterHashFsAssets(fs ...*hashfs.FS)
	RegisterLocaleFiles(fs ...*embed.FS)
	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
}

type ApplicationOptions struct {
	DB       *sqlx.DB
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
	Bundle   *i18n.Bundle
}

// LoadBundle builds the i18n bundle; Italian is the fallback language,
// matching the audience of the original system.
func LoadBundle() *i18n.Bundle {
	bundle := i18n.NewBundle(language.Italian)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	return bundle
}

func New(opts *ApplicationOptions) Application {
	return &application{
		db:             opts.DB,
		logger:         opts.Logger,
		eventPublisher: opts.EventBus,
		bundle:         opts.Bundle,
		controllers:    make(map[string]Controller),
		services:       make(map[reflect.Type]interface{}),
	}
}

// Load registers every module in order, failing fast on the first error.
func Load(app Application, modules ...Module) error {
	for _, m := range modules {
		if err := m.Register(app); err != nil {
			return fmt.Errorf("failed to load module %s: %w", m.Name(), err)
		}
	}
	return nil
}

// application with a dynamically extendable service registry
type application struct {
	db             *sqlx.DB
	logger         *logrus.Logger
	eventPublisher eventbus.EventBus
	services       map[reflect.Type]interface{}
	controllers    map[string]Controller
	middleware     []mux.MiddlewareFunc
	hashFsAssets   []*hashfs.FS
	bundle         *i18n.Bundle
}

func (app *application) DB() *sqlx.DB {
	return app.db
}

func (app *application) Logger() *logrus.Logger {
	return app.logger
}

func (app *application) EventPublisher() eventbus.EventBus {
	return app.eventPublisher
}

func (app *application) Bundle() *i18n.Bundle {
	return app.bundle
}

func (app *application) Middleware() []mux.MiddlewareFunc {
	return app.middleware
}

func (app *application) Controllers() []Controller {
	controllers := make([]Controller, 0, len(app.controllers))
	for _, c := range app.controllers {
		controllers = append(controllers, c)
	}
	return controllers
}

func (app *application) HashFsAssets() []*hashfs.FS {
	return app.hashFsAssets
}

func (app *application) RegisterControllers(controllers ...Controller) {
	for _, c := range controllers {
		app.controllers[c.Key()] = c
	}
}

func (app *application) RegisterMiddleware(middleware ...mux.MiddlewareFunc) {
	app.middleware = append(app.middleware, middleware...)
}

func (app *application) RegisterHashFsAssets(fs ...*hashfs.FS) {
	app.hashFsAssets = append(app.hashFsAssets, fs...)
}

func (app *application) RegisterLocaleFiles(fsList ...*embed.FS) {
	for _, localeFs := range fsList {
		err := fs.WalkDir(localeFs, ".", func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			localeFile, err := localeFs.ReadFile(path)
			if err != nil {
				return err
			}
			app.bundle.MustParseMessageFileBytes(localeFile, filepath.Base(path))
			return nil
		})
		if err != nil {
			panic(err)
		}
	}
}

// RegisterServices registers a new service in the application by its type
func (app *application) RegisterServices(services ...interface{}) {
	for _, service := range services {
		serviceType := reflect.TypeOf(service).Elem()
		app.services[serviceType] = service
	}
}

// Service retrieves a service by its type
func (app *application) Service(service interface{}) interface{} {
	serviceType := reflect.TypeOf(service)
	svc, exists := app.services[serviceType]
	if !exists {
		panic(fmt.Sprintf("service %s not found", serviceType.Name()))
	}
	return svc
}
