package core

import (
	"embed"

	"github.com/mnicoli13/programmazione-web-2/modules/core/infrastructure/persistence"
	"github.com/mnicoli13/programmazione-web-2/modules/core/presentation/controllers"
	"github.com/mnicoli13/programmazione-web-2/modules/core/services"
	"github.com/mnicoli13/programmazione-web-2/pkg/application"
)

//go:embed presentation/locales/*.json
var LocaleFiles embed.FS

type Module struct{}

func NewModule() application.Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "core"
}

func (m *Module) Register(app application.Application) error {
	authService := services.NewAuthService(
		persistence.NewUserRepository(),
		persistence.NewSessionRepository(),
		app.EventPublisher(),
	)
	app.RegisterServices(authService)
	app.RegisterControllers(
		controllers.NewAuthController(app),
		controllers.NewLoginController(app),
	)
	app.RegisterLocaleFiles(&LocaleFiles)
	return nil
}
