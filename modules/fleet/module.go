package fleet

import (
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/infrastructure/persistence"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/presentation/controllers"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet/services"
	"github.com/mnicoli13/programmazione-web-2/pkg/application"
)

type Module struct{}

func NewModule() application.Module {
	return &Module{}
}

func (m *Module) Name() string {
	return "fleet"
}

func (m *Module) Register(app application.Application) error {
	app.RegisterServices(
		services.NewTableService(
			persistence.NewTableRepository(),
			persistence.NewStatsRepository(),
		),
		services.NewVeicoloService(
			persistence.NewVeicoloRepository(),
			app.EventPublisher(),
		),
	)
	app.RegisterControllers(
		controllers.NewTableController(app),
		controllers.NewVeicoliController(app),
		controllers.NewPagesController(app),
	)
	return nil
}
