package main

import (
	"log"
	"os"
	"runtime/debug"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	internalassets "github.com/mnicoli13/programmazione-web-2/internal/assets"
	"github.com/mnicoli13/programmazione-web-2/internal/server"
	"github.com/mnicoli13/programmazione-web-2/modules/core"
	corecontrollers "github.com/mnicoli13/programmazione-web-2/modules/core/presentation/controllers"
	"github.com/mnicoli13/programmazione-web-2/modules/fleet"
	"github.com/mnicoli13/programmazione-web-2/pkg/application"
	"github.com/mnicoli13/programmazione-web-2/pkg/configuration"
	"github.com/mnicoli13/programmazione-web-2/pkg/eventbus"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	db, err := sqlx.Connect("postgres", conf.Database.Opts)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	app := application.New(&application.ApplicationOptions{
		DB:       db,
		EventBus: eventbus.NewEventPublisher(logger),
		Logger:   logger,
		Bundle:   application.LoadBundle(),
	})
	if err := application.Load(app, core.NewModule(), fleet.NewModule()); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}

	app.RegisterHashFsAssets(internalassets.HashFS)
	app.RegisterControllers(
		corecontrollers.NewStaticFilesController(app.HashFsAssets()),
	)

	serverInstance, err := server.Default(&server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		DB:            db,
	})
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	log.Printf("Listening on: %s\n", conf.Origin)
	if err := serverInstance.Start(conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
