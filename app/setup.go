package app

import (
	"fmt"

	"github.com/campushub/campus-hub-api/api"
	"github.com/campushub/campus-hub-api/config"
	"github.com/campushub/campus-hub-api/database"
	"github.com/campushub/campus-hub-api/router"
	"github.com/campushub/campus-hub-api/services/cron"
)

func SetupAndRunServer() error {
	// Load ENV
	if err := config.LoadENV(); err != nil {
		return err
	}

	getEnv, err := config.Get()
	if err != nil {
		return err
	}

	// Initialize GORM database connection
	store, err := database.StartGORM()
	if err != nil {
		print("Check whether Postgres is running\n")
		return err
	}

	if err := store.Init(); err != nil {
		print("Failed to initialize database tables\n")
		return err
	}

	// Seed demo data on an empty database
	if err := database.NewSeeder(store.GetDB()).SeedIfEmpty(); err != nil {
		return err
	}

	// Background jobs, enabled by default
	var cronManager *cron.Manager
	if getEnv.CRON_ENABLED {
		cronManager = cron.NewManager(store.GetDB())
		if err := cronManager.Start(); err != nil {
			print("Warning: failed to start cron jobs: ", err.Error(), "\n")
		}
	}

	defer func() {
		if cronManager != nil {
			cronManager.Stop()
		}
		store.Close()
	}()

	// Init API
	server := api.NewAPIServer(fmt.Sprintf(":%d", getEnv.PORT))
	app := server.GetEngine()

	// Setup Routes
	router.SetupRoutes(app, store)

	return server.Run()
}
