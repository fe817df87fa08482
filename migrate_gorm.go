// Usage: go run migrate_gorm.go
// Connects, runs AutoMigrate for all models and pings the database.

//go:build ignore

package main

import (
	"log"

	"github.com/campushub/campus-hub-api/config"
	"github.com/campushub/campus-hub-api/database"
)

func main() {
	if err := config.LoadENV(); err != nil {
		log.Fatal("Failed to load environment variables:", err)
	}

	store, err := database.StartGORM()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	if err := store.HealthCheck(); err != nil {
		log.Fatal("Database health check failed:", err)
	}

	log.Println("All migrations completed successfully")
}
