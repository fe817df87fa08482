package main

import (
	"log"

	"github.com/campushub/campus-hub-api/database"
	"github.com/joho/godotenv"
)

// Standalone seeder: loads the demo dataset into an empty database.
// The API server runs the same seeder on startup; this command exists
// for provisioning a database without starting the server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	store, err := database.StartGORM()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := database.NewSeeder(store.GetDB()).SeedIfEmpty(); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding completed")
}
