package main

import (
	"log"

	"knagent-be/internal/config"
	"knagent-be/pkg/database"
)

func main() {
	// 1. Load Environment Variables
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// 3. Tables, pgvector extension and the cosine index
	log.Printf("Running AutoMigrate (%s)...", db.Dialector.Name())
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	log.Println("Success: Database migration completed.")
}
