package main

import (
	"context" // Context for seeding

	"pooltable_tracker/internal/config" // Custom import path (Config)
	"pooltable_tracker/internal/db"     // Custom import path (Database)
	"pooltable_tracker/internal/store"  // Custom import path (Store)

	"github.com/sirupsen/logrus" // Logging
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	if cfg.SeedFixtures {
		if err := db.Seed(context.Background(), store.NewGormStore(gdb), cfg.BcryptCost); err != nil {
			logrus.Fatalf("seeding failed: %v", err)
		}
	}
}
