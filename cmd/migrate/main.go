package main

import (
	"estatehub/internal/config" // Custom import path (Config)
	"estatehub/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration
	db.Migrate(cfg.DSN())
}
