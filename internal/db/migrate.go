package db

import (
	"estatehub/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	gdb, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	if err := AutoMigrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}
	logrus.Info("Migration completed.")
}

// AutoMigrate creates tables, foreign keys, constraints, columns and indexes
// for every domain model.
func AutoMigrate(gdb *gorm.DB) error {
	return gdb.AutoMigrate(
		&domain.User{},
		&domain.Listing{},
		&domain.ListingImage{},
		&domain.Favorite{},
		&domain.LoanApplication{},
	)
}
