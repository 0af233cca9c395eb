// database.go - Handles database connection, migration and admin seeding

package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/SeniduRavihara/usj-event-calendar/auth"
	"github.com/SeniduRavihara/usj-event-calendar/config"
	"github.com/SeniduRavihara/usj-event-calendar/models"
)

var DB *gorm.DB

// Connect opens the postgres database, runs migrations and seeds the
// bootstrap admin account when configured.
func Connect(cfg *config.Config) error {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	DB = db

	if err := seedAdmin(db, cfg); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	log.Println("✅ Database connected and migrated successfully")
	return nil
}

// Migrate creates or updates the schema for all models. Tests call this
// directly against their own throwaway database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Event{})
}

// seedAdmin creates a default ADMIN user when CREATE_ADMIN is set and no
// admin exists yet. Registration only ever produces STUDENT accounts, so a
// fresh deployment needs this to get its first admin.
func seedAdmin(db *gorm.DB, cfg *config.Config) error {
	if !cfg.CreateAdmin {
		return nil
	}
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return fmt.Errorf("CREATE_ADMIN is set but ADMIN_EMAIL or ADMIN_PASSWORD is missing")
	}

	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:     cfg.AdminName,
		Email:    cfg.AdminEmail,
		Password: hash,
		Role:     models.RoleAdmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Printf("👤 Seeded admin account %s", cfg.AdminEmail)
	return nil
}
