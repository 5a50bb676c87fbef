package config

import (
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/eventiapi/eventiapi/internal/models"
)

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		// An artist can be deleted while its events remain; a database-level
		// constraint would block that, so none is created.
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if err := Seed(db, cfg); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Artist{},
		&models.Event{},
		&models.Ticket{},
	)
}

// Seed guarantees the fixed role universe, at least one administrator and a
// minimal sample catalog.
func Seed(db *gorm.DB, cfg *Config) error {
	if err := seedRoles(db); err != nil {
		return err
	}
	if err := seedAdmin(db, cfg); err != nil {
		return err
	}
	return seedCatalog(db)
}

func seedRoles(db *gorm.DB) error {
	for _, name := range []string{models.RoleUser, models.RoleAdmin} {
		var existing models.Role
		if err := db.Where("name = ?", name).First(&existing).Error; err != nil {
			if err := db.Create(&models.Role{Name: name}).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func seedAdmin(db *gorm.DB, cfg *Config) error {
	var existing models.User
	if err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error; err == nil {
		return nil
	}

	var adminRole models.Role
	if err := db.Where("name = ?", models.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Email:        cfg.AdminEmail,
		PasswordHash: string(hash),
		Roles:        []models.Role{adminRole},
	}
	return db.Create(&admin).Error
}

func seedCatalog(db *gorm.DB) error {
	var artistCount int64
	if err := db.Model(&models.Artist{}).Count(&artistCount).Error; err != nil {
		return err
	}
	if artistCount == 0 {
		artist := models.Artist{
			Name:      "Artista Rock",
			Genre:     "Rock",
			Biography: "Biografia dell'artista rock famoso",
		}
		if err := db.Create(&artist).Error; err != nil {
			return err
		}
	}

	var eventCount int64
	if err := db.Model(&models.Event{}).Count(&eventCount).Error; err != nil {
		return err
	}
	if eventCount == 0 {
		var artist models.Artist
		if err := db.First(&artist).Error; err != nil {
			return err
		}
		event := models.Event{
			Title:    "Concerto Rock",
			Date:     time.Now().AddDate(0, 1, 0),
			Location: "Stadio Nazionale",
			ArtistID: artist.ID,
		}
		if err := db.Create(&event).Error; err != nil {
			return err
		}
	}

	return nil
}
