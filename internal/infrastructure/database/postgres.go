package database

import (
	"fmt"
	"log"

	"github.com/farmaciasantana/pos-api/internal/config"
	"github.com/farmaciasantana/pos-api/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// User entities
		&entity.User{},

		// Catalog entities
		&entity.Category{},
		&entity.Product{},
		&entity.Client{},

		// Sale entities
		&entity.Sale{},
		&entity.SaleDetail{},
		&entity.FiscalDocument{},
		&entity.SaleCounter{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the sale number counter and the admin user
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	// Sale number counter starts at zero so the first sale is V-00000001
	var counter entity.SaleCounter
	if err := db.Where("name = ?", entity.SaleNumberCounter).First(&counter).Error; err != nil {
		counter = entity.SaleCounter{Name: entity.SaleNumberCounter, LastValue: 0}
		if err := db.Create(&counter).Error; err != nil {
			log.Printf("Warning: failed to create sale counter: %v", err)
		}
	}

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Administrador"
				}
				adminUser := entity.User{
					ID:       uuid.New(),
					Name:     adminName,
					Email:    adminEmail,
					Password: string(hashedPassword),
					Role:     "admin",
				}
				if err := db.Create(&adminUser).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminEmail)
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
