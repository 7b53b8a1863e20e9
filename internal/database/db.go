package database

import (
	"fmt"

	"lagerbot-backend/internal/config"
	"lagerbot-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	err = db.AutoMigrate(
		&models.Category{},
		&models.Supplier{},
		&models.Product{},
		&models.StockRecord{},
		&models.HistoryEntry{},
	)
	if err != nil {
		return nil, fmt.Errorf("auto migration failed: %w", err)
	}

	return db, nil
}
