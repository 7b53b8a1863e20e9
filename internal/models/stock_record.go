package models

import "time"

// StockRecord: current stock level, exactly one row per product.
type StockRecord struct {
	ID        uint `gorm:"primaryKey"`
	ProductID uint `gorm:"uniqueIndex;not null"`
	Product   Product
	Quantity  int    `gorm:"not null"` // never negative
	Location  string `gorm:"size:100"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
