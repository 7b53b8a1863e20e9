package models

import "time"

// HistoryEntry: append-only record of a stock level at a point in time.
// Keyed by product name, not id: renames re-key these rows in bulk and
// removing a product leaves them behind. Consumers (top consumption,
// forecast) group by name, so this coupling must stay.
type HistoryEntry struct {
	ID          uint      `gorm:"primaryKey"`
	ProductName string    `gorm:"size:100;index;not null"`
	Date        time.Time `gorm:"type:date;index;not null"` // day granularity
	Quantity    int       `gorm:"not null"`                 // level after the write
	CreatedAt   time.Time
}
