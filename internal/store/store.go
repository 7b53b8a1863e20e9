package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"lagerbot-backend/internal/models"

	"gorm.io/gorm"
)

// Store is the transactional home for products, stock records and history
// entries. Multi-statement writes run inside a single transaction: either
// all rows land or none do.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// LowStockRow is one line of the low-stock listing.
type LowStockRow struct {
	Name     string
	Quantity int
	Location string
}

// AddProductParams carries everything needed to create a product.
type AddProductParams struct {
	Name          string
	InitialStock  int
	Location      string
	Specification string
	ArticleNumber string
}

// today returns the current day truncated to date granularity, matching
// the history table's date column.
func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// duplicateAsConflict turns a unique-index violation into the typed
// conflict failure. Requires TranslateError on the gorm config.
func duplicateAsConflict(err error, field, value string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &ConflictError{Field: field, Value: value}
	}
	return err
}

// GetProduct resolves a query and returns the product with its stock record.
func (s *Store) GetProduct(ctx context.Context, query string) (models.Product, models.StockRecord, error) {
	ref, err := s.Resolve(ctx, query)
	if err != nil {
		return models.Product{}, models.StockRecord{}, err
	}

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, ref.ID).Error; err != nil {
		return models.Product{}, models.StockRecord{}, err
	}

	var stock models.StockRecord
	if err := s.db.WithContext(ctx).Where("product_id = ?", ref.ID).First(&stock).Error; err != nil {
		return models.Product{}, models.StockRecord{}, err
	}

	return product, stock, nil
}

// GetHistory returns a product's history entries ordered by date ascending.
// A query that cannot be resolved uniquely yields an empty slice, not an
// error: history lookups are soft-failing by design.
func (s *Store) GetHistory(ctx context.Context, query string) ([]models.HistoryEntry, error) {
	ref, err := s.Resolve(ctx, query)
	if err != nil {
		var nf *NotFoundError
		var amb *AmbiguousError
		if errors.As(err, &nf) || errors.As(err, &amb) {
			return nil, nil
		}
		return nil, err
	}

	var entries []models.HistoryEntry
	if err := s.db.WithContext(ctx).
		Where("product_name = ?", ref.ExactName).
		Order("date asc, id asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// UpdateStock sets a product's quantity and appends a history entry dated
// today with the new level. Both writes commit together.
func (s *Store) UpdateStock(ctx context.Context, query string, newQuantity int) (string, error) {
	if newQuantity < 0 {
		return "", ErrNegativeQuantity
	}

	ref, err := s.Resolve(ctx, query)
	if err != nil {
		return "", err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.StockRecord{}).
			Where("product_id = ?", ref.ID).
			Update("quantity", newQuantity)
		if res.Error != nil {
			return res.Error
		}
		return tx.Create(&models.HistoryEntry{
			ProductName: ref.ExactName,
			Date:        today(),
			Quantity:    newQuantity,
		}).Error
	})
	if err != nil {
		return "", err
	}
	return ref.ExactName, nil
}

// ListLowStock lists products whose quantity is at or below the threshold.
func (s *Store) ListLowStock(ctx context.Context, threshold int) ([]LowStockRow, error) {
	var records []models.StockRecord
	if err := s.db.WithContext(ctx).
		Preload("Product").
		Where("quantity <= ?", threshold).
		Find(&records).Error; err != nil {
		return nil, err
	}

	rows := make([]LowStockRow, 0, len(records))
	for _, r := range records {
		rows = append(rows, LowStockRow{
			Name:     r.Product.Name,
			Quantity: r.Quantity,
			Location: r.Location,
		})
	}
	return rows, nil
}

// TopConsumption ranks products by net withdrawals computed from their
// history, descending, zero totals excluded.
func (s *Store) TopConsumption(ctx context.Context, limit int) ([]ConsumptionRow, error) {
	var entries []models.HistoryEntry
	if err := s.db.WithContext(ctx).
		Order("product_name asc, date asc, id asc").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return rankConsumption(entries, limit), nil
}

// AddProduct creates a product together with its stock record and an
// initial history entry, all in one transaction.
func (s *Store) AddProduct(ctx context.Context, p AddProductParams) (string, error) {
	if p.InitialStock < 0 {
		return "", ErrNegativeQuantity
	}
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return "", ErrEmptyName
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Where("lower(name) = lower(?)", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Field: "name", Value: name}
		}
		if p.ArticleNumber != "" {
			if err := tx.Model(&models.Product{}).Where("article_number = ?", p.ArticleNumber).Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return &ConflictError{Field: "article number", Value: p.ArticleNumber}
			}
		}

		product := models.Product{
			Name:          name,
			ArticleNumber: p.ArticleNumber,
			Specification: p.Specification,
			Unit:          "st",
		}
		if err := tx.Create(&product).Error; err != nil {
			// the count checks above race against concurrent inserts,
			// the unique indexes are the actual guarantee
			if p.ArticleNumber != "" {
				return duplicateAsConflict(err, "article number", p.ArticleNumber)
			}
			return duplicateAsConflict(err, "name", name)
		}
		if err := tx.Create(&models.StockRecord{
			ProductID: product.ID,
			Quantity:  p.InitialStock,
			Location:  p.Location,
		}).Error; err != nil {
			return err
		}
		return tx.Create(&models.HistoryEntry{
			ProductName: name,
			Date:        today(),
			Quantity:    p.InitialStock,
		}).Error
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

// Relocate changes a product's storage location.
func (s *Store) Relocate(ctx context.Context, query, newLocation string) (string, error) {
	ref, err := s.Resolve(ctx, query)
	if err != nil {
		return "", err
	}

	if err := s.db.WithContext(ctx).
		Model(&models.StockRecord{}).
		Where("product_id = ?", ref.ID).
		Update("location", strings.TrimSpace(newLocation)).Error; err != nil {
		return "", err
	}
	return ref.ExactName, nil
}

// Remove deletes a product and its stock record. History entries are kept:
// they document what happened while the product existed.
func (s *Store) Remove(ctx context.Context, query string) (string, error) {
	ref, err := s.Resolve(ctx, query)
	if err != nil {
		return "", err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", ref.ID).Delete(&models.StockRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, ref.ID).Error
	})
	if err != nil {
		return "", err
	}
	return ref.ExactName, nil
}

// Rename changes a product's name and re-keys all of its history entries,
// since history is keyed by name.
func (s *Store) Rename(ctx context.Context, oldQuery, newName string) (string, string, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return "", "", ErrEmptyName
	}

	ref, err := s.Resolve(ctx, oldQuery)
	if err != nil {
		return "", "", err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).
			Where("lower(name) = lower(?) AND id <> ?", newName, ref.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return &ConflictError{Field: "name", Value: newName}
		}
		if err := tx.Model(&models.Product{}).Where("id = ?", ref.ID).Update("name", newName).Error; err != nil {
			return duplicateAsConflict(err, "name", newName)
		}
		return tx.Model(&models.HistoryEntry{}).
			Where("product_name = ?", ref.ExactName).
			Update("product_name", newName).Error
	})
	if err != nil {
		return "", "", err
	}
	return ref.ExactName, newName, nil
}
