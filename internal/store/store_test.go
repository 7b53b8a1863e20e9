package store

import (
	"context"
	"errors"
	"testing"

	"lagerbot-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Category{},
		&models.Supplier{},
		&models.Product{},
		&models.StockRecord{},
		&models.HistoryEntry{},
	))
	return New(db)
}

func mustAdd(t *testing.T, s *Store, p AddProductParams) {
	t.Helper()
	_, err := s.AddProduct(context.Background(), p)
	require.NoError(t, err)
}

func TestAddProductThenGetProduct(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustAdd(t, s, AddProductParams{Name: "Skruv M8", InitialStock: 100, Location: "Hylla A3", ArticleNumber: "ART-100"})

	product, stock, err := s.GetProduct(ctx, "Skruv M8")
	assert.NoError(t, err)
	assert.Equal(t, "Skruv M8", product.Name)
	assert.Equal(t, 100, stock.Quantity)
	assert.Equal(t, "Hylla A3", stock.Location)

	// creation also wrote the initial history entry
	entries, err := s.GetHistory(ctx, "Skruv M8")
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, 100, entries[0].Quantity)
}

func TestUpdateStockWritesStockAndHistoryTogether(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustAdd(t, s, AddProductParams{Name: "Skruv M8", InitialStock: 10, Location: "A1"})

	name, err := s.UpdateStock(ctx, "skruv", 4)

	assert.NoError(t, err)
	assert.Equal(t, "Skruv M8", name)

	_, stock, err := s.GetProduct(ctx, "Skruv M8")
	assert.NoError(t, err)
	assert.Equal(t, 4, stock.Quantity)

	// exactly one new entry, carrying the post-mutation quantity dated today
	entries, err := s.GetHistory(ctx, "Skruv M8")
	assert.NoError(t, err)
	assert.Len(t, entries, 2)
	assert.Equal(t, 4, entries[1].Quantity)
	assert.True(t, entries[1].Date.Equal(today()), "entry is dated today")
}

func TestUpdateStockRejectsNegativeAndLeavesStoreUnchanged(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustAdd(t, s, AddProductParams{Name: "Skruv M8", InitialStock: 10, Location: "A1"})

	_, err := s.UpdateStock(ctx, "skruv", -1)

	assert.ErrorIs(t, err, ErrNegativeQuantity)

	_, stock, err := s.GetProduct(ctx, "Skruv M8")
	assert.NoError(t, err)
	assert.Equal(t, 10, stock.Quantity)

	entries, err := s.GetHistory(ctx, "Skruv M8")
	assert.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAddProductConflictLeavesNoPartialRow(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustAdd(t, s, AddProductParams{Name: "Skruv M8", InitialStock: 10, Location: "A1", ArticleNumber: "ART-100"})

	testCases := []struct {
		name   string
		params AddProductParams
	}{
		{
			name:   "colliding name is case-insensitive",
			params: AddProductParams{Name: "skruv m8", InitialStock: 5, Location: "B1"},
		},
		{
			name:   "colliding article number",
			params: AddProductParams{Name: "Mutter M8", InitialStock: 5, Location: "B1", ArticleNumber: "ART-100"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.AddProduct(ctx, tc.params)

			var conflict *ConflictError
			assert.ErrorAs(t, err, &conflict)

			var products, stocks, history int64
			assert.NoError(t, s.db.Model(&models.Product{}).Count(&products).Error)
			assert.NoError(t, s.db.Model(&models.StockRecord{}).Count(&stocks).Error)
			assert.NoError(t, s.db.Model(&models.HistoryEntry{}).Count(&history).Error)
			assert.EqualValues(t, 1, products)
			assert.EqualValues(t, 1, stocks)
			assert.EqualValues(t, 1, history)
		})
	}
}

func TestArticleNumberUniqueIndex(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustAdd(t, s, AddProductParams{Name: "Skruv M8", InitialStock: 10, Location: "A1", ArticleNumber: "ART-100"})

	// A direct insert bypasses the pre-check, the way a concurrent
	// session would: the database index must still refuse it.
	err := s.db.Create(&models.Product{Name: "Mutter M8", ArticleNumber: "ART-100"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// empty article numbers are outside the index and may repeat
	mustAdd(t, s, AddProductParams{Name: "Hammare", InitialStock: 1, Location: "C1"})
	mustAdd(t, s, AddProductParams{Name: "Såg", InitialStock: 1, Location: "C2"})

	_, _, err = s.GetProduct(ctx, "Hammare")
	assert.NoError(t, err)
}

func TestRenameRekeysHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustAdd(t, s, AddProductParams{Name: "Skruv M8", InitialStock: 10, Location: "A1"})
	_, err := s.UpdateStock(ctx, "skruv", 8)
	require.NoError(t, err)

	oldName, newName, err := s.Rename(ctx, "skruv", "Spik M8")

	assert.NoError(t, err)
	assert.Equal(t, "Skruv M8", oldName)
	assert.Equal(t, "Spik M8", newName)

	entries, err := s.GetHistory(ctx, "Spik M8")
	assert.NoError(t, err)
	assert.Len(t, entries, 2)

	// the old name resolves to nothing and its history reads as empty
	entries, err = s.GetHistory(ctx, "Skruv M8")
	assert.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRenameEmptyNameIsInvalid(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustAdd(t, s, AddProductParams{Name: "Skruv M8", InitialStock: 10, Location: "A1"})

	_, _, err := s.Rename(ctx, "skruv", "   ")

	assert.ErrorIs(t, err, ErrEmptyName)
	var conflict *ConflictError
	assert.False(t, errors.As(err, &conflict), "empty name is invalid input, not a conflict")

	// nothing changed
	_, _, err = s.GetProduct(ctx, "Skruv M8")
	assert.NoError(t, err)
}

func TestRenameToTakenNameConflicts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustAdd(t, s, AddProductParams{Name: "Skruv M8", InitialStock: 10, Location: "A1"})
	mustAdd(t, s, AddProductParams{Name: "Mutter M8", InitialStock: 10, Location: "A2"})

	_, _, err := s.Rename(ctx, "Mutter M8", "skruv m8")

	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestRemoveKeepsHistory(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustAdd(t, s, AddProductParams{Name: "Skruv M8", InitialStock: 10, Location: "A1"})

	name, err := s.Remove(ctx, "skruv")
	assert.NoError(t, err)
	assert.Equal(t, "Skruv M8", name)

	_, _, err = s.GetProduct(ctx, "Skruv M8")
	var nf *NotFoundError
	assert.ErrorAs(t, err, &nf)

	var history int64
	assert.NoError(t, s.db.Model(&models.HistoryEntry{}).
		Where("product_name = ?", "Skruv M8").
		Count(&history).Error)
	assert.EqualValues(t, 1, history, "history outlives the product")
}
