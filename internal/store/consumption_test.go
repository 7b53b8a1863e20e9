package store

import (
	"testing"
	"time"

	"lagerbot-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func history(name string, quantities ...int) []models.HistoryEntry {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := make([]models.HistoryEntry, 0, len(quantities))
	for i, q := range quantities {
		entries = append(entries, models.HistoryEntry{
			ProductName: name,
			Date:        base.AddDate(0, 0, i),
			Quantity:    q,
		})
	}
	return entries
}

func TestNetConsumption(t *testing.T) {
	testCases := []struct {
		name       string
		quantities []int
		expected   int
	}{
		{
			name:       "decreases sum, flats and increases do not",
			quantities: []int{10, 4, 4, 9, 2},
			expected:   13, // 10->4 and 9->2
		},
		{
			name:       "only increases",
			quantities: []int{1, 5, 9},
			expected:   0,
		},
		{
			name:       "single entry has no pairs",
			quantities: []int{42},
			expected:   0,
		},
		{
			name:       "empty history",
			quantities: nil,
			expected:   0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, netConsumption(history("Skruv M8", tc.quantities...)))
		})
	}
}

func TestRankConsumption(t *testing.T) {
	var entries []models.HistoryEntry
	entries = append(entries, history("Skruv M8", 10, 4, 4, 9, 2)...) // 13
	entries = append(entries, history("Mutter M8", 50, 45)...)        // 5
	entries = append(entries, history("Hammare", 3, 3, 8)...)         // 0, excluded

	rows := rankConsumption(entries, 10)

	assert.Equal(t, []ConsumptionRow{
		{Name: "Skruv M8", Total: 13},
		{Name: "Mutter M8", Total: 5},
	}, rows)
}

func TestRankConsumptionLimit(t *testing.T) {
	var entries []models.HistoryEntry
	entries = append(entries, history("A", 10, 1)...)
	entries = append(entries, history("B", 10, 2)...)
	entries = append(entries, history("C", 10, 3)...)

	rows := rankConsumption(entries, 2)

	assert.Len(t, rows, 2)
	assert.Equal(t, "A", rows[0].Name)
	assert.Equal(t, "B", rows[1].Name)
}
