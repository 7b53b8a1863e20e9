package store

import (
	"sort"

	"lagerbot-backend/internal/models"
)

// ConsumptionRow is one line of the top-consumption ranking.
type ConsumptionRow struct {
	Name  string
	Total int
}

// netConsumption walks one product's history in chronological order and
// sums every decrease between adjacent entries. Increases (restocks) and
// unchanged levels contribute nothing.
func netConsumption(entries []models.HistoryEntry) int {
	total := 0
	for i := 1; i < len(entries); i++ {
		prev := entries[i-1].Quantity
		cur := entries[i].Quantity
		if cur < prev {
			total += prev - cur
		}
	}
	return total
}

// rankConsumption groups history entries by product name, computes the net
// consumption per product and returns the top rows descending. Products
// with zero consumption are left out. Entries must already be ordered by
// date (then id) within each product.
func rankConsumption(entries []models.HistoryEntry, limit int) []ConsumptionRow {
	byName := make(map[string][]models.HistoryEntry)
	for _, e := range entries {
		byName[e.ProductName] = append(byName[e.ProductName], e)
	}

	rows := make([]ConsumptionRow, 0, len(byName))
	for name, es := range byName {
		if total := netConsumption(es); total > 0 {
			rows = append(rows, ConsumptionRow{Name: name, Total: total})
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return rows[i].Name < rows[j].Name
	})

	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows
}
