package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportReport summarises a catalog import run.
type ImportReport struct {
	Created int
	Skipped []string // names that already existed or had unusable rows
}

// ImportCatalog reads an xlsx price/stock list and creates every product
// that does not exist yet. Expected columns, in order: name, article
// number, quantity, location, specification. The first row is skipped if
// it looks like a header. Existing products are reported, not modified.
func (s *Store) ImportCatalog(ctx context.Context, path string) (*ImportReport, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("excel file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("could not read sheet %q: %w", sheets[0], err)
	}

	report := &ImportReport{}
	start := 0
	if len(rows) > 0 && len(rows[0]) > 0 && looksLikeHeader(rows[0][0]) {
		start = 1
	}

	for i := start; i < len(rows); i++ {
		row := rows[i]
		if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
			continue
		}

		params := AddProductParams{Name: strings.TrimSpace(row[0])}
		if len(row) > 1 {
			params.ArticleNumber = strings.TrimSpace(row[1])
		}
		if len(row) > 2 {
			qty, err := strconv.Atoi(strings.TrimSpace(row[2]))
			if err != nil || qty < 0 {
				log.Printf("import: row %d has unusable quantity %q, skipping", i+1, row[2])
				report.Skipped = append(report.Skipped, params.Name)
				continue
			}
			params.InitialStock = qty
		}
		if len(row) > 3 {
			params.Location = strings.TrimSpace(row[3])
		}
		if len(row) > 4 {
			params.Specification = strings.TrimSpace(row[4])
		}

		if _, err := s.AddProduct(ctx, params); err != nil {
			var conflict *ConflictError
			if errors.As(err, &conflict) {
				report.Skipped = append(report.Skipped, params.Name)
				continue
			}
			return report, err
		}
		report.Created++
	}

	return report, nil
}

func looksLikeHeader(cell string) bool {
	c := strings.ToUpper(strings.TrimSpace(cell))
	return strings.Contains(c, "NAMN") || strings.Contains(c, "PRODUKT") ||
		strings.Contains(c, "NAME") || strings.Contains(c, "PRODUCT")
}
