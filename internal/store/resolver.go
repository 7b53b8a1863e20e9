package store

import (
	"context"
	"strings"

	"lagerbot-backend/internal/models"
)

// ProductRef identifies a uniquely resolved product.
type ProductRef struct {
	ID        uint
	ExactName string
}

// Matches reports whether a product matches a free-text query. The three
// conditions form one combined predicate: name equal (case-insensitive),
// name contains the query (case-insensitive), or article number equal
// (case-sensitive). They are OR'd in a single pass so a query that
// substring-matches one product and article-matches another is detected
// as ambiguous, not answered by whichever rule runs first.
func Matches(name, articleNumber, query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return false
	}
	if strings.EqualFold(name, q) {
		return true
	}
	if strings.Contains(strings.ToLower(name), strings.ToLower(q)) {
		return true
	}
	return articleNumber != "" && articleNumber == q
}

// resolveCatalog applies the match predicate to the full catalog and
// requires exactly one hit.
func resolveCatalog(products []models.Product, query string) (ProductRef, error) {
	var hits []models.Product
	for _, p := range products {
		if Matches(p.Name, p.ArticleNumber, query) {
			hits = append(hits, p)
		}
	}

	switch len(hits) {
	case 0:
		return ProductRef{}, &NotFoundError{Query: query}
	case 1:
		return ProductRef{ID: hits[0].ID, ExactName: hits[0].Name}, nil
	default:
		names := make([]string, 0, len(hits))
		for _, p := range hits {
			names = append(names, p.Name)
		}
		return ProductRef{}, &AmbiguousError{Query: query, Matches: names}
	}
}

// Resolve finds the single product a query refers to. Every command that
// has to locate a product goes through this, so reads and writes resolve
// identically.
func (s *Store) Resolve(ctx context.Context, query string) (ProductRef, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Find(&products).Error; err != nil {
		return ProductRef{}, err
	}
	return resolveCatalog(products, query)
}
