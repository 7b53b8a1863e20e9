package store

import (
	"testing"

	"lagerbot-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func testCatalog() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Skruv M8", ArticleNumber: "ART-100"},
		{ID: 2, Name: "Skruv M10", ArticleNumber: "ART-101"},
		{ID: 3, Name: "Mutter M8", ArticleNumber: "ART-200"},
		{ID: 4, Name: "Hammare", ArticleNumber: ""},
	}
}

func TestResolveCatalog(t *testing.T) {
	testCases := []struct {
		name          string
		query         string
		expectedID    uint
		expectedName  string
		wantNotFound  bool
		wantAmbiguous bool
	}{
		{
			name:         "exact name match case-insensitive",
			query:        "hammare",
			expectedID:   4,
			expectedName: "Hammare",
		},
		{
			name:         "unique substring match",
			query:        "mutter",
			expectedID:   3,
			expectedName: "Mutter M8",
		},
		{
			name:         "article number match",
			query:        "ART-200",
			expectedID:   3,
			expectedName: "Mutter M8",
		},
		{
			name:          "substring matching two names is ambiguous",
			query:         "skruv",
			wantAmbiguous: true,
		},
		{
			name:          "substring overlapping two products is ambiguous",
			query:         "M8",
			wantAmbiguous: true,
		},
		{
			name:         "no match",
			query:        "spik",
			wantNotFound: true,
		},
		{
			name:         "article number is case-sensitive",
			query:        "art-200",
			wantNotFound: true,
		},
		{
			name:         "empty query never matches",
			query:        "   ",
			wantNotFound: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ref, err := resolveCatalog(testCatalog(), tc.query)

			switch {
			case tc.wantNotFound:
				var nf *NotFoundError
				assert.ErrorAs(t, err, &nf)
			case tc.wantAmbiguous:
				var amb *AmbiguousError
				assert.ErrorAs(t, err, &amb)
				assert.GreaterOrEqual(t, len(amb.Matches), 2)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedID, ref.ID)
				assert.Equal(t, tc.expectedName, ref.ExactName)
			}
		})
	}
}

func TestResolveCatalogExactAndSubstringOverlap(t *testing.T) {
	// One product exact-matches and another substring-matches the same
	// query. The combined predicate must treat this as ambiguous instead
	// of preferring the exact match.
	catalog := []models.Product{
		{ID: 1, Name: "Lim"},
		{ID: 2, Name: "Limpistol"},
	}

	_, err := resolveCatalog(catalog, "Lim")

	var amb *AmbiguousError
	assert.ErrorAs(t, err, &amb)
	assert.ElementsMatch(t, []string{"Lim", "Limpistol"}, amb.Matches)
}
