package knowledge

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// index is an in-memory inverted index over passages, scored with term
// frequency weighted by inverse document frequency.
type index struct {
	passages []string
	tokens   []map[string]int // token counts per passage
	docFreq  map[string]int
}

func newIndex(passages []string) *index {
	idx := &index{
		passages: passages,
		tokens:   make([]map[string]int, len(passages)),
		docFreq:  make(map[string]int),
	}
	for i, p := range passages {
		counts := make(map[string]int)
		for _, tok := range tokenize(p) {
			counts[tok]++
		}
		idx.tokens[i] = counts
		for tok := range counts {
			idx.docFreq[tok]++
		}
	}
	return idx
}

type scoredPassage struct {
	text  string
	score float64
}

// search returns up to limit passages ranked by relevance to the query.
// Passages without any overlapping token are not returned.
func (idx *index) search(query string, limit int) []string {
	queryTokens := tokenize(query)
	if len(queryTokens) == 0 || len(idx.passages) == 0 {
		return nil
	}

	n := float64(len(idx.passages))
	scored := make([]scoredPassage, 0)
	for i, counts := range idx.tokens {
		score := 0.0
		for _, tok := range queryTokens {
			tf := counts[tok]
			if tf == 0 {
				continue
			}
			idf := math.Log(1 + n/float64(idx.docFreq[tok]))
			score += float64(tf) * idf
		}
		if score > 0 {
			scored = append(scored, scoredPassage{text: idx.passages[i], score: score})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	result := make([]string, 0, len(scored))
	for _, s := range scored {
		result = append(result, s.text)
	}
	return result
}

// tokenize lowercases and splits on anything that is not a letter or
// digit. Short tokens carry no signal and are dropped.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len([]rune(f)) >= 3 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
