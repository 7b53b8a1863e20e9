// Package knowledge answers free-text questions from a local document
// collection. Passages are ranked by a token-overlap score; when an
// answerer (LLM client) is configured the top passages are handed to it
// for synthesis, otherwise the best passage is returned as-is.
package knowledge

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
)

const topPassages = 3

// Answerer synthesizes an answer from a question and supporting passages.
type Answerer interface {
	Answer(ctx context.Context, question string, passages []string) (string, error)
}

type Base struct {
	index    *index
	answerer Answerer // optional
}

// Load builds a knowledge base from every .txt, .md and .pdf file in dir.
// A missing or empty directory gives an empty base, which answers politely
// instead of failing.
func Load(dir string, answerer Answerer) *Base {
	var passages []string

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Printf("knowledge: could not read %s: %v", dir, err)
		return &Base{index: newIndex(nil), answerer: answerer}
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".txt", ".md":
			text, err := os.ReadFile(path)
			if err != nil {
				log.Printf("knowledge: could not read %s: %v", path, err)
				continue
			}
			passages = append(passages, splitPassages(string(text))...)
		case ".pdf":
			pages, err := extractPDFText(path)
			if err != nil {
				log.Printf("knowledge: could not extract %s: %v", path, err)
				continue
			}
			for _, page := range pages {
				passages = append(passages, splitPassages(page)...)
			}
		}
	}

	log.Printf("knowledge: indexed %d passages from %s", len(passages), dir)
	return &Base{index: newIndex(passages), answerer: answerer}
}

// NewFromPassages builds a base directly from passages. Used by tests.
func NewFromPassages(passages []string, answerer Answerer) *Base {
	return &Base{index: newIndex(passages), answerer: answerer}
}

// Query answers a free-text question and returns the supporting passages
// the answer was grounded on.
func (b *Base) Query(ctx context.Context, question string) (string, []string, error) {
	passages := b.index.search(question, topPassages)
	if len(passages) == 0 {
		return "Jag hittade inget i kunskapsbasen som besvarar frågan.", nil, nil
	}

	if b.answerer != nil {
		answer, err := b.answerer.Answer(ctx, question, passages)
		if err != nil {
			// degrade to extraction rather than failing the request
			log.Printf("knowledge: answer synthesis failed: %v", err)
			return passages[0], passages, nil
		}
		return answer, passages, nil
	}
	return passages[0], passages, nil
}

// splitPassages breaks a document into paragraph-sized passages on blank
// lines.
func splitPassages(text string) []string {
	blocks := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n")
	passages := make([]string, 0, len(blocks))
	for _, b := range blocks {
		b = strings.TrimSpace(b)
		if b != "" {
			passages = append(passages, strings.Join(strings.Fields(b), " "))
		}
	}
	return passages
}
