package knowledge

import (
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// extractPDFText returns the plain text of every page in a PDF document.
func extractPDFText(path string) ([]string, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("could not open pdf: %w", err)
	}
	defer doc.Close()

	pages := make([]string, 0, doc.NumPage())
	for i := 0; i < doc.NumPage(); i++ {
		text, err := doc.Text(i)
		if err != nil {
			return nil, fmt.Errorf("could not extract page %d: %w", i+1, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}
