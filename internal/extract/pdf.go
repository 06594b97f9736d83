package extract

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// extractPDF concatenates the plain text of every page, one page per line
// block, in page order. A PDF without a text layer, such as a scanned
// report, yields an empty string rather than an error.
func extractPDF(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not discard the rest.
			continue
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n"), nil
}
