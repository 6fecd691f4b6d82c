package importer

import (
	"bytes"
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/grammarwhiz/internal/common"
)

const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, blockquote, pre, td, th, figcaption"

// HTMLImporter extracts readable text from an HTML page, one line per block.
type HTMLImporter struct{}

// NewHTMLImporter creates an HTMLImporter
func NewHTMLImporter() *HTMLImporter {
	return &HTMLImporter{}
}

// Name implements Importer.
func (h *HTMLImporter) Name() string { return "html" }

// Import implements Importer.
func (h *HTMLImporter) Import(_ context.Context, data []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", common.WrapError(err, "failed to parse HTML content")
	}
	doc.Find("script, style, noscript, template, nav, footer").Remove()

	var lines []string
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		// Containers are skipped; their nested blocks are visited on their own.
		if s.Find(blockSelector).Length() > 0 {
			return
		}
		if line := collapseSpace(s.Text()); line != "" {
			lines = append(lines, line)
		}
	})

	if len(lines) == 0 {
		if body := collapseSpace(doc.Find("body").Text()); body != "" {
			lines = append(lines, body)
		}
	}
	return strings.Join(lines, "\n"), nil
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
