package importer

import (
	"bytes"
	"context"
	"strings"
	"unicode/utf8"

	"github.com/aleister1102/grammarwhiz/internal/common"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TextImporter accepts UTF-8 text, dropping a leading BOM and CRLF line endings.
type TextImporter struct{}

// NewTextImporter creates a TextImporter
func NewTextImporter() *TextImporter {
	return &TextImporter{}
}

// Name implements Importer.
func (t *TextImporter) Name() string { return "text" }

// Import implements Importer.
func (t *TextImporter) Import(_ context.Context, data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		return "", common.NewValidationError("data", len(data), "text is not valid UTF-8")
	}
	return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
}
