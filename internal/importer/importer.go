package importer

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aleister1102/grammarwhiz/internal/common"
	"github.com/aleister1102/grammarwhiz/internal/config"
	"github.com/rs/zerolog"
)

// Importer turns one document format into plain text.
type Importer interface {
	Name() string
	Import(ctx context.Context, data []byte) (string, error)
}

// Registry picks an importer by file extension.
type Registry struct {
	importers   map[string]Importer
	maxSize     int64
	fileManager *common.FileManager
	logger      zerolog.Logger
}

// NewRegistry creates a registry with the text and HTML importers.
// PDF support is added with Register once a Gemini client exists.
func NewRegistry(cfg config.ImporterConfig, logger zerolog.Logger) *Registry {
	r := &Registry{
		importers:   make(map[string]Importer),
		maxSize:     cfg.MaxFileBytes(),
		fileManager: common.NewFileManager(logger),
		logger:      logger.With().Str("component", "ImporterRegistry").Logger(),
	}

	text := NewTextImporter()
	r.Register(".txt", text)
	r.Register(".md", text)

	html := NewHTMLImporter()
	r.Register(".html", html)
	r.Register(".htm", html)
	return r
}

// Register binds an importer to an extension such as ".pdf".
func (r *Registry) Register(ext string, imp Importer) {
	r.importers[strings.ToLower(ext)] = imp
}

// Extensions lists the supported extensions in sorted order.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.importers))
	for ext := range r.importers {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}

// Import converts data to text using the importer registered for filename's extension.
func (r *Registry) Import(ctx context.Context, filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	imp, ok := r.importers[ext]
	if !ok {
		return "", common.NewValidationError("filename", filename,
			fmt.Sprintf("unsupported file type, expected one of %s", strings.Join(r.Extensions(), ", ")))
	}
	if r.maxSize > 0 && int64(len(data)) > r.maxSize {
		return "", common.NewValidationError("data", len(data), fmt.Sprintf("file exceeds %d bytes", r.maxSize))
	}

	text, err := imp.Import(ctx, data)
	if err != nil {
		r.logger.Warn().Err(err).Str("importer", imp.Name()).Str("file", filename).Msg("Import failed")
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", common.NewValidationError("data", filename, "document contains no text")
	}

	r.logger.Debug().Str("importer", imp.Name()).Str("file", filename).Int("text_length", len(text)).Msg("Document imported")
	return text, nil
}

// ImportFile reads path from disk and imports it.
func (r *Registry) ImportFile(ctx context.Context, path string) (string, error) {
	data, err := r.fileManager.ReadFile(path, common.FileReadOptions{MaxSize: r.maxSize})
	if err != nil {
		return "", err
	}
	return r.Import(ctx, filepath.Base(path), data)
}
