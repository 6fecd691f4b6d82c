package importer

import (
	"bytes"
	"context"
	"strings"

	"github.com/aleister1102/grammarwhiz/internal/common"
	"github.com/aleister1102/grammarwhiz/internal/correction"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

const pdfMIMEType = "application/pdf"

var pdfMagic = []byte("%PDF-")

// PDFImporter transcribes newspaper PDFs with a Gemini model.
type PDFImporter struct {
	client     *genai.Client
	model      string
	retryCodes map[int]struct{}
	logger     zerolog.Logger
}

// NewPDFImporter creates a PDFImporter backed by client.
func NewPDFImporter(client *genai.Client, model string, retryCodes []int, logger zerolog.Logger) *PDFImporter {
	codes := make(map[int]struct{}, len(retryCodes))
	for _, code := range retryCodes {
		codes[code] = struct{}{}
	}
	return &PDFImporter{
		client:     client,
		model:      model,
		retryCodes: codes,
		logger:     logger.With().Str("component", "PDFImporter").Str("model", model).Logger(),
	}
}

// Name implements Importer.
func (p *PDFImporter) Name() string { return "pdf" }

// Import implements Importer. Service failures are *correction.ServiceError.
func (p *PDFImporter) Import(ctx context.Context, data []byte) (string, error) {
	if !bytes.HasPrefix(data, pdfMagic) {
		return "", common.NewValidationError("data", len(data), "not a PDF document")
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(data, pdfMIMEType),
			genai.NewPartFromText(correction.NewspaperExtractionPrompt),
		}, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0.1)}

	p.logger.Debug().Int("pdf_bytes", len(data)).Msg("Extracting newspaper text")

	resp, err := p.client.Models.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil {
		return "", correction.ClassifyGeminiError(err, p.retryCodes)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", correction.NewMalformedResponseError("model returned no text", nil)
	}
	return text, nil
}
