package correction

import (
	"context"
	"net/http"
	"time"

	"github.com/aleister1102/grammarwhiz/internal/config"
	"github.com/aleister1102/grammarwhiz/internal/models"
	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// GeminiService corrects text by calling the Gemini API directly.
type GeminiService struct {
	client      *genai.Client
	model       string
	temperature float32
	retryCodes  map[int]struct{}
	now         func() time.Time
	logger      zerolog.Logger
}

// GeminiServiceBuilder builds GeminiService instances
type GeminiServiceBuilder struct {
	config     config.CorrectionConfig
	retryCodes []int
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
	logger     zerolog.Logger
}

// NewGeminiServiceBuilder creates a builder with default configuration
func NewGeminiServiceBuilder(logger zerolog.Logger) *GeminiServiceBuilder {
	return &GeminiServiceBuilder{
		config:     config.NewDefaultCorrectionConfig(),
		retryCodes: []int{http.StatusTooManyRequests},
		now:        time.Now,
		logger:     logger,
	}
}

// WithConfig sets the correction configuration
func (b *GeminiServiceBuilder) WithConfig(cfg config.CorrectionConfig) *GeminiServiceBuilder {
	b.config = cfg
	return b
}

// WithRetryStatusCodes sets the statuses reported as rate limiting
func (b *GeminiServiceBuilder) WithRetryStatusCodes(codes []int) *GeminiServiceBuilder {
	b.retryCodes = codes
	return b
}

// WithBaseURL overrides the Gemini API endpoint
func (b *GeminiServiceBuilder) WithBaseURL(baseURL string) *GeminiServiceBuilder {
	b.baseURL = baseURL
	return b
}

// WithHTTPClient sets the HTTP client used by the SDK
func (b *GeminiServiceBuilder) WithHTTPClient(client *http.Client) *GeminiServiceBuilder {
	b.httpClient = client
	return b
}

// WithClock sets the clock used for the date in the instruction
func (b *GeminiServiceBuilder) WithClock(now func() time.Time) *GeminiServiceBuilder {
	b.now = now
	return b
}

// Build creates the GeminiService
func (b *GeminiServiceBuilder) Build(ctx context.Context) (*GeminiService, error) {
	client, err := NewGeminiClient(ctx, GeminiClientOptions{
		APIKey:     b.config.APIKey,
		BaseURL:    b.baseURL,
		HTTPClient: b.httpClient,
		Timeout:    b.config.RequestTimeout(),
	})
	if err != nil {
		return nil, err
	}

	model := b.config.Model
	if model == "" {
		model = config.DefaultCorrectionModel
	}

	return &GeminiService{
		client:      client,
		model:       model,
		temperature: b.config.Temperature,
		retryCodes:  statusSet(b.retryCodes),
		now:         b.now,
		logger:      b.logger.With().Str("component", "GeminiService").Str("model", model).Logger(),
	}, nil
}

// Correct implements Service.
func (s *GeminiService) Correct(ctx context.Context, text string, scenario models.Scenario) (models.ProofreadResult, error) {
	instruction, err := SystemInstruction(scenario, s.now())
	if err != nil {
		return models.ProofreadResult{}, NewPermanentError(http.StatusBadRequest, "unknown scenario", err)
	}

	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		Temperature:       genai.Ptr(s.temperature),
		ResponseMIMEType:  "application/json",
		ResponseSchema:    resultSchema(),
	}

	s.logger.Debug().Int("text_length", len(text)).Str("scenario", scenario.Alias()).Msg("Calling Gemini")

	resp, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(text), cfg)
	if err != nil {
		svcErr := ClassifyGeminiError(err, s.retryCodes)
		s.logger.Warn().Err(err).Str("kind", svcErr.Kind.String()).Msg("Gemini call failed")
		return models.ProofreadResult{}, svcErr
	}

	return DecodeResult([]byte(resp.Text()))
}

// resultSchema is the JSON shape the model must answer with.
func resultSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"corrected": {Type: genai.TypeString},
			"explanations": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
		},
		Required: []string{"corrected", "explanations"},
	}
}
