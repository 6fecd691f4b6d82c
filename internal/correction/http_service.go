package correction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aleister1102/grammarwhiz/internal/httpclient"
	"github.com/aleister1102/grammarwhiz/internal/models"
	"github.com/rs/zerolog"
)

// ProofreadPath is the server route that performs a correction.
const ProofreadPath = "/api/proofread"

// Transport performs a single HTTP exchange.
type Transport interface {
	Do(ctx context.Context, req *httpclient.HTTPRequest) (*httpclient.HTTPResponse, error)
}

// HTTPService calls a GrammarWhiz server over HTTP.
type HTTPService struct {
	transport  Transport
	endpoint   string
	retryCodes map[int]struct{}
	logger     zerolog.Logger
}

// NewHTTPService creates a service posting to endpoint + ProofreadPath.
// Responses whose status is in retryCodes are reported as rate limiting.
func NewHTTPService(transport Transport, endpoint string, retryCodes []int, logger zerolog.Logger) *HTTPService {
	return &HTTPService{
		transport:  transport,
		endpoint:   strings.TrimRight(endpoint, "/"),
		retryCodes: statusSet(retryCodes),
		logger:     logger.With().Str("component", "HTTPCorrectionService").Logger(),
	}
}

// Correct implements Service.
func (s *HTTPService) Correct(ctx context.Context, text string, scenario models.Scenario) (models.ProofreadResult, error) {
	payload, err := json.Marshal(models.ProofreadRequest{Text: text, Scenario: scenario})
	if err != nil {
		return models.ProofreadResult{}, NewPermanentError(0, "failed to encode request", err)
	}

	s.logger.Debug().
		Int("text_length", len(text)).
		Str("scenario", scenario.Alias()).
		Msg("Sending proofread request")

	resp, err := s.transport.Do(ctx, &httpclient.HTTPRequest{
		URL:     s.endpoint + ProofreadPath,
		Method:  http.MethodPost,
		Headers: map[string]string{"Content-Type": "application/json"},
		Body:    bytes.NewReader(payload),
	})
	if err != nil {
		if httpclient.IsNetworkError(err) {
			return models.ProofreadResult{}, NewNetworkError("proofread request failed", err)
		}
		if errors.Is(err, httpclient.ErrResponseTooLarge) {
			return models.ProofreadResult{}, NewMalformedResponseError("proofread response too large", err)
		}
		return models.ProofreadResult{}, NewPermanentError(0, "proofread request failed", err)
	}

	if resp.StatusCode != http.StatusOK {
		return models.ProofreadResult{}, s.statusError(resp)
	}
	return DecodeResult(resp.Body)
}

func (s *HTTPService) statusError(resp *httpclient.HTTPResponse) error {
	var body models.ErrorResponse
	_ = json.Unmarshal(resp.Body, &body)
	message := body.Error
	if message == "" {
		message = http.StatusText(resp.StatusCode)
	}

	if _, ok := s.retryCodes[resp.StatusCode]; ok {
		retryAfter := ParseRetryAfter(resp.Headers.Get("Retry-After"), time.Now())
		s.logger.Warn().
			Int("status_code", resp.StatusCode).
			Dur("retry_after", retryAfter).
			Msg("Correction service is rate limiting")
		return NewRateLimitedError(resp.StatusCode, message, retryAfter)
	}
	if body.Retryable {
		return &ServiceError{Kind: KindNetwork, StatusCode: resp.StatusCode, Message: message}
	}
	return NewPermanentError(resp.StatusCode, message, nil)
}

// ParseRetryAfter reads a Retry-After header in seconds or HTTP-date form.
func ParseRetryAfter(value string, now time.Time) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(value); err == nil {
		if d := at.Sub(now); d > 0 {
			return d
		}
	}
	return 0
}
