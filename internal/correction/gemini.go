package correction

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/aleister1102/grammarwhiz/internal/common"
	"google.golang.org/genai"
)

// GeminiClientOptions describes how to reach the Gemini API.
type GeminiClientOptions struct {
	APIKey     string
	BaseURL    string        // Empty for the public endpoint
	HTTPClient *http.Client  // Optional
	Timeout    time.Duration // Per-call timeout, 0 for none
}

// NewGeminiClient creates a genai client for the Gemini API backend.
// The key must be supplied explicitly; the process environment is not consulted.
func NewGeminiClient(ctx context.Context, opts GeminiClientOptions) (*genai.Client, error) {
	if opts.APIKey == "" {
		return nil, common.NewConfigurationError("correction_config", "api_key", "Gemini API key is not set")
	}

	httpOptions := genai.HTTPOptions{BaseURL: opts.BaseURL}
	if opts.Timeout > 0 {
		httpOptions.Timeout = genai.Ptr(opts.Timeout)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      opts.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  opts.HTTPClient,
		HTTPOptions: httpOptions,
	})
	if err != nil {
		return nil, common.WrapError(err, "failed to create Gemini client")
	}
	return client, nil
}

// ClassifyGeminiError maps a genai failure onto the ServiceError taxonomy.
// Statuses in retryCodes are rate limiting; 5xx responses count as network
// failures since the request never produced a result.
func ClassifyGeminiError(err error, retryCodes map[int]struct{}) *ServiceError {
	if err == nil {
		return nil
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		if _, ok := retryCodes[apiErr.Code]; ok {
			return &ServiceError{Kind: KindRateLimited, StatusCode: apiErr.Code, Message: apiErr.Message, Err: err}
		}
		if apiErr.Code >= http.StatusInternalServerError {
			return &ServiceError{Kind: KindNetwork, StatusCode: apiErr.Code, Message: apiErr.Message, Err: err}
		}
		return NewPermanentError(apiErr.Code, apiErr.Message, err)
	}

	var urlErr *url.Error
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || errors.As(err, &urlErr) || errors.As(err, &netErr) {
		return NewNetworkError("Gemini request failed", err)
	}
	return NewPermanentError(0, "Gemini request failed", err)
}
