package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aleister1102/grammarwhiz/internal/common"
	"github.com/aleister1102/grammarwhiz/internal/correction"
	"github.com/aleister1102/grammarwhiz/internal/models"
	"github.com/rs/zerolog"
)

// Pipeline wraps a correction service with per-attempt timeouts, backoff
// and a bounded number of retries. It holds no per-request state.
type Pipeline struct {
	service correction.Service
	policy  RetryPolicy
	sleep   func(ctx context.Context, d time.Duration) error
	jitter  func(max time.Duration) time.Duration
	logger  zerolog.Logger
}

// New creates a pipeline around service
func New(service correction.Service, policy RetryPolicy, logger zerolog.Logger) *Pipeline {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	return &Pipeline{
		service: service,
		policy:  policy,
		sleep:   sleepContext,
		jitter:  randomJitter,
		logger:  logger.With().Str("component", "Pipeline").Logger(),
	}
}

// RequestCorrection returns a validated result or a typed failure:
// *common.ValidationError for bad input, a permanent *correction.ServiceError,
// *AttemptsExhaustedError once the budget is spent, or the context error.
func (p *Pipeline) RequestCorrection(ctx context.Context, text string, scenario models.Scenario) (models.ProofreadResult, error) {
	if err := validateRequest(text, scenario); err != nil {
		return models.ProofreadResult{}, err
	}

	req := NewRetryableRequest(text, scenario, p.policy.MaxAttempts)
	logger := p.logger.With().Str("request_id", req.ID).Logger()

	for !req.Exhausted() {
		req.Attempt++
		result, err := p.attempt(ctx, req)
		if err == nil {
			logger.Debug().Int("attempt", req.Attempt).Msg("Correction succeeded")
			return result, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.ProofreadResult{}, ctxErr
		}

		svcErr, ok := correction.AsServiceError(err)
		if !ok {
			svcErr = correction.NewPermanentError(0, "unexpected service failure", err)
		}
		req.LastErr = svcErr

		if !svcErr.Retryable() {
			logger.Error().Err(svcErr).Int("attempt", req.Attempt).Msg("Correction failed permanently")
			return models.ProofreadResult{}, svcErr
		}
		if req.Exhausted() {
			break
		}

		req.NextDelay = p.policy.Delay(req.Attempt, svcErr, p.jitter(p.policy.MaxJitter))
		logger.Warn().
			Str("kind", svcErr.Kind.String()).
			Int("attempt", req.Attempt).
			Int("max_attempts", req.MaxAttempts).
			Dur("delay", req.NextDelay).
			Msg("Correction attempt failed, retrying")

		if err := p.sleep(ctx, req.NextDelay); err != nil {
			return models.ProofreadResult{}, err
		}
	}

	logger.Error().Err(req.LastErr).Int("attempts", req.Attempt).Msg("Correction attempts exhausted")
	return models.ProofreadResult{}, &AttemptsExhaustedError{Attempts: req.Attempt, Last: req.LastErr}
}

func (p *Pipeline) attempt(ctx context.Context, req *RetryableRequest) (models.ProofreadResult, error) {
	attemptCtx := ctx
	if p.policy.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, p.policy.AttemptTimeout)
		defer cancel()
	}

	result, err := p.service.Correct(attemptCtx, req.Text, req.Scenario)
	if err != nil {
		if ctx.Err() == nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
			return models.ProofreadResult{}, correction.NewNetworkError("attempt timed out", err)
		}
		return models.ProofreadResult{}, err
	}
	if err := models.Validate(&result); err != nil {
		return models.ProofreadResult{}, correction.NewMalformedResponseError("result failed validation", err)
	}
	return result, nil
}

func validateRequest(text string, scenario models.Scenario) error {
	if err := models.Validate(&models.ProofreadRequest{Text: text, Scenario: scenario}); err != nil {
		var fieldErr *models.FieldError
		if errors.As(err, &fieldErr) {
			value := fieldErr.Value
			if fieldErr.Field == "text" {
				value = fmt.Sprintf("%d bytes", len(text))
			}
			return common.NewValidationError(fieldErr.Field, value, "failed rule '"+fieldErr.Rule+"'")
		}
		return common.WrapError(common.ErrInvalidInput, err.Error())
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
