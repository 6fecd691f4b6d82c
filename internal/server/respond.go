package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/aleister1102/grammarwhiz/internal/common"
	"github.com/aleister1102/grammarwhiz/internal/correction"
	"github.com/aleister1102/grammarwhiz/internal/models"
)

var errBodyTooLarge = errors.New("request body too large")

func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes())
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("%w: limit %d bytes", errBodyTooLarge, maxErr.Limit)
		}
		return common.NewValidationError("body", nil, "invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses. Rate limits stay
// 429 so clients can back off; other transient failures become 502 with
// retryable set.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	body := models.ErrorResponse{Error: err.Error()}

	var svcErr *correction.ServiceError
	var cfgErr *common.ConfigurationError
	switch {
	case errors.As(err, &svcErr):
		body.Error = svcErr.Message
		if body.Error == "" {
			body.Error = svcErr.Error()
		}
		body.Retryable = svcErr.Retryable()
		switch svcErr.Kind {
		case correction.KindRateLimited:
			status = http.StatusTooManyRequests
			if svcErr.RetryAfter > 0 {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(svcErr.RetryAfter.Seconds()))))
			}
		case correction.KindNetwork, correction.KindMalformedResponse:
			status = http.StatusBadGateway
		}
	case errors.Is(err, errBodyTooLarge):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, common.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &cfgErr):
		body.Error = "server configuration error: " + cfgErr.Reason
	}

	if status >= http.StatusInternalServerError {
		s.logger.Error().Err(err).Int("status", status).Msg("Request failed")
	}
	writeJSON(w, status, body)
}
