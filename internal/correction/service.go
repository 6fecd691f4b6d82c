package correction

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aleister1102/grammarwhiz/internal/models"
)

// Service sends text to a correction backend and returns the corrected text.
// Every failure is a *ServiceError.
type Service interface {
	Correct(ctx context.Context, text string, scenario models.Scenario) (models.ProofreadResult, error)
}

// DecodeResult parses and validates a raw result document.
func DecodeResult(raw []byte) (models.ProofreadResult, error) {
	var result models.ProofreadResult
	if len(strings.TrimSpace(string(raw))) == 0 {
		return result, NewMalformedResponseError("empty response body", nil)
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return models.ProofreadResult{}, NewMalformedResponseError("response is not a result object", err)
	}
	if err := models.Validate(&result); err != nil {
		return models.ProofreadResult{}, NewMalformedResponseError("response failed validation", err)
	}
	return result, nil
}

func statusSet(codes []int) map[int]struct{} {
	set := make(map[int]struct{}, len(codes))
	for _, code := range codes {
		set[code] = struct{}{}
	}
	return set
}
