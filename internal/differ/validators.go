package differ

import (
	"fmt"
	"unicode/utf8"

	"github.com/aleister1102/grammarwhiz/internal/common"
)

// ContentSizeValidator validates content size against limits
type ContentSizeValidator struct {
	maxSizeBytes int64
}

// NewContentSizeValidator creates a new content size validator
func NewContentSizeValidator(maxSizeMB int) *ContentSizeValidator {
	return &ContentSizeValidator{
		maxSizeBytes: int64(maxSizeMB) * 1024 * 1024,
	}
}

// ValidateSize checks if both texts are within limits
func (csv *ContentSizeValidator) ValidateSize(original, corrected string) error {
	if err := csv.validateSingleContent(original, "original"); err != nil {
		return err
	}

	return csv.validateSingleContent(corrected, "corrected")
}

func (csv *ContentSizeValidator) validateSingleContent(content string, fieldName string) error {
	if csv.maxSizeBytes > 0 && int64(len(content)) > csv.maxSizeBytes {
		return common.NewValidationError(fieldName, len(content),
			fmt.Sprintf("%s too large (%d bytes > %d bytes limit)",
				fieldName, len(content), csv.maxSizeBytes))
	}
	return nil
}

// InputValidator validates diff inputs that leave the process as JSON or HTML
type InputValidator struct{}

// NewInputValidator creates a new input validator
func NewInputValidator() *InputValidator {
	return &InputValidator{}
}

// ValidateInputs rejects texts that are not valid UTF-8
func (iv *InputValidator) ValidateInputs(original, corrected string) error {
	if !utf8.ValidString(original) {
		return common.NewValidationError("original", len(original), "text is not valid UTF-8")
	}
	if !utf8.ValidString(corrected) {
		return common.NewValidationError("corrected", len(corrected), "text is not valid UTF-8")
	}
	return nil
}
