package differ

import (
	"time"

	"github.com/aleister1102/grammarwhiz/internal/models"
)

// ContentDiffResultBuilder builds ContentDiffResult objects
type ContentDiffResultBuilder struct {
	result models.ContentDiffResult
}

// NewContentDiffResultBuilder creates a new result builder
func NewContentDiffResultBuilder() *ContentDiffResultBuilder {
	return &ContentDiffResultBuilder{
		result: models.ContentDiffResult{
			Timestamp: time.Now().UnixMilli(),
		},
	}
}

// WithHashes sets the original and corrected hashes
func (rb *ContentDiffResultBuilder) WithHashes(oldHash, newHash string) *ContentDiffResultBuilder {
	rb.result.OldHash = oldHash
	rb.result.NewHash = newHash
	return rb
}

// WithError sets an error message
func (rb *ContentDiffResultBuilder) WithError(errorMessage string) *ContentDiffResultBuilder {
	rb.result.ErrorMessage = errorMessage
	return rb
}

// WithProcessingTime sets the processing time
func (rb *ContentDiffResultBuilder) WithProcessingTime(duration time.Duration) *ContentDiffResultBuilder {
	rb.result.ProcessingTimeMs = duration.Milliseconds()
	return rb
}

// WithScript sets the spans and their statistics
func (rb *ContentDiffResultBuilder) WithScript(script Script, stats DiffStatistics) *ContentDiffResultBuilder {
	rb.result.Diffs = ToModels(script)
	rb.result.CharsAdded = stats.CharsAdded
	rb.result.CharsDeleted = stats.CharsDeleted
	rb.result.Changes = stats.Changes
	rb.result.EditDistance = stats.EditDistance
	rb.result.IsIdentical = stats.IsIdentical
	return rb
}

// Build creates the final ContentDiffResult
func (rb *ContentDiffResultBuilder) Build() *models.ContentDiffResult {
	return &rb.result
}

// ToModels converts a script to its wire representation
func ToModels(script Script) []models.ContentDiff {
	out := make([]models.ContentDiff, 0, len(script))
	for _, d := range script {
		out = append(out, models.ContentDiff{
			Operation: mapOperation(d.Type),
			Text:      d.Text,
		})
	}
	return out
}

// FromModels converts wire spans back to a script
func FromModels(diffs []models.ContentDiff) Script {
	out := make(Script, 0, len(diffs))
	for _, d := range diffs {
		var op Operation
		switch d.Operation {
		case models.DiffInsert:
			op = Insert
		case models.DiffDelete:
			op = Delete
		default:
			op = Equal
		}
		out = append(out, Diff{Type: op, Text: d.Text})
	}
	return out
}

func mapOperation(op Operation) models.DiffOperation {
	switch op {
	case Insert:
		return models.DiffInsert
	case Delete:
		return models.DiffDelete
	default:
		return models.DiffEqual
	}
}
