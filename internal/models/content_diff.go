package models

// DiffOperation defines the type of change.
type DiffOperation int

const (
	// DiffEqual indicates an unchanged segment.
	DiffEqual DiffOperation = 0
	// DiffInsert indicates an inserted segment.
	DiffInsert DiffOperation = 1
	// DiffDelete indicates a deleted segment.
	DiffDelete DiffOperation = -1
)

// String returns the wire name of the operation.
func (op DiffOperation) String() string {
	switch op {
	case DiffInsert:
		return "insert"
	case DiffDelete:
		return "delete"
	default:
		return "equal"
	}
}

// ContentDiff represents a single difference between two contents.
type ContentDiff struct {
	Operation DiffOperation `json:"operation"`
	Text      string        `json:"text"`
}

// ContentDiffResult holds the structured result of a content diff operation.
type ContentDiffResult struct {
	Timestamp        int64         `json:"timestamp"`
	Diffs            []ContentDiff `json:"diffs"`
	CharsAdded       int           `json:"chars_added"`
	CharsDeleted     int           `json:"chars_deleted"`
	Changes          int           `json:"changes"`
	EditDistance     int           `json:"edit_distance"`
	IsIdentical      bool          `json:"is_identical"`
	ErrorMessage     string        `json:"error_message,omitempty"`
	ProcessingTimeMs int64         `json:"processing_time_ms"`
	OldHash          string        `json:"old_hash,omitempty"`
	NewHash          string        `json:"new_hash,omitempty"`
}
