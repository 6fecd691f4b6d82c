package models

// ProofreadRequest is the payload sent to the correction service.
type ProofreadRequest struct {
	Text     string   `json:"text" validate:"required,utf8text"`
	Scenario Scenario `json:"scenario" validate:"required,scenario"`
}

// ProofreadResult is the well-formed response of the correction service.
// Explanations must be present; an empty list is allowed.
type ProofreadResult struct {
	Corrected    string   `json:"corrected" validate:"required,utf8text"`
	Explanations []string `json:"explanations" validate:"required"`
}

// ExtractRequest carries a base64 encoded PDF for text extraction.
type ExtractRequest struct {
	PDFBase64 string `json:"pdfBase64" validate:"required,base64"`
}

// ExtractResult is the plain text recovered from an imported document.
type ExtractResult struct {
	Text string `json:"text"`
}

// ErrorResponse is the JSON body returned by the API on failure.
type ErrorResponse struct {
	Error     string `json:"error"`
	Retryable bool   `json:"retryable"`
}

// DiffRequest asks the API to compare two texts.
type DiffRequest struct {
	Original  string `json:"original" validate:"utf8text"`
	Corrected string `json:"corrected" validate:"utf8text"`
}

// DiffResponse carries the structured diff, its HTML rendering and delta.
type DiffResponse struct {
	Result *ContentDiffResult `json:"result"`
	HTML   string             `json:"html"`
	Delta  string             `json:"delta,omitempty"`
}
