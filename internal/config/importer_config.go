package config

// ImporterConfig configures document import
type ImporterConfig struct {
	MaxFileSizeMB int `json:"max_file_size_mb,omitempty" yaml:"max_file_size_mb,omitempty" validate:"omitempty,min=1,max=100"`
	// PDFModel is the model used to transcribe PDF pages.
	PDFModel string `json:"pdf_model,omitempty" yaml:"pdf_model,omitempty"`
}

// NewDefaultImporterConfig creates default importer configuration
func NewDefaultImporterConfig() ImporterConfig {
	return ImporterConfig{
		MaxFileSizeMB: DefaultImporterMaxFileSizeMB,
		PDFModel:      DefaultImporterPDFModel,
	}
}

// MaxFileBytes returns the file size limit in bytes
func (ic ImporterConfig) MaxFileBytes() int64 {
	return int64(ic.MaxFileSizeMB) * 1024 * 1024
}
