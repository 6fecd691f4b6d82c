package config

import (
	"encoding/json"
	"path/filepath"

	"github.com/aleister1102/grammarwhiz/internal/common"
	"github.com/aleister1102/grammarwhiz/internal/logger"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	LogConfig        logger.FileLogConfig `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	DiffConfig       DiffConfig           `json:"diff_config,omitempty" yaml:"diff_config,omitempty"`
	RetryConfig      RetryConfig          `json:"retry_config,omitempty" yaml:"retry_config,omitempty"`
	CorrectionConfig CorrectionConfig     `json:"correction_config,omitempty" yaml:"correction_config,omitempty"`
	HistoryConfig    HistoryConfig        `json:"history_config,omitempty" yaml:"history_config,omitempty"`
	ServerConfig     ServerConfig         `json:"server_config,omitempty" yaml:"server_config,omitempty"`
	ImporterConfig   ImporterConfig       `json:"importer_config,omitempty" yaml:"importer_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		LogConfig:        logger.NewDefaultFileLogConfig(),
		DiffConfig:       NewDefaultDiffConfig(),
		RetryConfig:      NewDefaultRetryConfig(),
		CorrectionConfig: NewDefaultCorrectionConfig(),
		HistoryConfig:    NewDefaultHistoryConfig(),
		ServerConfig:     NewDefaultServerConfig(),
		ImporterConfig:   NewDefaultImporterConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// It determines the config file path using GetConfigPath, supports both JSON and YAML formats.
// YAML is used if the file extension is .yaml or .yml. The API key is then
// filled from the environment (and a .env file) when the file leaves it empty.
func LoadGlobalConfig(providedPath string, logger zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if providedPath != "" && filePath != providedPath {
		return nil, common.NewValidationError("config_file", providedPath, "config file does not exist")
	}

	if filePath != "" {
		fileManager := common.NewFileManager(logger)
		data, err := loadConfigFileContent(fileManager, filePath)
		if err != nil {
			return nil, common.WrapError(err, "failed to load config file content")
		}

		if err := parseConfigContent(data, filePath, cfg); err != nil {
			return nil, common.WrapError(err, "failed to parse config content")
		}
		logger.Debug().Str("path", filePath).Msg("Loaded configuration file")
	}

	if cfg.CorrectionConfig.APIKey == "" {
		cfg.CorrectionConfig.APIKey = LookupAPIKey(logger)
	}

	return cfg, nil
}

// loadConfigFileContent reads the config file using FileManager
func loadConfigFileContent(fileManager *common.FileManager, filePath string) ([]byte, error) {
	opts := common.DefaultFileReadOptions()
	opts.MaxSize = 1 * 1024 * 1024

	return fileManager.ReadFile(filePath, opts)
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	if isYAMLFile(filepath.Ext(filePath)) {
		return parseYAMLConfig(data, filePath, cfg)
	}
	return parseJSONConfig(data, filePath, cfg)
}

func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
	}
	return nil
}

func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}
