package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aleister1102/grammarwhiz/internal/common"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaultGlobalConfig(t *testing.T) {
	cfg := NewDefaultGlobalConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, 4, cfg.RetryConfig.MaxAttempts)
	assert.Equal(t, []int{429}, cfg.RetryConfig.RetryStatusCodes)
	assert.Equal(t, 50, cfg.HistoryConfig.MaxEntries)
	assert.Equal(t, 1024, cfg.DiffConfig.GreedyLimit)
	assert.True(t, cfg.DiffConfig.SemanticCleanup)
	assert.Equal(t, DefaultDiffEditBudget, cfg.DiffConfig.EditBudget)
	assert.Equal(t, 256*1024, cfg.ServerConfig.MaxDiffInputBytes())
	assert.Equal(t, "gemini-2.5-flash", cfg.CorrectionConfig.Model)
	assert.InDelta(t, 0.1, cfg.CorrectionConfig.Temperature, 1e-6)
	assert.Equal(t, ":3000", cfg.ServerConfig.Address)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestLoadGlobalConfig_NoConfigFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvConfigPath, "")
	t.Setenv(EnvAPIKey, "")

	cfg, err := LoadGlobalConfig("", zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, DefaultRetryMaxAttempts, cfg.RetryConfig.MaxAttempts)
	assert.Empty(t, cfg.CorrectionConfig.APIKey)
}

func TestLoadGlobalConfig_NonExistentFile(t *testing.T) {
	cfg, err := LoadGlobalConfig("/nonexistent/config.json", zerolog.Nop())

	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, common.ErrInvalidInput)
	assert.Contains(t, err.Error(), "config file does not exist")
}

func TestLoadGlobalConfig_JSONFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.json")
	configData := `{
		"log_config": {"log_level": "debug"},
		"retry_config": {"max_attempts": 6, "retry_status_codes": [429, 503]},
		"correction_config": {"api_key": "from-file"}
	}`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogConfig.LogLevel)
	assert.Equal(t, 6, cfg.RetryConfig.MaxAttempts)
	assert.Equal(t, []int{429, 503}, cfg.RetryConfig.RetryStatusCodes)
	assert.Equal(t, "from-file", cfg.CorrectionConfig.APIKey)
	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultHistoryMaxEntries, cfg.HistoryConfig.MaxEntries)
}

func TestLoadGlobalConfig_YAMLFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	configData := `
diff_config:
  greedy_limit: 64
  semantic_cleanup: false
  edit_budget: 500000
history_config:
  db_path: /tmp/history.db
  max_entries: 20
server_config:
  address: "127.0.0.1:8080"
  max_diff_input_kb: 64
`
	require.NoError(t, os.WriteFile(configFile, []byte(configData), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, 64, cfg.DiffConfig.GreedyLimit)
	assert.False(t, cfg.DiffConfig.SemanticCleanup)
	assert.Equal(t, 500000, cfg.DiffConfig.EditBudget)
	assert.Equal(t, 64*1024, cfg.ServerConfig.MaxDiffInputBytes())
	assert.Equal(t, "/tmp/history.db", cfg.HistoryConfig.DBPath)
	assert.Equal(t, 20, cfg.HistoryConfig.MaxEntries)
	assert.Equal(t, "127.0.0.1:8080", cfg.ServerConfig.Address)
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(configFile, []byte("diff_config: [unclosed"), 0644))

	cfg, err := LoadGlobalConfig(configFile, zerolog.Nop())

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to unmarshal YAML")
}

func TestLoadGlobalConfig_InvalidJSON(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(configFile, []byte("{invalid"), 0644))

	_, err := LoadGlobalConfig(configFile, zerolog.Nop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to unmarshal JSON")
}

func TestLoadGlobalConfig_APIKeyFromEnvironment(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv(EnvConfigPath, "")
	t.Setenv(EnvAPIKey, "from-env")

	cfg, err := LoadGlobalConfig("", zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.CorrectionConfig.APIKey)
}

func TestLoadGlobalConfig_APIKeyFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvConfigPath, "")
	// Registers cleanup; godotenv only fills unset variables.
	t.Setenv(EnvAPIKey, "")
	require.NoError(t, os.Unsetenv(EnvAPIKey))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(EnvAPIKey+"=from-dotenv\n"), 0600))

	cfg, err := LoadGlobalConfig("", zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.CorrectionConfig.APIKey)
}

func TestGetConfigPath(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	t.Run("no file", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		assert.Equal(t, "", GetConfigPath(""))
	})

	t.Run("environment variable", func(t *testing.T) {
		envFile := filepath.Join(t.TempDir(), "custom.yaml")
		require.NoError(t, os.WriteFile(envFile, []byte("{}"), 0644))
		t.Setenv(EnvConfigPath, envFile)
		assert.Equal(t, envFile, GetConfigPath(""))
	})

	t.Run("working directory", func(t *testing.T) {
		t.Setenv(EnvConfigPath, "")
		require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{}"), 0644))
		defer os.Remove(filepath.Join(dir, "config.yaml"))
		assert.True(t, strings.HasSuffix(GetConfigPath(""), "config.yaml"))
	})

	t.Run("flag wins", func(t *testing.T) {
		flagFile := filepath.Join(t.TempDir(), "flag.json")
		require.NoError(t, os.WriteFile(flagFile, []byte("{}"), 0644))
		assert.Equal(t, flagFile, GetConfigPath(flagFile))
	})
}

func TestIsYAMLFile(t *testing.T) {
	assert.True(t, isYAMLFile(".yaml"))
	assert.True(t, isYAMLFile(".yml"))
	assert.False(t, isYAMLFile(".json"))
	assert.False(t, isYAMLFile(""))
}
