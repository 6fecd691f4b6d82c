package config

const (
	// Diff Defaults
	DefaultDiffGreedyLimit     = 1024
	DefaultDiffMaxInputSizeMB  = 10
	DefaultDiffCacheSize       = 128
	DefaultDiffSemanticCleanup = true
	DefaultDiffEditBudget      = 20_000_000

	// Retry Defaults
	DefaultRetryMaxAttempts       = 4
	DefaultRetryBaseDelayMs       = 2000
	DefaultRetryMaxJitterMs       = 1000
	DefaultRetryNetworkDelayMs    = 2000
	DefaultRetryMaxDelayMs        = 60000
	DefaultRetryAttemptTimeoutSec = 60

	// Correction Defaults
	DefaultCorrectionProvider       = "gemini"
	DefaultCorrectionModel          = "gemini-2.5-flash"
	DefaultCorrectionTemperature    = 0.1
	DefaultCorrectionEndpoint       = "http://localhost:3000"
	DefaultCorrectionRequestTimeout = 60

	// History Defaults
	DefaultHistoryDBPath     = "data/history.db"
	DefaultHistoryMaxEntries = 50

	// Server Defaults
	DefaultServerAddress         = ":3000"
	DefaultServerMaxBodySizeMB   = 10
	DefaultServerMaxDiffInputKB  = 256
	DefaultServerReadTimeoutSec  = 30
	DefaultServerWriteTimeoutSec = 120

	// Importer Defaults
	DefaultImporterMaxFileSizeMB = 10
	DefaultImporterPDFModel      = "gemini-2.5-flash"

	// EnvAPIKey is the environment variable holding the Gemini API key.
	EnvAPIKey = "GEMINI_API_KEY"
	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "GRAMMARWHIZ_CONFIG_PATH"
)
