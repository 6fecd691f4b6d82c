package differ

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/aleister1102/grammarwhiz/internal/common"
	"github.com/aleister1102/grammarwhiz/internal/config"
	"github.com/aleister1102/grammarwhiz/internal/models"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
)

// ContentDiffer validates inputs, computes scripts through an Engine and
// remembers recent results. It is safe for concurrent use.
type ContentDiffer struct {
	engine          *Engine
	sizeValidator   *ContentSizeValidator
	inputValidator  *InputValidator
	statsCalculator *DiffStatsCalculator
	cache           *lru.Cache[string, Script]
	logger          zerolog.Logger
}

// ContentDifferBuilder provides a fluent interface for creating ContentDiffer
type ContentDifferBuilder struct {
	logger     zerolog.Logger
	diffConfig config.DiffConfig
}

// NewContentDifferBuilder creates a new builder
func NewContentDifferBuilder(logger zerolog.Logger) *ContentDifferBuilder {
	return &ContentDifferBuilder{
		logger:     logger,
		diffConfig: config.NewDefaultDiffConfig(),
	}
}

// WithDiffConfig sets the diff configuration
func (b *ContentDifferBuilder) WithDiffConfig(cfg config.DiffConfig) *ContentDifferBuilder {
	b.diffConfig = cfg
	return b
}

// Build creates a new ContentDiffer instance
func (b *ContentDifferBuilder) Build() (*ContentDiffer, error) {
	if b.diffConfig.MaxInputSizeMB < 0 {
		return nil, common.NewValidationError("max_input_size_mb", b.diffConfig.MaxInputSizeMB, "must not be negative")
	}

	var cache *lru.Cache[string, Script]
	if b.diffConfig.CacheSize > 0 {
		c, err := lru.New[string, Script](b.diffConfig.CacheSize)
		if err != nil {
			return nil, common.WrapError(err, "failed to create diff cache")
		}
		cache = c
	}

	return &ContentDiffer{
		engine: NewEngine(Config{
			GreedyLimit:     b.diffConfig.GreedyLimit,
			EditBudget:      b.diffConfig.EditBudget,
			SemanticCleanup: b.diffConfig.SemanticCleanup,
		}),
		sizeValidator:   NewContentSizeValidator(b.diffConfig.MaxInputSizeMB),
		inputValidator:  NewInputValidator(),
		statsCalculator: NewDiffStatsCalculator(),
		cache:           cache,
		logger:          b.logger.With().Str("component", "ContentDiffer").Logger(),
	}, nil
}

// NewContentDiffer creates a new instance of ContentDiffer
func NewContentDiffer(logger zerolog.Logger, diffCfg config.DiffConfig) (*ContentDiffer, error) {
	return NewContentDifferBuilder(logger).
		WithDiffConfig(diffCfg).
		Build()
}

// Script returns the diff script for two validated texts. The returned
// script is owned by the caller.
func (cd *ContentDiffer) Script(original, corrected string) (Script, error) {
	script, _, _, err := cd.script(original, corrected)
	return script, err
}

// GenerateDiff compares two texts and returns a structured diff result
func (cd *ContentDiffer) GenerateDiff(original, corrected string) (*models.ContentDiffResult, error) {
	startTime := time.Now()

	script, oldHash, newHash, err := cd.script(original, corrected)
	if err != nil {
		return nil, err
	}

	stats := cd.statsCalculator.CalculateStats(script)
	result := NewContentDiffResultBuilder().
		WithHashes(oldHash, newHash).
		WithScript(script, stats).
		WithProcessingTime(time.Since(startTime)).
		Build()

	cd.logger.Debug().
		Int("original_length", len(original)).
		Int("corrected_length", len(corrected)).
		Int("changes", stats.Changes).
		Int64("processing_time_ms", result.ProcessingTimeMs).
		Msg("Diff generated")

	return result, nil
}

func (cd *ContentDiffer) script(original, corrected string) (Script, string, string, error) {
	if err := cd.validateInputs(original, corrected); err != nil {
		return nil, "", "", common.WrapError(err, "failed to validate diff inputs")
	}

	oldHash, newHash := hashText(original), hashText(corrected)
	key := oldHash + ":" + newHash

	if cd.cache != nil {
		if cached, ok := cd.cache.Get(key); ok {
			return cached.Clone(), oldHash, newHash, nil
		}
	}

	script := cd.engine.Compute(original, corrected)
	if cd.cache != nil {
		cd.cache.Add(key, script.Clone())
	}
	return script, oldHash, newHash, nil
}

func (cd *ContentDiffer) validateInputs(original, corrected string) error {
	if err := cd.sizeValidator.ValidateSize(original, corrected); err != nil {
		return err
	}
	return cd.inputValidator.ValidateInputs(original, corrected)
}

func hashText(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
