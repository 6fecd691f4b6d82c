package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aleister1102/grammarwhiz/internal/config"
	"github.com/aleister1102/grammarwhiz/internal/correction"
	"github.com/aleister1102/grammarwhiz/internal/differ"
	"github.com/aleister1102/grammarwhiz/internal/history"
	"github.com/aleister1102/grammarwhiz/internal/httpclient"
	"github.com/aleister1102/grammarwhiz/internal/importer"
	"github.com/aleister1102/grammarwhiz/internal/logger"
	"github.com/rs/zerolog"
)

// app holds the configuration and logger shared by every command.
type app struct {
	cfg    *config.GlobalConfig
	log    *logger.Logger
	logger zerolog.Logger
}

func newApp(path string) (*app, error) {
	cfg, err := config.LoadGlobalConfig(path, zerolog.Nop())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := config.ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	log, err := logger.New(cfg.LogConfig)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	return &app{cfg: cfg, log: log, logger: *log.GetZerolog()}, nil
}

func (a *app) Close() {
	_ = a.log.Close()
}

func (a *app) contentDiffer() (*differ.ContentDiffer, error) {
	return differ.NewContentDifferBuilder(a.logger).WithDiffConfig(a.cfg.DiffConfig).Build()
}

// correctionService builds the backend selected by correction_config.provider.
func (a *app) correctionService(ctx context.Context) (correction.Service, error) {
	cc := a.cfg.CorrectionConfig
	retryCodes := a.cfg.RetryConfig.RetryStatusCodes

	switch cc.Provider {
	case "http":
		client, err := httpclient.NewHTTPClientBuilder(a.logger).
			WithTimeout(cc.RequestTimeout()).
			WithInsecureSkipVerify(cc.Insecure).
			Build()
		if err != nil {
			return nil, err
		}
		return correction.NewHTTPService(client, cc.Endpoint, retryCodes, a.logger), nil
	default:
		return correction.NewGeminiServiceBuilder(a.logger).
			WithConfig(cc).
			WithRetryStatusCodes(retryCodes).
			Build(ctx)
	}
}

// importers returns the registry, with PDF support when an API key is set.
func (a *app) importers(ctx context.Context) (*importer.Registry, error) {
	registry := importer.NewRegistry(a.cfg.ImporterConfig, a.logger)
	if a.cfg.CorrectionConfig.APIKey == "" {
		return registry, nil
	}

	client, err := correction.NewGeminiClient(ctx, correction.GeminiClientOptions{
		APIKey:  a.cfg.CorrectionConfig.APIKey,
		Timeout: a.cfg.CorrectionConfig.RequestTimeout(),
	})
	if err != nil {
		return nil, err
	}
	registry.Register(".pdf", importer.NewPDFImporter(client, a.cfg.ImporterConfig.PDFModel, a.cfg.RetryConfig.RetryStatusCodes, a.logger))
	return registry, nil
}

func (a *app) historyStore() (*history.Store, error) {
	return history.NewStore(a.cfg.HistoryConfig.DBPath, a.cfg.HistoryConfig.MaxEntries, a.logger)
}

// readInput reads a file, or stdin for "-" or an empty path.
func readInput(ctx context.Context, registry *importer.Registry, path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return strings.ReplaceAll(string(data), "\r\n", "\n"), nil
	}
	if registry != nil {
		return registry.ImportFile(ctx, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
