package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/aleister1102/grammarwhiz/internal/correction"
	"github.com/aleister1102/grammarwhiz/internal/importer"
	"github.com/aleister1102/grammarwhiz/internal/server"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the proofreading HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(configPath)
		if err != nil {
			return err
		}
		defer a.Close()

		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			a.cfg.ServerConfig.Address = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// The server is the Gemini-facing backend; the http provider would call itself.
		cc := a.cfg.CorrectionConfig
		corrector, err := correction.NewGeminiServiceBuilder(a.logger).
			WithConfig(cc).
			WithRetryStatusCodes(a.cfg.RetryConfig.RetryStatusCodes).
			Build(ctx)
		if err != nil {
			return err
		}

		client, err := correction.NewGeminiClient(ctx, correction.GeminiClientOptions{
			APIKey:  cc.APIKey,
			Timeout: cc.RequestTimeout(),
		})
		if err != nil {
			return err
		}
		extractor := importer.NewPDFImporter(client, a.cfg.ImporterConfig.PDFModel, a.cfg.RetryConfig.RetryStatusCodes, a.logger)

		cd, err := a.contentDiffer()
		if err != nil {
			return err
		}
		store, err := a.historyStore()
		if err != nil {
			return err
		}
		defer store.Close()

		srv := server.New(a.cfg.ServerConfig, server.Dependencies{
			Corrector: corrector,
			Extractor: extractor,
			Differ:    cd,
			History:   store,
		}, a.logger)

		g, gctx := errgroup.WithContext(ctx)
		g.Go(srv.Start)
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})

		if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server_config.address)")
	rootCmd.AddCommand(serveCmd)
}
