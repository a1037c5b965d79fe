package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/credcheck/claimscope/internal/adapters"
	"github.com/credcheck/claimscope/internal/analyzer"
	"github.com/credcheck/claimscope/internal/api"
	"github.com/credcheck/claimscope/internal/config"
	"github.com/credcheck/claimscope/internal/database"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the claim analysis HTTP service",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg)

	store, err := database.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	engine := newEngine(cfg, store)
	router := api.NewRouter(cfg, engine, store)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newEngine wires the engine from config: adapters are created only when
// enabled, and the engine treats any missing adapter as unavailable.
func newEngine(cfg *config.Config, store database.Store) *analyzer.Engine {
	opts := []analyzer.Option{
		analyzer.WithStore(store),
		analyzer.WithPrivacyMode(cfg.History.PrivacyMode),
	}

	adapterOpts := cfg.AdapterOptions()
	if cfg.Adapters.Wikidata.Enabled {
		opts = append(opts, analyzer.WithStructuredFacts(
			adapters.NewWikidata(cfg.Adapters.Wikidata.Endpoint, adapterOpts)))
	}
	if cfg.Adapters.FactCheck.Enabled {
		opts = append(opts, analyzer.WithAggregator(
			adapters.NewFactCheckAggregator(cfg.Adapters.FactCheck.Endpoint, cfg, adapterOpts)))
	}
	if cfg.Adapters.ClaimBuster.Enabled {
		opts = append(opts, analyzer.WithWorthiness(
			adapters.NewClaimBuster(cfg.Adapters.ClaimBuster.Endpoint, cfg, adapterOpts)))
	}

	return analyzer.NewEngine(opts...)
}
