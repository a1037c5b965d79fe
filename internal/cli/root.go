// Package cli implements the claimscope command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/credcheck/claimscope/internal/config"
)

var cfgFile string

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "claimscope",
	Short: "Claimscope - heuristic claim credibility scoring",
	Long: `Claimscope scores selected text for credibility using deterministic,
rule-based heuristics: lexical markers of sensationalism vs. sourcing,
source domain reputation, a curated table of known facts, and optional
external verification services.

It is a heuristic aid, not an authority: it does not guarantee the
correctness of any fact judgment.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("claimscope v1.0.0")
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "claimscope.yaml", "config file path")
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file named by --config, falling back to
// defaults when the default path does not exist.
func loadConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		if !rootCmd.PersistentFlags().Changed("config") {
			return config.DefaultConfig(), nil
		}
		return nil, fmt.Errorf("config file not found: %s", cfgFile)
	}
	return config.Load(cfgFile)
}

// setupLogging configures the global zerolog logger from config.
func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Logging.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
