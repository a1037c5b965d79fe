package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/credcheck/claimscope/internal/config"
)

// configCmd groups configuration helpers.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

// configInitCmd writes a sample configuration file.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a sample configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.GenerateSample(cfgFile); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
		fmt.Printf("Wrote %s\n", cfgFile)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
