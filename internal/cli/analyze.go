package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var (
	analyzeDomain  string
	analyzePageURL string
	analyzeJSON    bool
	analyzeOffline bool
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <text>",
	Short: "Analyze a single claim and print the result",
	Long: `Analyze scores a claim without starting the HTTP service. The analysis
is not persisted to history.

Example:
  claimscope analyze "Argentina won the 2022 World Cup" --domain reuters.com
  claimscope analyze "The earth is flat" --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeDomain, "domain", "", "hostname the claim was found on")
	analyzeCmd.Flags().StringVar(&analyzePageURL, "url", "", "page URL the claim was found on")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full analysis as JSON")
	analyzeCmd.Flags().BoolVar(&analyzeOffline, "offline", false, "skip external verification services")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	setupLogging(cfg)

	if analyzeOffline {
		cfg.Adapters.Wikidata.Enabled = false
		cfg.Adapters.FactCheck.Enabled = false
		cfg.Adapters.ClaimBuster.Enabled = false
	}

	text := strings.Join(args, " ")
	engine := newEngine(cfg, nil)

	analysis, err := engine.AnalyzeClaim(cmd.Context(), text, analyzePageURL, analyzeDomain)
	if err != nil {
		return err
	}

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(analysis)
	}

	fmt.Printf("%s %s (score %d/100)\n", analysis.Recommendation.Icon,
		strings.ToUpper(string(analysis.Recommendation.Level)), analysis.Scores.Overall)
	fmt.Println(analysis.Recommendation.Message)
	fmt.Printf("  heuristic: %d  domain trust: %d\n",
		analysis.Scores.Heuristic.Score, analysis.Scores.DomainTrust.Score)
	for _, flag := range analysis.Flags {
		fmt.Printf("  [%s] %s\n", flag.Severity, flag.Message)
	}
	if analysis.FactCheck.Matched && analysis.FactCheck.Correction != "" {
		fmt.Printf("  correction: %s\n", analysis.FactCheck.Correction)
	}
	return nil
}
