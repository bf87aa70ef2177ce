// Command decryptify runs trust analyses from the terminal, without the
// server or a database.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"decryptify/internal/logging"
	"decryptify/internal/orchestrator"
	"decryptify/internal/services"
)

var (
	flagTimeout  time.Duration
	flagLogLevel string
	flagOffline  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "decryptify",
		Short: "Crypto trust assessment toolkit",
		Long: `Decryptify assesses the trustworthiness of cryptocurrency projects by
combining market data, scam heuristics, audit status, founder credibility
and project fundamentals into a single report.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze <project>",
		Short: "Analyze a cryptocurrency project and print the trust report",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAnalyze,
	}
	analyzeCmd.Flags().DurationVar(&flagTimeout, "timeout", orchestrator.DefaultProviderTimeout, "per-provider timeout")
	analyzeCmd.Flags().BoolVar(&flagOffline, "offline", false, "skip live data sources and the completion model")

	rootCmd.AddCommand(analyzeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()
	log := logging.New(flagLogLevel)

	opts := orchestrator.Options{
		Timeout: flagTimeout,
		Logger:  log,
	}

	if !flagOffline {
		gecko := services.NewCoinGeckoClient(os.Getenv("COINGECKO_API_KEY"))
		opts.Quotes = gecko
		opts.Profiles = gecko
		opts.Stats = services.NewGitHubClient(os.Getenv("GITHUB_TOKEN"))

		llm := services.NewLLMClient(
			envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			os.Getenv("OPENAI_API_KEY"),
			envOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
			0,
		)
		if llm.Configured() {
			opts.Completer = llm
		}
	}

	query := strings.Join(args, " ")
	report := orchestrator.New(opts).Analyze(cmd.Context(), query)

	fmt.Fprintln(cmd.OutOrStdout(), report)
	return nil
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
