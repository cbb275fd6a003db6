// Package cmd holds the portalctl commands.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/opsdesk/portal/internal/config"
	"github.com/opsdesk/portal/internal/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "portalctl",
	Short: "Operations portal command line",
	Long: `portalctl runs portal jobs outside the API server, such as an
effort sheet sync, and answers billing questions from the terminal.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(effortSheetCmd)
	rootCmd.AddCommand(billingCmd)
}

// loadConfig reads the portal configuration and builds its logger
func loadConfig() (*config.Configuration, *logger.Logger, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.NewLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, log, nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
