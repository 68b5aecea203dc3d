package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/DANIELNAHUN/afiche-generator/cmd/afiche/commands"
	"github.com/DANIELNAHUN/afiche-generator/logger"
)

var rootCmd = &cobra.Command{
	Use:   "afiche",
	Short: "Afiche - generador de recursos publicitarios",
	Long: `Afiche generates print-ready event flyers from DOCX templates.

A guided web form authenticates visitors through a fixed security-question
sequence, then produces three PDF variants per event: an A4 page, a 4x1
banner strip and a 100x150cm CMYK large-format poster.

Available commands:
  serve    - Start the HTTP API server
  generate - Generate the three variants once, from flags
  config   - Inspect the effective configuration
  version  - Show version information

Examples:
  afiche serve                           # Start API on the configured port
  afiche generate --project Campaña \
    --date "15 de Diciembre" --time "7:00 PM" --place "Auditorio Central"
  afiche config show                     # Print resolved configuration`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		if err := logger.Initialize(jsonLogs); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("json-logs", false, "Emit structured JSON logs instead of console output")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to an afiche.toml configuration file")

	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Sync()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
