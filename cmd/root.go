package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/booklinehq/bookline/internal/logging"
)

// rootCmd represents the base command for the bookline application
var rootCmd = &cobra.Command{
	Use:   "bookline",
	Short: "Calendar booking backend for AI voice agents",
	Long: `bookline connects AI voice agents to their tenants' Google Calendars.

It runs as an MCP (Model Context Protocol) server over stdio and exposes
tools for finding open appointment slots and booking them, plus commands
for managing per-tenant calendar connections.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if envFile != "" {
			if err := godotenv.Load(envFile); err != nil {
				return fmt.Errorf("load env file %s: %w", envFile, err)
			}
		} else {
			// A .env in the working directory is picked up when present.
			_ = godotenv.Load()
		}

		// Logs go to stderr. Stdout belongs to the MCP stdio transport.
		l, err := logging.Setup(os.Stderr, logLevel, logFormat)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
}

var (
	logLevel  string
	logFormat string
	envFile   string

	// logger is installed by the persistent pre-run and shared by all
	// commands.
	logger *slog.Logger
)

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "bookline version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logging.FormatText, "Log format: text or json")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from this file before running")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newConnectCmd())
	rootCmd.AddCommand(newDisconnectCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newGenerateDocsCmd())
}
