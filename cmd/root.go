// =============================================================================
// SAF-T Financial - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. The root command is
// the base command that all other commands are attached to.
//
// COBRA CLI STRUCTURE:
//   rootCmd (saft)
//   ├── validateCmd (saft validate)
//   ├── renderCmd (saft render)
//   ├── rewriteCmd (saft rewrite)
//   ├── exportCmd (saft export)
//   └── versionCmd (saft version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the configuration file
//   3. Setting up the console logger
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dodoas/saft-go/internal/config"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// cfg is the loaded configuration, populated before any command runs.
var cfg *config.Config

// log is the console logger shared by all commands.
var log zerolog.Logger

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "saft",
	Short: "Tools for Norwegian SAF-T Financial audit files",
	Long: `saft reads, checks and rewrites Norwegian SAF-T Financial audit files.

Key Features:
  - Schema validation against the governing SAF-T Financial schema
  - Parsing with selectable strictness (strict, relaxed, sliced)
  - Canonical rewriting (normalization round trip)
  - Human-readable HTML reports with national register annotations
  - XLSX export of accounts, parties, tax codes and journal lines

Example Usage:
  saft validate books.xml              # Check a file against the schema
  saft render books.xml                # Produce an HTML report
  saft rewrite books.xml --profile relaxed
  saft export books.xml                # Flatten to a spreadsheet`,

	// Without a subcommand there is nothing to do but explain ourselves.
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		setupLogger()
		return nil
	},

	SilenceUsage: true,
}

// setupLogger builds the console logger. The --verbose flag wins over the
// configured log level.
func setupLogger() {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		level = parsed
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	log = zerolog.New(writer).Level(level).With().Timestamp().Logger()
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// Persistent flags are available to this command and all subcommands.

	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file (default is config.yaml)",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
