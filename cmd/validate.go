// =============================================================================
// SAF-T Financial - Validate Command
// =============================================================================
//
// This file defines the 'validate' command, which checks an audit file
// against the governing SAF-T Financial schema.
//
// COMMAND USAGE:
//   saft validate <file>
//
// EXIT STATUS:
//   0 - the file is schema valid
//   1 - the file is invalid or could not be read
//
// Schema violations are printed one per line. Malformed XML is reported the
// same way as any other violation; this command never distinguishes the
// two.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dodoas/saft-go/pkg/saft"
)

// =============================================================================
// VALIDATE COMMAND DEFINITION
// =============================================================================

// validateCmd represents the 'validate' command.
var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check an audit file against the SAF-T Financial schema",
	Long: `The validate command checks an audit file against the governing Norwegian
SAF-T Financial schema and reports every violation it finds.

Validation is a verdict on the document, not on this tool: an invalid file
prints its violations and exits non-zero, but is never treated as a crash.`,

	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runValidate(args[0])
	},
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runValidate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	log.Debug().Str("file", path).Int("bytes", len(data)).Msg("validating")

	result := saft.ValidateDocument(data)
	if result.Valid {
		log.Info().Str("file", path).Msg("schema valid")
		fmt.Println("OK")
		return nil
	}

	for _, violation := range result.Errors {
		fmt.Println(violation)
	}
	return fmt.Errorf("%s: %d schema violation(s)", path, len(result.Errors))
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the validate command with the root command.
func init() {
	rootCmd.AddCommand(validateCmd)
}
