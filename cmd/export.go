// =============================================================================
// SAF-T Financial - Export Command
// =============================================================================
//
// This file defines the 'export' command, which flattens an audit file into
// an XLSX workbook: one sheet each for accounts, customers, suppliers, tax
// codes and journal lines.
//
// COMMAND USAGE:
//   saft export <file> [flags]
//
// FLAGS:
//   --profile : Strictness profile for parsing (strict, relaxed, sliced)
//   --output  : Explicit output path; default derives from the config
//               file name pattern in the configured output directory
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dodoas/saft-go/pkg/saft"
	"github.com/dodoas/saft-go/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// exportProfile selects the strictness profile for parsing.
var exportProfile string

// exportOutput is an explicit output path, overriding the config naming.
var exportOutput string

// =============================================================================
// EXPORT COMMAND DEFINITION
// =============================================================================

// exportCmd represents the 'export' command.
var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Flatten an audit file into an XLSX workbook",
	Long: `The export command parses an audit file and writes an XLSX workbook with
one sheet per collection: Accounts, Customers, Suppliers, Tax codes and
Journal lines. Monetary values land as native numbers with the credit side
negated, so spreadsheet sums line up with the file's control totals.`,

	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(args[0])
	},
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runExport(path string) error {
	doc, err := parseInput(path, exportProfile)
	if err != nil {
		return err
	}

	out, err := saft.ExportWorkbook(doc)
	if err != nil {
		return err
	}

	outPath := exportOutput
	if outPath == "" {
		name := utils.GenerateOutputFileName(cfg.FileNameFormat, path, ".xlsx")
		outPath = filepath.Join(cfg.OutputDir, name)
	}

	if err := utils.WriteOutputFile(outPath, out); err != nil {
		return err
	}
	log.Info().Str("file", path).Str("output", outPath).Msg("workbook written")
	fmt.Println(outPath)
	return nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the export command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(
		&exportProfile,
		"profile",
		"",
		"Strictness profile: strict, relaxed or sliced (default from config)",
	)

	exportCmd.Flags().StringVarP(
		&exportOutput,
		"output",
		"o",
		"",
		"Output path (default derives from the config file name pattern)",
	)
}
