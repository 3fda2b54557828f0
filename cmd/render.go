// =============================================================================
// SAF-T Financial - Render Command
// =============================================================================
//
// This file defines the 'render' command, which turns an audit file into a
// self-contained HTML report.
//
// COMMAND USAGE:
//   saft render <file> [flags]
//
// FLAGS:
//   --profile : Strictness profile for parsing (strict, relaxed, sliced)
//   --output  : Explicit output path; default derives from the config
//               file name pattern in the configured output directory
//
// The report embeds the stylesheet so the resulting file needs nothing else
// to open in a browser.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dodoas/saft-go/pkg/saft"
	"github.com/dodoas/saft-go/pkg/saft/types"
	"github.com/dodoas/saft-go/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// renderProfile selects the strictness profile for parsing.
var renderProfile string

// renderOutput is an explicit output path, overriding the config naming.
var renderOutput string

// =============================================================================
// RENDER COMMAND DEFINITION
// =============================================================================

// renderCmd represents the 'render' command.
var renderCmd = &cobra.Command{
	Use:   "render <file>",
	Short: "Render an audit file as an HTML report",
	Long: `The render command parses an audit file and writes a human-readable HTML
report. Standard account ids and standard tax codes are annotated from the
national registers; account, customer, supplier and analysis references in
journal lines are annotated from the file's own master data. References with
no match render with an explicit not-found note.`,

	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(args[0])
	},
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runRender(path string) error {
	doc, err := parseInput(path, renderProfile)
	if err != nil {
		return err
	}

	report := fmt.Sprintf(
		"<!DOCTYPE html><html><head><meta charset=\"utf-8\"><style>%s</style></head><body>%s</body></html>",
		saft.ReportCSS(), saft.RenderReport(doc))

	outPath := renderOutput
	if outPath == "" {
		name := utils.GenerateOutputFileName(cfg.FileNameFormat, path, ".html")
		outPath = filepath.Join(cfg.OutputDir, name)
	}

	if err := utils.WriteOutputFile(outPath, []byte(report)); err != nil {
		return err
	}
	log.Info().Str("file", path).Str("output", outPath).Msg("report written")
	fmt.Println(outPath)
	return nil
}

// parseInput reads and constructs an audit file under the profile named by
// the flag, falling back to the configured default when the flag is empty.
func parseInput(path, profileFlag string) (*types.AuditFile, error) {
	name := profileFlag
	if name == "" {
		name = cfg.Profile
	}
	profile, err := types.ProfileFromString(name)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	log.Debug().Str("file", path).Stringer("profile", profile).Msg("parsing")

	doc, err := saft.ParseDocumentAs(profile, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the render command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVar(
		&renderProfile,
		"profile",
		"",
		"Strictness profile: strict, relaxed or sliced (default from config)",
	)

	renderCmd.Flags().StringVarP(
		&renderOutput,
		"output",
		"o",
		"",
		"Output path (default derives from the config file name pattern)",
	)
}
