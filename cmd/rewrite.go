// =============================================================================
// SAF-T Financial - Rewrite Command
// =============================================================================
//
// This file defines the 'rewrite' command, the normalization round trip:
// parse the input, construct it under a strictness profile, and write it
// back out. The output carries canonical decimal scales, canonical element
// order and no absent optionals, whatever the input looked like.
//
// COMMAND USAGE:
//   saft rewrite <file> [flags]
//
// FLAGS:
//   --profile   : Strictness profile for parsing (strict, relaxed, sliced)
//   --canonical : Ignore the configured writer settings and use the
//                 default serialization (two-space indent, declaration)
//   --output    : Explicit output path; default derives from the config
//                 file name pattern in the configured output directory
//
// Under the sliced profile this doubles as a repair tool: over-long text is
// truncated to the schema maximum before writing.
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

// rewriteProfile selects the strictness profile for parsing.
var rewriteProfile string

// rewriteCanonical ignores configured writer settings.
var rewriteCanonical bool

// rewriteOutput is an explicit output path, overriding the config naming.
var rewriteOutput string

// =============================================================================
// REWRITE COMMAND DEFINITION
// =============================================================================

// rewriteCmd represents the 'rewrite' command.
var rewriteCmd = &cobra.Command{
	Use:   "rewrite <file>",
	Short: "Parse an audit file and write it back in canonical form",
	Long: `The rewrite command parses an audit file under the chosen strictness
profile and serializes it again. The output is the canonical rendition of
the same document: monetary values at scale 2, exchange rates at scale 8,
quantities at scale 6, elements in schema order, absent optionals omitted.

A file that survives 'rewrite' under the strict profile is well formed and
constraint clean; with --profile sliced the command also truncates
over-long text down to the schema maximum.`,

	Args: cobra.ExactArgs(1),

	RunE: func(cmd *cobra.Command, args []string) error {
		return runRewrite(args[0])
	},
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runRewrite(path string) error {
	doc, err := parseInput(path, rewriteProfile)
	if err != nil {
		return err
	}

	opts := saft.DefaultWriteOptions()
	if !rewriteCanonical {
		opts.Indent = cfg.Indent
		opts.IncludeXMLDeclaration = !cfg.OmitXMLDeclaration
	}

	out, err := saft.WriteDocumentWith(doc, opts)
	if err != nil {
		return err
	}

	outPath := rewriteOutput
	if outPath == "" {
		name := utils.GenerateOutputFileName(cfg.FileNameFormat, path, ".xml")
		outPath = filepath.Join(cfg.OutputDir, name)
	}

	if err := utils.WriteOutputFile(outPath, out); err != nil {
		return err
	}
	log.Info().Str("file", path).Str("output", outPath).Msg("rewritten")
	fmt.Println(outPath)
	return nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init registers the rewrite command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(rewriteCmd)

	rewriteCmd.Flags().StringVar(
		&rewriteProfile,
		"profile",
		"",
		"Strictness profile: strict, relaxed or sliced (default from config)",
	)

	rewriteCmd.Flags().BoolVar(
		&rewriteCanonical,
		"canonical",
		false,
		"Ignore configured writer settings and use the default serialization",
	)

	rewriteCmd.Flags().StringVarP(
		&rewriteOutput,
		"output",
		"o",
		"",
		"Output path (default derives from the config file name pattern)",
	)
}
