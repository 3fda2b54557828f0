// =============================================================================
// SAF-T Financial - Main Entry Point
// =============================================================================
//
// This is the main entry point for the saft CLI. It initializes the Cobra
// CLI framework and delegates command execution to the cmd package.
//
// USAGE:
//   saft validate <file>    - Check a file against the SAF-T schema
//   saft render <file>      - Produce an HTML report
//   saft rewrite <file>     - Normalization round trip
//   saft export <file>      - Flatten to an XLSX workbook
//   saft version            - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Parsing, writing, validation, rendering, export
//   - pkg/saft/      : Public library API, type model, reference data
//   - pkg/utils/     : File naming and output helpers
//
// =============================================================================

package main

import (
	"github.com/dodoas/saft-go/cmd"
)

// main simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
