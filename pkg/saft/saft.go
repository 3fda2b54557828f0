// =============================================================================
// SAF-T Financial - Public Facade
// =============================================================================
//
// Top-level entry points for working with Norwegian SAF-T Financial audit
// files. The heavy lifting lives in the internal packages; this package
// wires them into the operations callers actually want:
//
//   ParseDocument     XML -> *types.AuditFile under the Strict profile
//   ParseDocumentAs   same, with a caller-chosen strictness profile
//   WriteDocument     *types.AuditFile -> canonical XML
//   ValidateDocument  XML -> schema validation verdict
//   RenderReport      *types.AuditFile -> HTML fragment
//   ExportWorkbook    *types.AuditFile -> XLSX workbook bytes
//
// ERROR HANDLING:
//   - ParseDocument returns parser.ErrMalformedXML (wrapped) for broken
//     XML and *types.ConstraintError for documents that do not satisfy the
//     chosen profile.
//   - ValidateDocument never fails on invalid input; the verdict carries
//     the schema violations. Malformed XML is just another invalid input.
//   - WriteDocument refuses documents that did not come out of
//     types.Construct (scribe.ErrNotConstructed).
//
// =============================================================================

package saft

import (
	"bytes"

	"github.com/dodoas/saft-go/internal/export"
	"github.com/dodoas/saft-go/internal/parser"
	"github.com/dodoas/saft-go/internal/render"
	"github.com/dodoas/saft-go/internal/scribe"
	"github.com/dodoas/saft-go/internal/xsdvalidate"
	"github.com/dodoas/saft-go/pkg/saft/types"
)

// WriteOptions controls XML serialization. The zero value is not useful;
// start from DefaultWriteOptions.
type WriteOptions = scribe.Options

// ValidationResult is the schema validation verdict.
type ValidationResult = xsdvalidate.Result

// DefaultWriteOptions returns the canonical serialization settings:
// two-space indent with an XML declaration.
func DefaultWriteOptions() WriteOptions {
	return scribe.DefaultOptions()
}

// ParseDocument parses audit file XML and constructs it under the Strict
// profile.
func ParseDocument(data []byte) (*types.AuditFile, error) {
	return ParseDocumentAs(types.ProfileStrict, data)
}

// ParseDocumentAs parses audit file XML and constructs it under the given
// profile.
func ParseDocumentAs(profile types.Profile, data []byte) (*types.AuditFile, error) {
	raw, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return types.Construct(profile, raw)
}

// WriteDocument serializes a constructed document with the default
// options.
func WriteDocument(doc *types.AuditFile) ([]byte, error) {
	return WriteDocumentWith(doc, DefaultWriteOptions())
}

// WriteDocumentWith serializes a constructed document.
func WriteDocumentWith(doc *types.AuditFile, opts WriteOptions) ([]byte, error) {
	var buf bytes.Buffer
	if err := scribe.WriteWithOptions(&buf, doc, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ValidateDocument checks audit file XML against the governing schema.
// Invalid documents are a verdict, not an error.
func ValidateDocument(data []byte) ValidationResult {
	result, err := xsdvalidate.ValidateBytes(data)
	if err != nil {
		return ValidationResult{Valid: false, Errors: []string{err.Error()}}
	}
	return result
}

// RenderReport renders the HTML report fragment for a document.
func RenderReport(doc *types.AuditFile) string {
	return render.Render(doc)
}

// ReportCSS returns the stylesheet the report fragment is designed for.
func ReportCSS() string {
	return render.CSS()
}

// ExportWorkbook flattens a document into an XLSX workbook.
func ExportWorkbook(doc *types.AuditFile) ([]byte, error) {
	var buf bytes.Buffer
	if err := export.Write(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
