// =============================================================================
// SAF-T Financial - Constraint Violations
// =============================================================================
//
// Construction is all-or-nothing: every violation found in one construction
// attempt is collected and reported together, so a caller fixing a bad
// export sees the full list instead of playing whack-a-mole. Each violation
// carries the field path, the violated rule and a kind that distinguishes
// missing fields and malformed values from out-of-bounds values.
//
// =============================================================================

package types

import (
	"fmt"
	"strings"
)

// ViolationKind classifies a constraint violation.
type ViolationKind int

const (
	// KindMissing means a required field was absent from the input.
	KindMissing ViolationKind = iota

	// KindShape means a value could not be coerced to its primitive type
	// (bad date, non-numeric decimal, unrecognized boolean, wrong nesting).
	KindShape

	// KindBounds means a well-formed value violated the active profile's
	// length, digit-count or enumeration rule.
	KindBounds
)

// String names the violation kind for error output.
func (k ViolationKind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindShape:
		return "shape"
	case KindBounds:
		return "bounds"
	}
	return "unknown"
}

// FieldViolation is a single constraint violation at a specific field path.
type FieldViolation struct {
	// Path locates the field, e.g. "header.company.contacts[0].contact_person.first_name".
	Path string

	// Kind classifies the violation.
	Kind ViolationKind

	// Rule describes the violated rule in human terms.
	Rule string
}

// String renders the violation as "path: rule (kind)".
func (v FieldViolation) String() string {
	return fmt.Sprintf("%s: %s (%s)", v.Path, v.Rule, v.Kind)
}

// ConstraintError aggregates every violation found during one construction
// attempt. It is the only error type Construct returns for data problems.
type ConstraintError struct {
	Profile    Profile
	Violations []FieldViolation
}

// Error lists all violations, one per line.
func (e *ConstraintError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "document violates %s profile (%d violation(s)):", e.Profile, len(e.Violations))
	for _, v := range e.Violations {
		b.WriteString("\n  ")
		b.WriteString(v.String())
	}
	return b.String()
}
