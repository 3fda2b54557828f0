// =============================================================================
// SAF-T Financial - Strictness Profiles and the Field Constraint Table
// =============================================================================
//
// The governing schema restricts leaf values with bounded text lengths,
// digit-count rules for decimals and a handful of enumerations. The same
// logical schema is used under three interchangeable strictness profiles:
//
//   Strict  - every bound enforced; construction fails on violation.
//             Use for documents that must validate against the XSD.
//   Relaxed - same field set and required/optional shape, but all
//             length/digit/enum bounds are waived. Use for data imported
//             from systems that do not honor the limits.
//   Sliced  - like Strict, but over-long text is silently truncated to the
//             field maximum instead of rejected. Numeric bounds are still
//             enforced by rejection (truncating a number changes its value).
//
// To keep the three profiles from drifting apart, the constraint rules are
// represented exactly once: a table keyed by semantic kind, interpreted per
// profile by CheckText / CheckDecimal. The node structs in types.go never
// duplicate a limit.
//
// =============================================================================

package types

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// PROFILES
// =============================================================================

// Profile selects the strictness rule set applied at construction time.
type Profile int

const (
	// ProfileStrict enforces every bound and fails construction on violation.
	ProfileStrict Profile = iota

	// ProfileRelaxed keeps the schema shape but waives all value bounds.
	ProfileRelaxed

	// ProfileSliced truncates over-long text to the field maximum and
	// enforces numeric bounds by rejection.
	ProfileSliced
)

// String returns the lower-case profile name used by the CLI and in errors.
func (p Profile) String() string {
	switch p {
	case ProfileStrict:
		return "strict"
	case ProfileRelaxed:
		return "relaxed"
	case ProfileSliced:
		return "sliced"
	}
	return fmt.Sprintf("profile(%d)", int(p))
}

// ProfileFromString parses a profile name (as accepted on the command line).
func ProfileFromString(s string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return ProfileStrict, nil
	case "relaxed":
		return ProfileRelaxed, nil
	case "sliced":
		return ProfileSliced, nil
	}
	return ProfileStrict, fmt.Errorf("unknown profile %q (want strict, relaxed or sliced)", s)
}

// =============================================================================
// TEXT KINDS
// =============================================================================

// TextKind identifies the semantic text type of a field. The names follow
// the schema's simple types (SAFcodeType, SAFshorttextType, ...).
type TextKind int

const (
	// TextCode is SAFcodeType: at most 9 characters.
	TextCode TextKind = iota

	// TextShort is SAFshorttextType: at most 18 characters.
	TextShort

	// TextMiddle1 is SAFmiddle1textType: at most 35 characters.
	TextMiddle1

	// TextMiddle2 is SAFmiddle2textType: at most 70 characters.
	TextMiddle2

	// TextLong is SAFlongtextType: at most 256 characters.
	TextLong

	// TextCountryCode is an ISO 3166-1 alpha-2 country code: exactly 2 characters.
	TextCountryCode

	// TextCurrencyCode is an ISO 4217 currency code: exactly 3 characters.
	TextCurrencyCode

	// TextFree is unbounded text (Notes, Website).
	TextFree

	// TextAddressType is the bounded address-type enumeration.
	TextAddressType
)

type textRule struct {
	name  string
	max   int  // maximum length in characters; 0 means unbounded
	exact bool // value must be exactly max characters long
	enum  []string
}

// textRules is the single source of truth for every text bound in the schema.
var textRules = map[TextKind]textRule{
	TextCode:         {name: "SAFcodeType", max: 9},
	TextShort:        {name: "SAFshorttextType", max: 18},
	TextMiddle1:      {name: "SAFmiddle1textType", max: 35},
	TextMiddle2:      {name: "SAFmiddle2textType", max: 70},
	TextLong:         {name: "SAFlongtextType", max: 256},
	TextCountryCode:  {name: "ISOCountryCode", max: 2, exact: true},
	TextCurrencyCode: {name: "ISOCurrencyCode", max: 3, exact: true},
	TextFree:         {name: "string"},
	TextAddressType: {
		name: "AddressType",
		enum: []string{"StreetAddress", "PostalAddress", "BillingAddress", "ShipToAddress", "ShipFromAddress"},
	},
}

// CheckText applies the profile's interpretation of the kind's rule to a raw
// string value. Under Sliced, over-long values come back truncated; under
// Relaxed, values pass through unchanged.
func CheckText(p Profile, kind TextKind, value string) (string, error) {
	rule := textRules[kind]
	if p == ProfileRelaxed {
		return value, nil
	}

	if p == ProfileSliced && rule.max > 0 {
		if runes := []rune(value); len(runes) > rule.max {
			value = string(runes[:rule.max])
		}
	}

	if rule.enum != nil {
		for _, allowed := range rule.enum {
			if value == allowed {
				return value, nil
			}
		}
		return "", fmt.Errorf("%s must be one of %s", rule.name, strings.Join(rule.enum, ", "))
	}

	length := len([]rune(value))
	if rule.exact && length != rule.max {
		return "", fmt.Errorf("%s must be exactly %d characters, got %d", rule.name, rule.max, length)
	}
	if !rule.exact && rule.max > 0 && length > rule.max {
		return "", fmt.Errorf("%s must be at most %d characters, got %d", rule.name, rule.max, length)
	}

	return value, nil
}

// =============================================================================
// DECIMAL KINDS
// =============================================================================

// DecimalKind identifies the precision rule of a decimal field.
type DecimalKind int

const (
	// DecimalMonetary is SAFmonetaryType: 18 total digits, 2 fraction digits.
	DecimalMonetary DecimalKind = iota

	// DecimalExchangeRate is SAFexchangerateType: 18 total digits, 8 fraction digits.
	DecimalExchangeRate

	// DecimalQuantity is SAFquantityType: 22 total digits, 6 fraction digits.
	DecimalQuantity

	// DecimalWeight is SAFweightType: 14 total digits, 3 fraction digits.
	// Referenced only by schema nodes marked "not in use"; carried here so
	// the table matches the governing schema's simple types.
	DecimalWeight

	// DecimalFree is an unconstrained decimal (percentages, base rates).
	DecimalFree
)

type decimalRule struct {
	name     string
	digits   int // total significant digits; 0 means unbounded
	fraction int // maximum fraction digits; also the canonical scale
}

var decimalRules = map[DecimalKind]decimalRule{
	DecimalMonetary:     {name: "SAFmonetaryType", digits: 18, fraction: 2},
	DecimalExchangeRate: {name: "SAFexchangerateType", digits: 18, fraction: 8},
	DecimalQuantity:     {name: "SAFquantityType", digits: 22, fraction: 6},
	DecimalWeight:       {name: "SAFweightType", digits: 14, fraction: 3},
	DecimalFree:         {name: "decimal"},
}

// CheckDecimal applies the profile's interpretation of the kind's precision
// rule and canonicalizes the value's scale. Values within bounds are
// rescaled to exactly the kind's fraction-digit count (598.0 becomes
// 598.00); this padding never changes the numeric value and is what makes
// the codec round-trip field-wise. A value with more fraction digits than
// the rule allows is rejected under Strict and Sliced (truncation would
// change the value) and kept verbatim under Relaxed.
func CheckDecimal(p Profile, kind DecimalKind, value decimal.Decimal) (decimal.Decimal, error) {
	rule := decimalRules[kind]

	// Minimal form: shopspring's String() trims trailing fraction zeros, so
	// re-parsing it yields a representation-independent starting point.
	minimal, err := decimal.NewFromString(value.String())
	if err != nil {
		return decimal.Decimal{}, err
	}

	intDigits, fracDigits := countDigits(minimal)

	if rule.fraction > 0 && fracDigits <= rule.fraction {
		minimal = minimal.Round(int32(rule.fraction))
	}

	if p == ProfileRelaxed || rule.digits == 0 {
		return minimal, nil
	}

	if fracDigits > rule.fraction {
		return decimal.Decimal{}, fmt.Errorf("%s allows at most %d fraction digits, got %d",
			rule.name, rule.fraction, fracDigits)
	}
	if intDigits+fracDigits > rule.digits {
		return decimal.Decimal{}, fmt.Errorf("%s allows at most %d digits, got %d",
			rule.name, rule.digits, intDigits+fracDigits)
	}

	return minimal, nil
}

// FormatDecimal serializes a decimal in fixed-point notation at the kind's
// declared scale. Values carrying more fraction digits than the rule allows
// (possible under Relaxed) serialize exactly, without rounding.
func FormatDecimal(kind DecimalKind, value decimal.Decimal) string {
	rule := decimalRules[kind]
	if rule.fraction == 0 {
		return value.String()
	}
	if _, frac := countDigits(value); frac > rule.fraction {
		return value.String()
	}
	return value.StringFixed(int32(rule.fraction))
}

// countDigits reports the significant integer and fraction digit counts of a
// decimal, ignoring sign and leading zeros.
func countDigits(d decimal.Decimal) (intDigits, fracDigits int) {
	s := d.Abs().String()
	intPart, fracPart, _ := strings.Cut(s, ".")
	intPart = strings.TrimLeft(intPart, "0")
	return len(intPart), len(fracPart)
}
