package types

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func TestProfileFromString(t *testing.T) {
	for name, want := range map[string]Profile{
		"strict":  ProfileStrict,
		"Relaxed": ProfileRelaxed,
		" sliced": ProfileSliced,
	} {
		got, err := ProfileFromString(name)
		require.NoError(t, err, "name %q", name)
		assert.Equal(t, want, got)
	}
	_, err := ProfileFromString("lenient")
	assert.Error(t, err)
}

func TestCheckTextLengthBoundPerProfile(t *testing.T) {
	long := strings.Repeat("x", 36)

	_, err := CheckText(ProfileStrict, TextMiddle1, long)
	assert.Error(t, err)

	got, err := CheckText(ProfileRelaxed, TextMiddle1, long)
	require.NoError(t, err)
	assert.Equal(t, long, got)

	got, err = CheckText(ProfileSliced, TextMiddle1, long)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 35), got)
}

func TestCheckTextAtBoundPasses(t *testing.T) {
	exact := strings.Repeat("x", 35)
	got, err := CheckText(ProfileStrict, TextMiddle1, exact)
	require.NoError(t, err)
	assert.Equal(t, exact, got)
}

func TestCheckTextCountryCode(t *testing.T) {
	got, err := CheckText(ProfileStrict, TextCountryCode, "NO")
	require.NoError(t, err)
	assert.Equal(t, "NO", got)

	_, err = CheckText(ProfileStrict, TextCountryCode, "NOR")
	assert.Error(t, err)

	// Slicing reduces an over-long code to the exact length.
	got, err = CheckText(ProfileSliced, TextCountryCode, "NOR")
	require.NoError(t, err)
	assert.Equal(t, "NO", got)

	// Too short cannot be repaired by slicing.
	_, err = CheckText(ProfileSliced, TextCountryCode, "N")
	assert.Error(t, err)

	got, err = CheckText(ProfileRelaxed, TextCountryCode, "Norway")
	require.NoError(t, err)
	assert.Equal(t, "Norway", got)
}

func TestCheckTextCurrencyCode(t *testing.T) {
	_, err := CheckText(ProfileStrict, TextCurrencyCode, "NOKK")
	assert.Error(t, err)

	got, err := CheckText(ProfileSliced, TextCurrencyCode, "NOKK")
	require.NoError(t, err)
	assert.Equal(t, "NOK", got)
}

func TestCheckTextAddressTypeEnum(t *testing.T) {
	got, err := CheckText(ProfileStrict, TextAddressType, "PostalAddress")
	require.NoError(t, err)
	assert.Equal(t, "PostalAddress", got)

	_, err = CheckText(ProfileStrict, TextAddressType, "HomeAddress")
	assert.Error(t, err)

	got, err = CheckText(ProfileRelaxed, TextAddressType, "HomeAddress")
	require.NoError(t, err)
	assert.Equal(t, "HomeAddress", got)
}

func TestCheckTextCountsRunesNotBytes(t *testing.T) {
	// Nine multi-byte characters fit a nine-character code field.
	got, err := CheckText(ProfileStrict, TextCode, "ÆØÅæøåÆØÅ")
	require.NoError(t, err)
	assert.Equal(t, "ÆØÅæøåÆØÅ", got)
}

func TestCheckDecimalCanonicalizesScale(t *testing.T) {
	got, err := CheckDecimal(ProfileStrict, DecimalMonetary, dec(t, "598.0"))
	require.NoError(t, err)
	assert.Equal(t, "598.00", FormatDecimal(DecimalMonetary, got))

	got, err = CheckDecimal(ProfileStrict, DecimalMonetary, dec(t, "100"))
	require.NoError(t, err)
	assert.Equal(t, "100.00", FormatDecimal(DecimalMonetary, got))

	got, err = CheckDecimal(ProfileStrict, DecimalExchangeRate, dec(t, "10.5"))
	require.NoError(t, err)
	assert.Equal(t, "10.50000000", FormatDecimal(DecimalExchangeRate, got))
}

func TestCheckDecimalOverScale(t *testing.T) {
	over := dec(t, "0.123")

	_, err := CheckDecimal(ProfileStrict, DecimalMonetary, over)
	assert.Error(t, err)

	// Truncating a number changes its value; Sliced rejects too.
	_, err = CheckDecimal(ProfileSliced, DecimalMonetary, over)
	assert.Error(t, err)

	got, err := CheckDecimal(ProfileRelaxed, DecimalMonetary, over)
	require.NoError(t, err)
	assert.Equal(t, "0.123", FormatDecimal(DecimalMonetary, got))
}

func TestCheckDecimalDigitBound(t *testing.T) {
	// 17 integer digits plus 2 fraction digits exceeds the 18-digit bound.
	tooWide := dec(t, "12345678901234567.89")
	_, err := CheckDecimal(ProfileStrict, DecimalMonetary, tooWide)
	assert.Error(t, err)

	got, err := CheckDecimal(ProfileRelaxed, DecimalMonetary, tooWide)
	require.NoError(t, err)
	assert.True(t, tooWide.Equal(got))

	// 16 + 2 fits.
	fits := dec(t, "1234567890123456.78")
	_, err = CheckDecimal(ProfileStrict, DecimalMonetary, fits)
	assert.NoError(t, err)
}

func TestCheckDecimalQuantity(t *testing.T) {
	got, err := CheckDecimal(ProfileStrict, DecimalQuantity, dec(t, "1.123456"))
	require.NoError(t, err)
	assert.Equal(t, "1.123456", FormatDecimal(DecimalQuantity, got))

	_, err = CheckDecimal(ProfileStrict, DecimalQuantity, dec(t, "1.1234567"))
	assert.Error(t, err)
}

func TestCheckDecimalTrailingZerosDoNotCountAsFraction(t *testing.T) {
	// 0.120 minimizes to 0.12, which fits the monetary scale.
	got, err := CheckDecimal(ProfileStrict, DecimalMonetary, dec(t, "0.120"))
	require.NoError(t, err)
	assert.Equal(t, "0.12", FormatDecimal(DecimalMonetary, got))
}

func TestFormatDecimalFreeKind(t *testing.T) {
	assert.Equal(t, "25", FormatDecimal(DecimalFree, dec(t, "25")))
	assert.Equal(t, "11.3", FormatDecimal(DecimalFree, dec(t, "11.3")))
}

func TestFormatDecimalNegative(t *testing.T) {
	got, err := CheckDecimal(ProfileStrict, DecimalMonetary, dec(t, "-5"))
	require.NoError(t, err)
	assert.Equal(t, "-5.00", FormatDecimal(DecimalMonetary, got))
}
