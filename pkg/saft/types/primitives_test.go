package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2020-10-31")
	require.NoError(t, err)
	assert.Equal(t, Date{Year: 2020, Month: time.October, Day: 31}, d)
	assert.Equal(t, "2020-10-31", d.String())
}

func TestParseDateRejectsBadInput(t *testing.T) {
	for _, input := range []string{"", "31.10.2020", "2020-13-01", "2020-02-30", "2020-10-31T00:00:00"} {
		_, err := ParseDate(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestDateComparable(t *testing.T) {
	a := NewDate(2021, time.January, 2)
	b, err := ParseDate("2021-01-02")
	require.NoError(t, err)
	assert.True(t, a == b)
	assert.False(t, a.IsZero())
	assert.True(t, Date{}.IsZero())
}

func TestParseDateTime(t *testing.T) {
	d, err := ParseDateTime("2020-10-31T13:45:59")
	require.NoError(t, err)
	assert.Equal(t, 2020, d.Year)
	assert.Equal(t, 13, d.Hour)
	assert.Equal(t, 45, d.Minute)
	assert.Equal(t, 59, d.Second)
	assert.Equal(t, "2020-10-31T13:45:59", d.String())
}

func TestParseDateTimeRejectsZoneSuffix(t *testing.T) {
	_, err := ParseDateTime("2020-10-31T13:45:59Z")
	assert.Error(t, err)
}

func TestParseBool(t *testing.T) {
	for _, input := range []string{"true", "TRUE", "1", "yes", " Yes "} {
		v, err := ParseBool(input)
		require.NoError(t, err, "input %q", input)
		assert.True(t, v, "input %q", input)
	}
	for _, input := range []string{"false", "False", "0", "no"} {
		v, err := ParseBool(input)
		require.NoError(t, err, "input %q", input)
		assert.False(t, v, "input %q", input)
	}
	_, err := ParseBool("ja")
	assert.Error(t, err)
}

func TestFormatBool(t *testing.T) {
	assert.Equal(t, "true", FormatBool(true))
	assert.Equal(t, "false", FormatBool(false))
}
