package timeparser

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	ts, err := Parse("2007-07-01T00:00:00.000+02:00")
	require.NoError(t, err)

	assert.Equal(t, CE, ts.Era)
	assert.Equal(t, 2007, ts.YearOfEra)
	assert.Equal(t, "+02:00", ts.Offset)
	assert.True(t, ts.Time.Equal(time.Date(2007, 6, 30, 22, 0, 0, 0, time.UTC)))
}

func TestParseOptionalParts(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   time.Time
		offset string
	}{
		{"zulu without millis", "2024-02-29T12:30:45Z", time.Date(2024, 2, 29, 12, 30, 45, 0, time.UTC), "Z"},
		{"millis", "2024-02-29T12:30:45.123Z", time.Date(2024, 2, 29, 12, 30, 45, 123*int(time.Millisecond), time.UTC), "Z"},
		{"explicit plus sign", "+2024-01-01T00:00:00Z", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "Z"},
		{"negative offset", "2024-01-01T00:00:00-05:30", time.Date(2024, 1, 1, 5, 30, 0, 0, time.UTC), "-05:30"},
		{"missing designator is utc", "2024-01-01T10:00:00", time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := Parse(tt.text)
			require.NoError(t, err)
			assert.True(t, ts.Time.Equal(tt.want), "got %s", ts.Time)
			assert.Equal(t, tt.offset, ts.Offset)
		})
	}
}

func TestParseBCE(t *testing.T) {
	ts, err := Parse("0000-01-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, BCE, ts.Era)
	assert.Equal(t, 1, ts.YearOfEra)
	assert.Equal(t, 0, ts.Time.Year())

	ts, err = Parse("-0001-01-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, BCE, ts.Era)
	assert.Equal(t, 2, ts.YearOfEra)
	assert.Equal(t, -1, ts.Time.Year())

	ts, err = Parse("0001-01-01T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, CE, ts.Era)
	assert.Equal(t, 1, ts.YearOfEra)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
		pos  int
	}{
		{"invalid month", "2024-13-01T00:00:00Z", 5},
		{"february 30", "2023-02-30T00:00:00Z", 8},
		{"not a leap year", "2023-02-29T00:00:00Z", 8},
		{"hour", "2024-01-01T24:00:00Z", 11},
		{"minute", "2024-01-01T00:60:00Z", 14},
		{"second", "2024-01-01T00:00:60Z", 17},
		{"wrong delimiter", "2024/01/01T00:00:00Z", 4},
		{"missing T", "2024-01-01 00:00:00Z", 10},
		{"letters in year", "20x4-01-01T00:00:00Z", 2},
		{"truncated", "2024-01-01T00:00", 16},
		{"two digit millis", "2024-01-01T00:00:00.12Z", 22},
		{"bad designator", "2024-01-01T00:00:00X", 19},
		{"text after zulu", "2024-01-01T00:00:00Zulu", 19},
		{"short offset", "2024-01-01T00:00:00+2", 19},
		{"offset out of range", "2024-01-01T00:00:00+24:00", 19},
		{"empty", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text)
			require.Error(t, err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "expected *ParseError, got %T", err)
			assert.Equal(t, tt.pos, perr.Pos)
			assert.Equal(t, tt.text, perr.Text)
		})
	}
}

func TestFormat(t *testing.T) {
	loc := time.FixedZone("", 2*3600)
	assert.Equal(t, "2007-07-01T00:00:00.000+02:00", Format(time.Date(2007, 7, 1, 0, 0, 0, 0, loc)))
	assert.Equal(t, "2007-07-01T00:00:00.007Z", Format(time.Date(2007, 7, 1, 0, 0, 0, 7*int(time.Millisecond), time.UTC)))
	assert.Equal(t, "2007-07-01T00:00:00.000-09:30", Format(time.Date(2007, 7, 1, 0, 0, 0, 0, time.FixedZone("", -(9*3600+30*60)))))
	assert.Equal(t, "0000-03-01T00:00:00.000Z", Format(time.Date(0, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "-0001-03-01T00:00:00.000Z", Format(time.Date(-1, 3, 1, 0, 0, 0, 0, time.UTC)))
}

func TestFormatParseRoundTrip(t *testing.T) {
	inputs := []string{
		"2007-07-01T00:00:00.000+02:00",
		"2007-07-01T00:00:00+02:00",
		"2024-02-29T23:59:59.999Z",
		"1999-12-31T23:59:59-12:00",
		"+2024-06-15T08:15:00.250+14:00",
		"2024-06-15T08:15:00",
		"0000-02-29T00:00:00Z",
		"-0001-12-31T12:00:00.500+01:00",
		"-0044-03-15T12:00:00Z",
		"9999-12-31T23:59:59.999Z",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			first, err := Parse(in)
			require.NoError(t, err)

			out := Format(first.Time)
			second, err := Parse(out)
			require.NoError(t, err, "formatted %q", out)

			assert.True(t, first.Time.Equal(second.Time), "%s -> %s", in, out)
			assert.Equal(t, first.Era, second.Era)
			assert.Equal(t, first.YearOfEra, second.YearOfEra)
		})
	}
}
