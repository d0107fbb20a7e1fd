package period

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustType(t *testing.T, pt *PeriodType, y, mo, w, d, h, mi, s, ms int32) Period {
	t.Helper()
	p, err := NewOfType(pt, y, mo, w, d, h, mi, s, ms)
	require.NoError(t, err)
	return p
}

func TestISOStandardPrint(t *testing.T) {
	tests := []struct {
		name string
		p    Period
		want string
	}{
		{"time", NewTime(6, 3, 7, 0), "PT6H3M7S"},
		{"zero", Zero, "PT0S"},
		{"all fields", New(1, 2, 3, 4, 5, 6, 7, 8), "P1Y2M3W4DT5H6M7.008S"},
		{"no carry", mustType(t, Time.WithoutField(MinutesField), 0, 0, 0, 0, 0, 0, 72, 345), "PT72.345S"},
		{"date only", New(0, 0, 0, 3, 0, 0, 0, 0), "P3D"},
		{"millis only", Millis(500), "PT0.500S"},
		{"negative fraction", NewTime(0, 0, 0, -500), "PT-0.500S"},
		{"negative seconds", NewTime(0, 0, -1, -500), "PT-1.500S"},
		{"zero years type", Years(0), "P0Y"},
		{"zero days type", Days(0), "P0D"},
		{"zero time type", mustType(t, Time, 0, 0, 0, 0, 0, 0, 0, 0), "PT0S"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ISOStandard().Print(tt.p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, len(got), ISOStandard().PrintedLength(tt.p))
		})
	}
}

func TestISOStandardParse(t *testing.T) {
	tests := []struct {
		text string
		want Period
	}{
		{"P1Y2M3W4DT5H6M7.008S", New(1, 2, 3, 4, 5, 6, 7, 8)},
		{"PT6H3M7S", NewTime(6, 3, 7, 0)},
		{"PT0S", Zero},
		{"p1d", New(0, 0, 0, 1, 0, 0, 0, 0)},
		{"PT7,5S", NewTime(0, 0, 7, 500)},
		{"PT7.25S", NewTime(0, 0, 7, 250)},
		{"PT7.1239S", NewTime(0, 0, 7, 123)},
		{"PT-0.5S", NewTime(0, 0, 0, -500)},
		{"PT-1.5S", NewTime(0, 0, -1, -500)},
		{"P+2D", New(0, 0, 0, 2, 0, 0, 0, 0)},
		{"P-1Y-3M", New(-1, -3, 0, 0, 0, 0, 0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ISOStandard().ParsePeriod(tt.text)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %s", got)
		})
	}
}

func TestISOStandardRoundTrip(t *testing.T) {
	for _, p := range []Period{
		Zero,
		New(1, 2, 3, 4, 5, 6, 7, 8),
		New(-1, 0, 0, 20, 0, 0, 0, 0),
		NewTime(0, 90, 0, 0),
		NewTime(0, 0, 59, 999),
		NewTime(0, 0, 0, -1),
		New(2147483647, 0, 0, 0, 0, 0, 0, 0),
	} {
		text, err := ISOStandard().Print(p)
		require.NoError(t, err)
		got, err := ISOStandard().ParsePeriod(text)
		require.NoError(t, err, text)
		assert.True(t, got.Equal(p), "%s round-tripped to %s", text, got)
	}
}

func TestISOStandardParseErrors(t *testing.T) {
	tests := []struct {
		text string
		pos  int
		msg  string
	}{
		{"", 0, `Invalid format: ""`},
		{"P1Q", 1, `Invalid format: "P1Q" is malformed at "1Q"`},
		{"PT", 2, `Invalid format: "PT" is too short`},
		{"X1D", 0, `Invalid format: "X1D"`},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, err := ISOStandard().ParsePeriod(tt.text)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.pos, perr.Pos)
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestParseErrorSampleIsTruncated(t *testing.T) {
	text := "PX" + strings.Repeat("a", 38)
	_, err := ISOStandard().ParsePeriod(text)
	sample := text[:33] + "..."
	assert.EqualError(t, err, `Invalid format: "`+sample+`" is malformed at "`+sample[1:]+`"`)
}

func TestISOStandardParseUnsupportedField(t *testing.T) {
	_, err := ISOStandard().WithParseType(Time).ParsePeriod("P1D")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	p, err := ISOStandard().WithParseType(Time).ParsePeriod("PT1H")
	require.NoError(t, err)
	assert.Same(t, Time, p.Type())
}

func TestISOAlternate(t *testing.T) {
	p := New(1, 2, 0, 4, 5, 6, 7, 0)
	got, err := ISOAlternate().Print(p)
	require.NoError(t, err)
	assert.Equal(t, "P00010204T050607", got)

	got, err = ISOAlternate().Print(Zero)
	require.NoError(t, err)
	assert.Equal(t, "P00000000T000000", got)

	parsed, err := ISOAlternate().ParsePeriod("P00010204T050607")
	require.NoError(t, err)
	assert.True(t, parsed.Equal(p), parsed.String())

	_, err = ISOAlternate().ParsePeriod("P0001")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestISOAlternateExtended(t *testing.T) {
	p := New(1, 2, 0, 4, 5, 6, 7, 500)
	got, err := ISOAlternateExtended().Print(p)
	require.NoError(t, err)
	assert.Equal(t, "P0001-02-04T05:06:07.500", got)

	parsed, err := ISOAlternateExtended().ParsePeriod(got)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(p), parsed.String())
}

func TestCompact(t *testing.T) {
	got, err := Compact().Print(New(0, 0, 0, 3, 12, 0, 0, 0))
	require.NoError(t, err)
	assert.Equal(t, "3d12h", got)

	got, err = Compact().Print(Zero)
	require.NoError(t, err)
	assert.Equal(t, "0s", got)

	for text, want := range map[string]Period{
		"1y2mo3w4d5h6m7.5s": New(1, 2, 3, 4, 5, 6, 7, 500),
		"90s":               NewTime(0, 0, 90, 0),
		"5m30s":             NewTime(0, 5, 30, 0),
		"2mo":               New(0, 2, 0, 0, 0, 0, 0, 0),
		"-1.5s":             NewTime(0, 0, -1, -500),
		"2W":                New(0, 0, 2, 0, 0, 0, 0, 0),
	} {
		p, err := Compact().ParsePeriod(text)
		require.NoError(t, err, text)
		assert.True(t, p.Equal(want), "%s parsed as %s", text, p)
	}
}

func TestPrintTo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ISOStandard().PrintTo(&buf, Days(2)))
	assert.Equal(t, "P2D", buf.String())

	b, err := ISOStandard().AppendPeriod([]byte("duration="), Hours(1))
	require.NoError(t, err)
	assert.Equal(t, "duration=PT1H", string(b))

	_, err = ISOStandard().Print(nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestParseInto(t *testing.T) {
	mp := NewMutable(nil)
	require.NoError(t, mp.SetYears(4))
	pos := ISOStandard().ParseInto(mp, "xxP2D", 2)
	assert.Equal(t, 5, pos)
	assert.Equal(t, "P4Y2D", mp.String(), "fields the text leaves out are kept")

	pos = ISOStandard().ParseInto(mp, "xxQ", 2)
	assert.Equal(t, ^2, pos)
}

func TestParseIntoOutOfRange(t *testing.T) {
	mp := NewMutable(nil)
	assert.Equal(t, ^3, ISOStandard().ParseInto(mp, "P2D", ^3), "an earlier failure passes through")
	assert.Equal(t, -1, Compact().ParseInto(mp, "2d", -1))
	assert.Equal(t, ^9, ISOStandard().ParseInto(mp, "P2D", 9))
	assert.True(t, mp.IsZero())
}
