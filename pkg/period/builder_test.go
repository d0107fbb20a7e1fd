package period

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, b *Builder) *Formatter {
	t.Helper()
	f, err := b.ToFormatter()
	require.NoError(t, err)
	return f
}

func printed(t *testing.T, f *Formatter, p ReadablePeriod) string {
	t.Helper()
	s, err := f.Print(p)
	require.NoError(t, err)
	return s
}

func TestSuffixWithoutField(t *testing.T) {
	b := NewBuilder().AppendSuffix("Y")
	assert.ErrorIs(t, b.Err(), ErrInvalidState)
	_, err := b.ToFormatter()
	assert.ErrorIs(t, err, ErrInvalidState)

	b = NewBuilder().AppendYears().AppendLiteral("-").AppendSuffix("Y")
	assert.ErrorIs(t, b.Err(), ErrInvalidState, "a literal is not a field")
}

func TestAdjacentSeparators(t *testing.T) {
	b := NewBuilder().AppendYears().AppendSeparator(",").AppendSeparator(";")
	_, err := b.ToFormatter()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestLeadingSeparator(t *testing.T) {
	f := build(t, NewBuilder().AppendSeparator(",").AppendDays())
	assert.Equal(t, "3", printed(t, f, Days(3)), "a leading separator with nothing before is dropped")

	f = build(t, NewBuilder().AppendSeparatorIfFieldsAfter("T").AppendHours())
	assert.Equal(t, "T3", printed(t, f, Hours(3)))
	assert.Equal(t, "", printed(t, f, Days(3)))
}

func TestNeitherPrinterNorParser(t *testing.T) {
	printOnly, err := NewBuilder().AppendDays().ToPrinter()
	require.NoError(t, err)
	parseOnly, err := NewBuilder().AppendHours().ToParser()
	require.NoError(t, err)
	assert.True(t, printOnly.IsPrinter())
	assert.False(t, printOnly.IsParser())
	assert.False(t, parseOnly.IsPrinter())

	_, err = parseOnly.Print(Days(1))
	assert.ErrorIs(t, err, ErrUnsupportedOperation)
	_, err = printOnly.ParsePeriod("1")
	assert.ErrorIs(t, err, ErrUnsupportedOperation)

	_, err = NewBuilder().Append(printOnly).Append(parseOnly).ToFormatter()
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = NewBuilder().Append(printOnly).ToParser()
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestFormattersAreIndependent(t *testing.T) {
	b := NewBuilder().AppendYears().AppendSuffix("Y")
	first := build(t, b)
	b.AppendDays().AppendSuffix("D")
	second := build(t, b)

	assert.Equal(t, "0Y", printed(t, first, Zero))
	assert.Equal(t, "0D", printed(t, second, Zero))
	assert.Equal(t, "0Y", printed(t, first, Zero))

	b.Clear()
	_, err := b.AppendDays().ToFormatter()
	require.NoError(t, err)
	assert.Equal(t, "0D", printed(t, second, Zero))
}

func TestAppendKeepsOwnZeroContext(t *testing.T) {
	inner := build(t, NewBuilder().AppendHours().AppendSuffix("h"))
	outer := build(t, NewBuilder().AppendDays().AppendSuffix("d").Append(inner))
	assert.Equal(t, "0d0h", printed(t, outer, Zero))
	assert.Equal(t, "2h", printed(t, outer, Hours(2)))

	p, err := outer.ParsePeriod("1d2h")
	require.NoError(t, err)
	assert.Equal(t, "P1DT2H", p.String())
}

func TestSeparatorFinalText(t *testing.T) {
	f := build(t, NewBuilder().
		AppendDays().AppendSuffix("d").
		AppendSeparatorWithFinal(", ", " & ").
		AppendHours().AppendSuffix("h").
		AppendSeparatorWithFinal(", ", " & ").
		AppendMinutes().AppendSuffix("m"))

	assert.Equal(t, "1d, 2h & 3m", printed(t, f, New(0, 0, 0, 1, 2, 3, 0, 0)))
	assert.Equal(t, "1d & 3m", printed(t, f, New(0, 0, 0, 1, 0, 3, 0, 0)))
	assert.Equal(t, "2h", printed(t, f, NewTime(2, 0, 0, 0)))
	assert.Equal(t, "0m", printed(t, f, Zero))

	p, err := f.ParsePeriod("1d, 2h & 3m")
	require.NoError(t, err)
	assert.True(t, p.Equal(New(0, 0, 0, 1, 2, 3, 0, 0)), p.String())

	p, err = f.ParsePeriod("1D & 3M")
	require.NoError(t, err)
	assert.True(t, p.Equal(New(0, 0, 0, 1, 0, 3, 0, 0)), p.String())

	p, err = f.ParsePeriod("1d3m")
	require.NoError(t, err, "separators between fields are optional when parsing")
	assert.Equal(t, "P1DT3M", p.String())

	_, err = f.ParsePeriod("1d, ")
	assert.ErrorIs(t, err, ErrInvalidArgument, "nothing after the separator")
}

func TestSeparatorVariants(t *testing.T) {
	f := build(t, NewBuilder().
		AppendHours().AppendSuffix("h").
		AppendSeparatorWithVariants(":", ":", "-", " ").
		AppendMinutes().AppendSuffix("m"))

	for _, text := range []string{"1h:2m", "1h-2m", "1h 2m"} {
		p, err := f.ParsePeriod(text)
		require.NoError(t, err, text)
		assert.Equal(t, "PT1H2M", p.String())
	}
}

func TestPrefixes(t *testing.T) {
	f := build(t, NewBuilder().AppendPrefix("~").AppendDays())
	assert.Equal(t, "~5", printed(t, f, Days(5)))
	p, err := f.ParsePeriod("~5")
	require.NoError(t, err)
	assert.Equal(t, int32(5), p.Days())

	f = build(t, NewBuilder().
		AppendPluralPrefix("day ", "days ").AppendDays().
		AppendLiteral("/").
		AppendPrefix("<").AppendPrefix("h=").AppendHours())
	assert.Equal(t, "day 1/<h=2", printed(t, f, New(0, 0, 0, 1, 2, 0, 0, 0)))
	assert.Equal(t, "days 3/<h=2", printed(t, f, New(0, 0, 0, 3, 2, 0, 0, 0)))
	p, err = f.ParsePeriod("DAYS 3/<h=2")
	require.NoError(t, err)
	assert.Equal(t, "P3DT2H", p.String())

	f = build(t, NewBuilder().AppendPrefix("dropped").AppendLiteral("x").AppendDays())
	assert.Equal(t, "x4", printed(t, f, Days(4)), "a literal discards the pending prefix")
}

func TestPluralSuffix(t *testing.T) {
	f := build(t, NewBuilder().AppendYears().AppendPluralSuffix(" year", " years"))
	assert.Equal(t, "1 year", printed(t, f, Years(1)))
	assert.Equal(t, "2 years", printed(t, f, Years(2)))

	for _, text := range []string{"1 years", "2 year", "2 YEARS"} {
		_, err := f.ParsePeriod(text)
		assert.NoError(t, err, text)
	}
}

func TestDigits(t *testing.T) {
	f := build(t, NewBuilder().MinimumPrintedDigits(2).AppendDays().AppendSuffix("d"))
	assert.Equal(t, "05d", printed(t, f, Days(5)))
	assert.Equal(t, "-05d", printed(t, f, Days(-5)))
	assert.Equal(t, "123d", printed(t, f, Days(123)))

	f = build(t, NewBuilder().MaximumParsedDigits(2).AppendDays())
	_, err := f.ParsePeriod("123")
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Pos)

	f = build(t, NewBuilder().AppendMillis3Digit())
	assert.Equal(t, "007", printed(t, f, Millis(7)))

	f = build(t, NewBuilder().AppendSecondsWithMillis())
	assert.Equal(t, "3.000", printed(t, f, Seconds(3)))
	assert.Equal(t, "-0.250", printed(t, f, Millis(-250)))
}

func TestRejectSignedValues(t *testing.T) {
	f := build(t, NewBuilder().RejectSignedValues(true).AppendDays().AppendSuffix("d"))
	_, err := f.ParsePeriod("-5d")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	p, err := f.ParsePeriod("5d")
	require.NoError(t, err)
	assert.Equal(t, int32(5), p.Days())
}

func TestZeroPolicies(t *testing.T) {
	always := build(t, NewBuilder().PrintZeroAlways().AppendYears().AppendSuffix("y"))
	assert.Equal(t, "0y", printed(t, always, Days(3)), "printed even when unsupported")
	_, err := always.ParsePeriod("")
	assert.ErrorIs(t, err, ErrInvalidArgument, "required when parsing")

	ifSupported := build(t, NewBuilder().PrintZeroIfSupported().
		AppendYears().AppendSuffix("y").AppendMonths().AppendSuffix("m"))
	assert.Equal(t, "0y", printed(t, ifSupported, Years(0)))
	assert.Equal(t, "0y0m", printed(t, ifSupported, Zero))

	never := build(t, NewBuilder().PrintZeroNever().AppendYears().AppendSuffix("y"))
	assert.Equal(t, "", printed(t, never, Zero))

	first := build(t, NewBuilder().PrintZeroRarelyFirst().
		AppendYears().AppendSuffix("y").AppendDays().AppendSuffix("d"))
	assert.Equal(t, "0y", printed(t, first, Zero))
	assert.Equal(t, "0d", printed(t, first, Days(0)), "years unsupported")
	assert.Equal(t, "2d", printed(t, first, Days(2)))

	last := build(t, NewBuilder().
		AppendYears().AppendSuffix("y").AppendDays().AppendSuffix("d"))
	assert.Equal(t, "0d", printed(t, last, Zero))
	assert.Equal(t, "0y", printed(t, last, Years(0)), "days unsupported")
}

func TestSuffixLookahead(t *testing.T) {
	f := build(t, NewBuilder().
		AppendHours().AppendSuffix("h").
		AppendMinutes().AppendSuffix("m"))

	p, err := f.ParsePeriod("5m")
	require.NoError(t, err)
	assert.Equal(t, "PT5M", p.String())

	p, err = f.ParsePeriod("2h5m")
	require.NoError(t, err)
	assert.Equal(t, "PT2H5M", p.String())
}

func TestWithLocaleAndParseType(t *testing.T) {
	f := ISOStandard().WithParseType(YearMonthDay)
	assert.Same(t, YearMonthDay, f.ParseType())
	assert.Same(t, Standard, ISOStandard().ParseType(), "original unchanged")

	mp, err := f.ParseMutable("P1Y2M3D")
	require.NoError(t, err)
	assert.Same(t, YearMonthDay, mp.Type())
}
