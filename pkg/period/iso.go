package period

import "sync"

func mustFormatter(b *Builder) *Formatter {
	f, err := b.ToFormatter()
	if err != nil {
		panic(err)
	}
	return f
}

var isoStandard = sync.OnceValue(func() *Formatter {
	return mustFormatter(NewBuilder().
		AppendLiteral("P").
		AppendYears().AppendSuffix("Y").
		AppendMonths().AppendSuffix("M").
		AppendWeeks().AppendSuffix("W").
		AppendDays().AppendSuffix("D").
		AppendSeparatorIfFieldsAfter("T").
		AppendHours().AppendSuffix("H").
		AppendMinutes().AppendSuffix("M").
		AppendSecondsWithOptionalMillis().AppendSuffix("S"))
})

// ISOStandard returns the ISO-8601 format PnYnMnWnDTnHnMnS, e.g.
// "P1Y2M3W4DT5H6M7.008S". Zero fields are left out, and a zero period prints
// as "PT0S".
func ISOStandard() *Formatter {
	return isoStandard()
}

var isoAlternate = sync.OnceValue(func() *Formatter {
	return mustFormatter(NewBuilder().
		AppendLiteral("P").
		PrintZeroAlways().
		MinimumPrintedDigits(4).MaximumParsedDigits(4).
		AppendYears().
		MinimumPrintedDigits(2).MaximumParsedDigits(2).
		AppendMonths().
		AppendDays().
		AppendSeparatorIfFieldsAfter("T").
		AppendHours().
		AppendMinutes().
		MaximumParsedDigits(10).
		AppendSecondsWithOptionalMillis())
})

// ISOAlternate returns the ISO-8601 basic alternate format
// PyyyymmddThhmmss. Weeks are not printed.
func ISOAlternate() *Formatter {
	return isoAlternate()
}

var isoAlternateExtended = sync.OnceValue(func() *Formatter {
	return mustFormatter(NewBuilder().
		AppendLiteral("P").
		PrintZeroAlways().
		MinimumPrintedDigits(4).MaximumParsedDigits(4).
		AppendYears().
		AppendSeparator("-").
		MinimumPrintedDigits(2).MaximumParsedDigits(2).
		AppendMonths().
		AppendSeparator("-").
		AppendDays().
		AppendSeparatorIfFieldsAfter("T").
		AppendHours().
		AppendSeparator(":").
		AppendMinutes().
		AppendSeparator(":").
		MaximumParsedDigits(10).
		AppendSecondsWithOptionalMillis())
})

// ISOAlternateExtended returns the ISO-8601 extended alternate format
// Pyyyy-mm-ddThh:mm:ss. Weeks are not printed.
func ISOAlternateExtended() *Formatter {
	return isoAlternateExtended()
}

var compact = sync.OnceValue(func() *Formatter {
	return mustFormatter(NewBuilder().
		AppendYears().AppendSuffix("y").
		AppendMonths().AppendSuffix("mo").
		AppendWeeks().AppendSuffix("w").
		AppendDays().AppendSuffix("d").
		AppendHours().AppendSuffix("h").
		AppendMinutes().AppendSuffix("m").
		AppendSecondsWithOptionalMillis().AppendSuffix("s"))
})

// Compact returns a short unit-suffixed format such as "1y2mo3w4d5h6m7.5s".
// A zero period prints as "0s".
func Compact() *Formatter {
	return compact()
}
