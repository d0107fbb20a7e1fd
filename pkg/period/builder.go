package period

import "fmt"

// Builder assembles a Formatter from fields, affixes, literals and
// separators. Settings such as MinimumPrintedDigits apply to the fields
// appended after them.
//
// Misuse, such as a suffix with no field before it, is recorded and
// returned by Err and ToFormatter. Only the first error is kept.
//
// A Builder is not safe for concurrent use. Each ToFormatter call yields an
// independent Formatter, so the builder may be extended and reused.
type Builder struct {
	err error

	minPrinted   int
	zero         zeroPolicy
	maxParsed    int
	rejectSigned bool
	prefix       Affix

	elems      []element
	notPrinter bool
	notParser  bool
	table      fieldTable
}

// NewBuilder returns a builder with the default settings.
func NewBuilder() *Builder {
	b := &Builder{}
	b.Clear()
	return b
}

// Clear resets the builder to its initial state.
func (b *Builder) Clear() *Builder {
	*b = Builder{
		minPrinted: 1,
		zero:       printZeroRarelyLast,
		maxParsed:  10,
	}
	return b
}

// Err returns the first misuse of the builder, if any.
func (b *Builder) Err() error {
	return b.err
}

func (b *Builder) fail(msg string) *Builder {
	if b.err == nil {
		b.err = fmt.Errorf("%w: %s", ErrInvalidState, msg)
	}
	return b
}

// ToFormatter builds the formatter. It fails with ErrInvalidState when the
// builder was misused, or when the appended elements yield neither a printer
// nor a parser.
func (b *Builder) ToFormatter() (*Formatter, error) {
	if b.err != nil {
		return nil, b.err
	}
	table := b.table
	el, err := resolve(b.elems, b.notPrinter, b.notParser)
	if err != nil {
		return nil, err
	}
	return &Formatter{
		printer:   el.printer,
		parser:    el.parser,
		table:     &table,
		parseType: Standard,
	}, nil
}

// ToPrinter is ToFormatter restricted to printing.
func (b *Builder) ToPrinter() (*Formatter, error) {
	if b.notPrinter {
		return nil, fmt.Errorf("%w: builder has no printer", ErrInvalidState)
	}
	f, err := b.ToFormatter()
	if err != nil {
		return nil, err
	}
	f.parser = nil
	return f, nil
}

// ToParser is ToFormatter restricted to parsing.
func (b *Builder) ToParser() (*Formatter, error) {
	if b.notParser {
		return nil, fmt.Errorf("%w: builder has no parser", ErrInvalidState)
	}
	f, err := b.ToFormatter()
	if err != nil {
		return nil, err
	}
	f.printer = nil
	return f, nil
}

// resolve turns the element list into one element. A leading separator that
// was never finished takes everything after it as its after side.
func resolve(elems []element, notPrinter, notParser bool) (element, error) {
	if notPrinter && notParser {
		return element{}, fmt.Errorf("%w: builder has created neither a printer nor a parser", ErrInvalidState)
	}
	if len(elems) > 0 {
		if sep, ok := elems[0].printer.(*separator); ok && !sep.finished() {
			rest, err := resolve(elems[1:], notPrinter, notParser)
			if err != nil {
				return element{}, err
			}
			sep = sep.finish(rest.printer, rest.parser)
			return restrict(element{printer: sep, parser: sep}, notPrinter, notParser), nil
		}
	}
	return restrict(createComposite(elems), notPrinter, notParser), nil
}

func restrict(el element, notPrinter, notParser bool) element {
	if notPrinter {
		el.printer = nil
	}
	if notParser {
		el.parser = nil
	}
	return el
}

// Append adds a whole formatter. It keeps its own zero-printing context.
func (b *Builder) Append(f *Formatter) *Builder {
	if f == nil {
		return b
	}
	b.prefix = nil
	sc := &scoped{table: f.table, printer: f.printer, parser: f.parser}
	var el element
	if f.printer != nil {
		el.printer = sc
	} else {
		b.notPrinter = true
	}
	if f.parser != nil {
		el.parser = sc
	} else {
		b.notParser = true
	}
	b.elems = append(b.elems, el)
	return b
}

// MinimumPrintedDigits sets the zero padding of the following fields.
func (b *Builder) MinimumPrintedDigits(n int) *Builder {
	b.minPrinted = n
	return b
}

// MaximumParsedDigits caps the digits the following fields consume.
func (b *Builder) MaximumParsedDigits(n int) *Builder {
	b.maxParsed = n
	return b
}

// RejectSignedValues makes the following fields refuse a leading sign.
func (b *Builder) RejectSignedValues(v bool) *Builder {
	b.rejectSigned = v
	return b
}

// PrintZeroRarelyLast prints a zero only in the last field, and only when
// the whole period is zero. This is the default.
func (b *Builder) PrintZeroRarelyLast() *Builder {
	b.zero = printZeroRarelyLast
	return b
}

// PrintZeroRarelyFirst is like PrintZeroRarelyLast, for the first field.
func (b *Builder) PrintZeroRarelyFirst() *Builder {
	b.zero = printZeroRarelyFirst
	return b
}

// PrintZeroIfSupported prints zero fields the period type supports.
func (b *Builder) PrintZeroIfSupported() *Builder {
	b.zero = printZeroIfSupported
	return b
}

// PrintZeroAlways prints every field, supported or not. Such fields are also
// required when parsing.
func (b *Builder) PrintZeroAlways() *Builder {
	b.zero = printZeroAlways
	return b
}

// PrintZeroNever never prints a zero field.
func (b *Builder) PrintZeroNever() *Builder {
	b.zero = printZeroNever
	return b
}

// AppendPrefix sets text before the next field.
func (b *Builder) AppendPrefix(text string) *Builder {
	return b.AppendPrefixAffix(SimpleAffix(text))
}

// AppendPluralPrefix sets a singular/plural prefix for the next field.
func (b *Builder) AppendPluralPrefix(singular, plural string) *Builder {
	return b.AppendPrefixAffix(PluralAffix(singular, plural))
}

// AppendPrefixAffix adds a to the pending prefix.
func (b *Builder) AppendPrefixAffix(a Affix) *Builder {
	if b.prefix != nil {
		a = CompositeAffix(b.prefix, a)
	}
	b.prefix = a
	return b
}

// AppendSuffix adds text after the last appended field.
func (b *Builder) AppendSuffix(text string) *Builder {
	return b.AppendSuffixAffix(SimpleAffix(text))
}

// AppendPluralSuffix adds a singular/plural suffix to the last field.
func (b *Builder) AppendPluralSuffix(singular, plural string) *Builder {
	return b.AppendSuffixAffix(PluralAffix(singular, plural))
}

// AppendSuffixAffix adds a to the last appended field. The last element must
// be a field.
func (b *Builder) AppendSuffixAffix(a Affix) *Builder {
	var field *fieldFormatter
	if n := len(b.elems); n > 0 {
		last := b.elems[n-1]
		pr, _ := last.printer.(*fieldFormatter)
		pa, _ := last.parser.(*fieldFormatter)
		if pr != nil && pr == pa {
			field = pr
		}
	}
	if field == nil {
		return b.fail("no field to apply suffix to")
	}
	b.prefix = nil
	field = field.withSuffix(a)
	b.elems[len(b.elems)-1] = element{printer: field, parser: field}
	b.table[field.slot] = field
	return b
}

func (b *Builder) appendField(slot, minPrinted int) *Builder {
	f := &fieldFormatter{
		slot:         slot,
		minPrinted:   minPrinted,
		maxParsed:    b.maxParsed,
		zero:         b.zero,
		rejectSigned: b.rejectSigned,
		prefix:       b.prefix,
	}
	b.elems = append(b.elems, element{printer: f, parser: f})
	b.table[slot] = f
	b.prefix = nil
	return b
}

func (b *Builder) AppendYears() *Builder   { return b.appendField(int(YearsField), b.minPrinted) }
func (b *Builder) AppendMonths() *Builder  { return b.appendField(int(MonthsField), b.minPrinted) }
func (b *Builder) AppendWeeks() *Builder   { return b.appendField(int(WeeksField), b.minPrinted) }
func (b *Builder) AppendDays() *Builder    { return b.appendField(int(DaysField), b.minPrinted) }
func (b *Builder) AppendHours() *Builder   { return b.appendField(int(HoursField), b.minPrinted) }
func (b *Builder) AppendMinutes() *Builder { return b.appendField(int(MinutesField), b.minPrinted) }
func (b *Builder) AppendSeconds() *Builder { return b.appendField(int(SecondsField), b.minPrinted) }
func (b *Builder) AppendMillis() *Builder  { return b.appendField(int(MillisField), b.minPrinted) }

// AppendField appends the field for kind.
func (b *Builder) AppendField(kind FieldKind) *Builder {
	return b.appendField(int(kind), b.minPrinted)
}

// AppendMillis3Digit appends millis padded to three digits.
func (b *Builder) AppendMillis3Digit() *Builder {
	return b.appendField(int(MillisField), 3)
}

// AppendSecondsWithMillis appends seconds with a three digit fraction, e.g.
// "7.008".
func (b *Builder) AppendSecondsWithMillis() *Builder {
	return b.appendField(secondsMillisSlot, b.minPrinted)
}

// AppendSecondsWithOptionalMillis is AppendSecondsWithMillis, but the
// fraction is left out when millis are zero.
func (b *Builder) AppendSecondsWithOptionalMillis() *Builder {
	return b.appendField(secondsOptionalMillisSlot, b.minPrinted)
}

// AppendLiteral appends fixed text. A pending prefix is discarded.
func (b *Builder) AppendLiteral(text string) *Builder {
	b.prefix = nil
	l := &literal{text: text}
	b.elems = append(b.elems, element{printer: l, parser: l})
	return b
}

// AppendSeparator separates the fields before and after it with text,
// printed only when there are fields on both sides.
func (b *Builder) AppendSeparator(text string) *Builder {
	return b.appendSeparator(text, text, nil, true, true)
}

// AppendSeparatorWithFinal is AppendSeparator, printing finalText before the
// last field instead, as in "1, 2 and 3".
func (b *Builder) AppendSeparatorWithFinal(text, finalText string) *Builder {
	return b.appendSeparator(text, finalText, nil, true, true)
}

// AppendSeparatorWithVariants also accepts variants when parsing.
func (b *Builder) AppendSeparatorWithVariants(text, finalText string, variants ...string) *Builder {
	return b.appendSeparator(text, finalText, variants, true, true)
}

// AppendSeparatorIfFieldsAfter prints text only when fields follow it, like
// the "T" of ISO-8601.
func (b *Builder) AppendSeparatorIfFieldsAfter(text string) *Builder {
	return b.appendSeparator(text, text, nil, false, true)
}

// AppendSeparatorIfFieldsBefore prints text only when fields precede it.
func (b *Builder) AppendSeparatorIfFieldsBefore(text string) *Builder {
	return b.appendSeparator(text, text, nil, true, false)
}

func (b *Builder) appendSeparator(text, finalText string, variants []string, useBefore, useAfter bool) *Builder {
	b.prefix = nil
	if len(b.elems) == 0 {
		if useAfter && !useBefore {
			sep := newSeparator(text, finalText, variants, emptyLiteral, emptyLiteral, useBefore, useAfter)
			b.elems = append(b.elems, element{printer: sep, parser: sep})
		}
		return b
	}

	start := 0
	for i := len(b.elems) - 1; i >= 0; i-- {
		if _, ok := b.elems[i].parser.(*separator); ok {
			start = i + 1
			break
		}
	}
	if start > 0 && start == len(b.elems) {
		return b.fail("cannot have two adjacent separators")
	}

	before := createComposite(b.elems[start:])
	sep := newSeparator(text, finalText, variants, before.printer, before.parser, useBefore, useAfter)
	b.elems = append(b.elems[:start], element{printer: sep, parser: sep})
	return b
}
