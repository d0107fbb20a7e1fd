package period

import (
	"fmt"
	"io"

	"golang.org/x/text/language"
)

// Formatter prints and parses periods. It is immutable and safe for
// concurrent use; the With methods return modified copies.
type Formatter struct {
	printer   printer
	parser    parser
	table     *fieldTable
	locale    language.Tag
	parseType *PeriodType
}

// IsPrinter reports whether the formatter can print.
func (f *Formatter) IsPrinter() bool { return f.printer != nil }

// IsParser reports whether the formatter can parse.
func (f *Formatter) IsParser() bool { return f.parser != nil }

// Locale returns the formatter's locale. It is language.Und unless set.
func (f *Formatter) Locale() language.Tag { return f.locale }

// WithLocale returns a copy using tag.
func (f *Formatter) WithLocale(tag language.Tag) *Formatter {
	g := *f
	g.locale = tag
	return &g
}

// ParseType returns the type of periods produced by ParsePeriod.
func (f *Formatter) ParseType() *PeriodType { return f.parseType }

// WithParseType returns a copy that parses into pt. A nil pt means Standard.
func (f *Formatter) WithParseType(pt *PeriodType) *Formatter {
	g := *f
	g.parseType = typeOrStandard(pt)
	return &g
}

func (f *Formatter) newEnv() *env {
	return &env{table: f.table, locale: f.locale}
}

// PrintedLength estimates the length of Print's output.
func (f *Formatter) PrintedLength(p ReadablePeriod) int {
	if f.printer == nil || p == nil {
		return 0
	}
	return f.printer.printedLength(p, f.newEnv())
}

// Print formats p.
func (f *Formatter) Print(p ReadablePeriod) (string, error) {
	b, err := f.AppendPeriod(nil, p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// AppendPeriod appends the formatted p to b.
func (f *Formatter) AppendPeriod(b []byte, p ReadablePeriod) ([]byte, error) {
	if f.printer == nil {
		return b, fmt.Errorf("%w: formatter cannot print", ErrUnsupportedOperation)
	}
	if p == nil {
		return b, fmt.Errorf("%w: nil period", ErrInvalidArgument)
	}
	e := f.newEnv()
	if b == nil {
		b = make([]byte, 0, f.printer.printedLength(p, e))
	}
	return f.printer.appendTo(b, p, e), nil
}

// PrintTo writes the formatted p to w.
func (f *Formatter) PrintTo(w io.Writer, p ReadablePeriod) error {
	b, err := f.AppendPeriod(nil, p)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// ParseInto parses text from pos into mp, which keeps any fields the text
// does not mention. It returns the position after the parsed text, or the
// complement (^pos) of the failing position, or ^pos if the formatter cannot
// parse. A negative pos is an earlier failure and is returned as is.
func (f *Formatter) ParseInto(mp *MutablePeriod, text string, pos int) int {
	if pos < 0 {
		return pos
	}
	if f.parser == nil || mp == nil || pos > len(text) {
		return ^pos
	}
	return f.parser.parseInto(mp, text, pos, f.newEnv())
}

// ParseMutable parses the whole of text into a new period of ParseType.
// Failures are returned as *ParseError.
func (f *Formatter) ParseMutable(text string) (*MutablePeriod, error) {
	if f.parser == nil {
		return nil, fmt.Errorf("%w: formatter cannot parse", ErrUnsupportedOperation)
	}
	mp := NewMutable(f.parseType)
	pos := f.parser.parseInto(mp, text, 0, f.newEnv())
	if pos >= 0 {
		if pos >= len(text) {
			return mp, nil
		}
	} else {
		pos = ^pos
	}
	return nil, &ParseError{Text: text, Pos: pos}
}

// ParsePeriod is ParseMutable returning an immutable Period.
func (f *Formatter) ParsePeriod(text string) (Period, error) {
	mp, err := f.ParseMutable(text)
	if err != nil {
		return Period{}, err
	}
	return mp.ToPeriod(), nil
}
