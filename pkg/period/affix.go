package period

// An Affix is text printed before or after a field's digits. When parsing,
// affixes match case-insensitively.
//
// The methods are unexported; use SimpleAffix, PluralAffix and
// CompositeAffix.
type Affix interface {
	printedLength(v int32) int
	appendTo(b []byte, v int32) []byte
	// parse returns the position after the affix, or ^pos.
	parse(text string, pos int) int
	// scan searches forward from pos for the affix, skipping only number
	// characters. It returns the match start, or ^pos.
	scan(text string, pos int) int
}

type simpleAffix struct {
	text string
}

// SimpleAffix returns an affix that is always text.
func SimpleAffix(text string) Affix {
	return simpleAffix{text: text}
}

func (a simpleAffix) printedLength(int32) int { return len(a.text) }

func (a simpleAffix) appendTo(b []byte, _ int32) []byte { return append(b, a.text...) }

func (a simpleAffix) parse(text string, pos int) int {
	if regionMatches(text, pos, a.text) {
		return pos + len(a.text)
	}
	return ^pos
}

func (a simpleAffix) scan(text string, pos int) int {
	return scanFor(text, pos, a.text)
}

type pluralAffix struct {
	singular, plural string
}

// PluralAffix returns an affix that prints singular for a value of one and
// plural otherwise. Either form is accepted when parsing.
func PluralAffix(singular, plural string) Affix {
	return pluralAffix{singular: singular, plural: plural}
}

func (a pluralAffix) form(v int32) string {
	if v == 1 {
		return a.singular
	}
	return a.plural
}

func (a pluralAffix) printedLength(v int32) int { return len(a.form(v)) }

func (a pluralAffix) appendTo(b []byte, v int32) []byte { return append(b, a.form(v)...) }

// longestFirst returns both forms, longer first, so that "years" wins over
// "year".
func (a pluralAffix) longestFirst() (string, string) {
	if len(a.plural) < len(a.singular) {
		return a.singular, a.plural
	}
	return a.plural, a.singular
}

func (a pluralAffix) parse(text string, pos int) int {
	long, short := a.longestFirst()
	if regionMatches(text, pos, long) {
		return pos + len(long)
	}
	if regionMatches(text, pos, short) {
		return pos + len(short)
	}
	return ^pos
}

func (a pluralAffix) scan(text string, pos int) int {
	long, short := a.longestFirst()
	return scanFor(text, pos, long, short)
}

// scanFor finds the first position at or after pos where one of forms
// matches. Only digits, '.', ',', '+' and '-' may be skipped on the way.
func scanFor(text string, pos int, forms ...string) int {
	for i := pos; i < len(text); i++ {
		for _, f := range forms {
			if regionMatches(text, i, f) {
				return i
			}
		}
		switch c := text[i]; {
		case c >= '0' && c <= '9', c == '.', c == ',', c == '+', c == '-':
		default:
			return ^pos
		}
	}
	return ^pos
}

type compositeAffix struct {
	left, right Affix
}

// CompositeAffix returns left followed by right.
func CompositeAffix(left, right Affix) Affix {
	return compositeAffix{left: left, right: right}
}

func (a compositeAffix) printedLength(v int32) int {
	return a.left.printedLength(v) + a.right.printedLength(v)
}

func (a compositeAffix) appendTo(b []byte, v int32) []byte {
	return a.right.appendTo(a.left.appendTo(b, v), v)
}

func (a compositeAffix) parse(text string, pos int) int {
	pos = a.left.parse(text, pos)
	if pos >= 0 {
		pos = a.right.parse(text, pos)
	}
	return pos
}

func (a compositeAffix) scan(text string, pos int) int {
	start := a.left.scan(text, pos)
	if start < 0 {
		return ^pos
	}
	if a.right.parse(text, a.left.parse(text, start)) >= 0 {
		return start
	}
	return ^pos
}
