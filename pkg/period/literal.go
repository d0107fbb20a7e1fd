package period

// literal prints fixed text and parses it case-insensitively. It never counts
// as a field.
type literal struct {
	text string
}

var emptyLiteral = &literal{}

func (l *literal) printedLength(ReadablePeriod, *env) int { return len(l.text) }

func (l *literal) countFieldsToPrint(ReadablePeriod, int, *env) int { return 0 }

func (l *literal) appendTo(b []byte, _ ReadablePeriod, _ *env) []byte {
	return append(b, l.text...)
}

func (l *literal) parseInto(_ *MutablePeriod, text string, pos int, _ *env) int {
	if regionMatches(text, pos, l.text) {
		return pos + len(l.text)
	}
	return ^pos
}
