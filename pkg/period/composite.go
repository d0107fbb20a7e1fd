package period

// element is one builder entry. Either side may be nil.
type element struct {
	printer printer
	parser  parser
}

// composite runs a flat list of printers and parsers in order.
type composite struct {
	printers []printer
	parsers  []parser
}

// newComposite flattens nested composites into one list. Separators and
// scoped formatters are kept whole.
func newComposite(elems []element) *composite {
	c := &composite{}
	for _, el := range elems {
		switch pr := el.printer.(type) {
		case nil:
		case *composite:
			c.printers = append(c.printers, pr.printers...)
		default:
			c.printers = append(c.printers, pr)
		}
		switch pa := el.parser.(type) {
		case nil:
		case *composite:
			c.parsers = append(c.parsers, pa.parsers...)
		default:
			c.parsers = append(c.parsers, pa)
		}
	}
	return c
}

// createComposite collapses elems into a single element.
func createComposite(elems []element) element {
	switch len(elems) {
	case 0:
		return element{printer: emptyLiteral, parser: emptyLiteral}
	case 1:
		return elems[0]
	}
	c := newComposite(elems)
	return element{printer: c, parser: c}
}

func (c *composite) printedLength(p ReadablePeriod, e *env) int {
	n := 0
	for _, pr := range c.printers {
		n += pr.printedLength(p, e)
	}
	return n
}

func (c *composite) countFieldsToPrint(p ReadablePeriod, stopAt int, e *env) int {
	sum := 0
	for i := len(c.printers) - 1; i >= 0 && sum < stopAt; i-- {
		sum += c.printers[i].countFieldsToPrint(p, stopAt, e)
	}
	return sum
}

func (c *composite) appendTo(b []byte, p ReadablePeriod, e *env) []byte {
	for _, pr := range c.printers {
		b = pr.appendTo(b, p, e)
	}
	return b
}

func (c *composite) parseInto(mp *MutablePeriod, text string, pos int, e *env) int {
	for _, pa := range c.parsers {
		if pos < 0 {
			break
		}
		pos = pa.parseInto(mp, text, pos, e)
	}
	return pos
}

// scoped runs an appended formatter against its own field table, so that its
// zero-printing decisions are unaffected by the formatter it was appended to.
type scoped struct {
	table   *fieldTable
	printer printer
	parser  parser
}

func (s *scoped) inner(e *env) *env {
	return &env{table: s.table, locale: e.locale}
}

func (s *scoped) printedLength(p ReadablePeriod, e *env) int {
	return s.printer.printedLength(p, s.inner(e))
}

func (s *scoped) countFieldsToPrint(p ReadablePeriod, stopAt int, e *env) int {
	return s.printer.countFieldsToPrint(p, stopAt, s.inner(e))
}

func (s *scoped) appendTo(b []byte, p ReadablePeriod, e *env) []byte {
	return s.printer.appendTo(b, p, s.inner(e))
}

func (s *scoped) parseInto(mp *MutablePeriod, text string, pos int, e *env) int {
	return s.parser.parseInto(mp, text, pos, s.inner(e))
}
