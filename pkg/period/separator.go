package period

import (
	"sort"
	"strings"
)

// separator prints text between the fields of its before and after sides.
// It is immutable; finish returns a completed copy.
type separator struct {
	text      string
	finalText string
	// parsedForms are the accepted parse texts, tried in order.
	parsedForms []string
	useBefore   bool
	useAfter    bool

	beforePrinter printer
	beforeParser  parser
	afterPrinter  printer
	afterParser   parser
}

func newSeparator(text, finalText string, variants []string, beforePrinter printer, beforeParser parser, useBefore, useAfter bool) *separator {
	s := &separator{
		text:          text,
		finalText:     finalText,
		useBefore:     useBefore,
		useAfter:      useAfter,
		beforePrinter: beforePrinter,
		beforeParser:  beforeParser,
	}
	if finalText == text && len(variants) == 0 {
		s.parsedForms = []string{text}
		return s
	}

	// Unique ignoring case, first spelling wins, then reverse sorted so
	// that longer forms sharing a prefix are tried first.
	seen := make(map[string]bool)
	for _, form := range append([]string{text, finalText}, variants...) {
		key := strings.ToLower(form)
		if seen[key] {
			continue
		}
		seen[key] = true
		s.parsedForms = append(s.parsedForms, form)
	}
	sort.SliceStable(s.parsedForms, func(i, j int) bool {
		return strings.ToLower(s.parsedForms[i]) > strings.ToLower(s.parsedForms[j])
	})
	return s
}

// finished reports whether the after side has been attached.
func (s *separator) finished() bool {
	return s.afterPrinter != nil || s.afterParser != nil
}

// finish returns a copy with the after side attached.
func (s *separator) finish(afterPrinter printer, afterParser parser) *separator {
	t := *s
	t.afterPrinter = afterPrinter
	t.afterParser = afterParser
	return &t
}

func (s *separator) countFieldsToPrint(p ReadablePeriod, stopAt int, e *env) int {
	sum := s.beforePrinter.countFieldsToPrint(p, stopAt, e)
	if sum < stopAt {
		sum += s.afterPrinter.countFieldsToPrint(p, stopAt, e)
	}
	return sum
}

// separatorText returns the text to print between before and after, if any.
func (s *separator) separatorText(p ReadablePeriod, e *env) string {
	if s.useBefore {
		if s.beforePrinter.countFieldsToPrint(p, 1, e) == 0 {
			return ""
		}
		if !s.useAfter {
			return s.text
		}
		switch s.afterPrinter.countFieldsToPrint(p, 2, e) {
		case 0:
			return ""
		case 1:
			return s.finalText
		}
		return s.text
	}
	if s.useAfter && s.afterPrinter.countFieldsToPrint(p, 1, e) > 0 {
		return s.text
	}
	return ""
}

func (s *separator) printedLength(p ReadablePeriod, e *env) int {
	return s.beforePrinter.printedLength(p, e) +
		len(s.separatorText(p, e)) +
		s.afterPrinter.printedLength(p, e)
}

func (s *separator) appendTo(b []byte, p ReadablePeriod, e *env) []byte {
	b = s.beforePrinter.appendTo(b, p, e)
	b = append(b, s.separatorText(p, e)...)
	return s.afterPrinter.appendTo(b, p, e)
}

func (s *separator) parseInto(mp *MutablePeriod, text string, pos int, e *env) int {
	oldPos := pos
	pos = s.beforeParser.parseInto(mp, text, pos, e)
	if pos < 0 {
		return pos
	}

	found := false
	formLen := 0
	if pos > oldPos {
		for _, form := range s.parsedForms {
			if form == "" || regionMatches(text, pos, form) {
				formLen = len(form)
				pos += formLen
				found = true
				break
			}
		}
	}

	oldPos = pos
	pos = s.afterParser.parseInto(mp, text, pos, e)
	if pos < 0 {
		return pos
	}
	if found && pos == oldPos && formLen > 0 {
		// A separator with nothing after it.
		return ^oldPos
	}
	if pos > oldPos && !found && !s.useBefore {
		// The separator was required.
		return ^oldPos
	}
	return pos
}
