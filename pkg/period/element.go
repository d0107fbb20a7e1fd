package period

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Field slots of the formatter table: the eight canonical kinds, then the two
// combined seconds+millis encodings.
const (
	secondsMillisSlot         = numFields
	secondsOptionalMillisSlot = numFields + 1
	numSlots                  = numFields + 2
)

// fieldTable remembers the last field formatter registered per slot. The
// zero-printing policies consult it to decide which field prints a zero.
type fieldTable [numSlots]*fieldFormatter

// env is passed down a pipeline while it prints or parses.
type env struct {
	table  *fieldTable
	locale language.Tag
}

// printer is implemented by every pipeline node that prints.
type printer interface {
	// printedLength estimates the number of bytes appendTo writes.
	printedLength(p ReadablePeriod, e *env) int
	// countFieldsToPrint counts fields that would print, stopping once
	// stopAt is reached.
	countFieldsToPrint(p ReadablePeriod, stopAt int, e *env) int
	appendTo(b []byte, p ReadablePeriod, e *env) []byte
}

// parser is implemented by every pipeline node that parses. parseInto returns
// the position after the consumed text, or the complement (^pos) of the
// position where parsing failed.
type parser interface {
	parseInto(mp *MutablePeriod, text string, pos int, e *env) int
}

// regionMatches reports whether text at pos starts with s, ignoring case.
func regionMatches(text string, pos int, s string) bool {
	if pos < 0 || pos+len(s) > len(text) {
		return false
	}
	return strings.EqualFold(text[pos:pos+len(s)], s)
}

// appendPadded appends v in decimal with at least minDigits digits. The sign
// does not count as a digit.
func appendPadded(b []byte, v int64, minDigits int) []byte {
	if v < 0 {
		b = append(b, '-')
		v = -v
	}
	s := strconv.FormatInt(v, 10)
	for i := len(s); i < minDigits; i++ {
		b = append(b, '0')
	}
	return append(b, s...)
}

// digitCount returns the printed length of v, including a minus sign.
func digitCount(v int64) int {
	if v < 0 {
		return 1 + digitCount(-v)
	}
	n := 1
	for v >= 10 {
		v /= 10
		n++
	}
	return n
}

// parseInt reads text[pos:pos+n] as a signed decimal int32.
func parseInt(text string, pos, n int) (int32, bool) {
	v, err := strconv.ParseInt(text[pos:pos+n], 10, 32)
	if err != nil {
		return 0, false
	}
	return int32(v), true
}
