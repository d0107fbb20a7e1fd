package period

import "math"

type zeroPolicy int

const (
	printZeroRarelyFirst zeroPolicy = iota
	printZeroRarelyLast
	printZeroIfSupported
	printZeroAlways
	printZeroNever
)

// skip is returned by fieldFormatter.value for a field that does not print.
const skip = math.MaxInt64

// fieldFormatter prints and parses one numeric field. It is immutable; the
// builder replaces it when a suffix is added.
type fieldFormatter struct {
	slot         int
	minPrinted   int
	maxParsed    int
	zero         zeroPolicy
	rejectSigned bool
	prefix       Affix
	suffix       Affix
}

// withSuffix returns a copy with suffix appended to any existing one.
func (f *fieldFormatter) withSuffix(suffix Affix) *fieldFormatter {
	g := *f
	if g.suffix != nil {
		suffix = CompositeAffix(g.suffix, suffix)
	}
	g.suffix = suffix
	return &g
}

func (f *fieldFormatter) combined() bool {
	return f.slot >= secondsMillisSlot
}

// slotSupported reports whether pt can hold the field in slot. A combined
// seconds+millis slot needs either seconds or millis.
func slotSupported(pt *PeriodType, slot int) bool {
	switch slot {
	case secondsMillisSlot, secondsOptionalMillisSlot:
		return pt.IsSupported(SecondsField) || pt.IsSupported(MillisField)
	}
	return pt.IsSupported(FieldKind(slot))
}

// value returns the number this formatter would print, or skip. Combined
// slots yield seconds*1000 + millis.
func (f *fieldFormatter) value(p ReadablePeriod, e *env) int64 {
	pt := p.Type()
	if f.zero != printZeroAlways && !slotSupported(pt, f.slot) {
		return skip
	}

	var v int64
	if f.combined() {
		v = int64(p.Get(SecondsField))*MillisPerSecond + int64(p.Get(MillisField))
	} else {
		v = int64(p.Get(FieldKind(f.slot)))
	}
	if v != 0 {
		return v
	}

	switch f.zero {
	case printZeroNever:
		return skip
	case printZeroRarelyLast:
		if !isZero(p) || e.table[f.slot] != f {
			return skip
		}
		for i := f.slot + 1; i < numSlots; i++ {
			if slotSupported(pt, i) && e.table[i] != nil {
				return skip
			}
		}
	case printZeroRarelyFirst:
		if !isZero(p) || e.table[f.slot] != f {
			return skip
		}
		for i := min(f.slot, numFields) - 1; i >= 0; i-- {
			if slotSupported(pt, i) && e.table[i] != nil {
				return skip
			}
		}
	}
	return 0
}

func (f *fieldFormatter) printedLength(p ReadablePeriod, e *env) int {
	v := f.value(p, e)
	if v == skip {
		return 0
	}
	n := max(digitCount(v), f.minPrinted)
	if f.combined() {
		// At least "0.000", with room for a sign.
		if v < 0 {
			n = max(n, 5)
		} else {
			n = max(n, 4)
		}
		n++
		if f.slot == secondsOptionalMillisSlot && v%MillisPerSecond == 0 {
			n -= 4
		}
		v /= MillisPerSecond
	}
	if f.prefix != nil {
		n += f.prefix.printedLength(int32(v))
	}
	if f.suffix != nil {
		n += f.suffix.printedLength(int32(v))
	}
	return n
}

func (f *fieldFormatter) countFieldsToPrint(p ReadablePeriod, stopAt int, e *env) int {
	if stopAt <= 0 {
		return 0
	}
	if f.zero == printZeroAlways || f.value(p, e) != skip {
		return 1
	}
	return 0
}

func (f *fieldFormatter) appendTo(b []byte, p ReadablePeriod, e *env) []byte {
	total := f.value(p, e)
	if total == skip {
		return b
	}
	v := total
	if f.combined() {
		v = total / MillisPerSecond
	}
	if f.prefix != nil {
		b = f.prefix.appendTo(b, int32(v))
	}
	start := len(b)
	b = appendPadded(b, v, f.minPrinted)
	if f.combined() {
		frac := total % MillisPerSecond
		if frac < 0 {
			frac = -frac
		}
		if f.slot == secondsMillisSlot || frac > 0 {
			if total < 0 && total > -MillisPerSecond {
				// The whole part printed as "0", so the sign goes in front.
				b = append(b, 0)
				copy(b[start+1:], b[start:])
				b[start] = '-'
			}
			b = append(b, '.')
			b = appendPadded(b, frac, 3)
		}
	}
	if f.suffix != nil {
		b = f.suffix.appendTo(b, int32(v))
	}
	return b
}

func (f *fieldFormatter) parseInto(mp *MutablePeriod, text string, pos int, _ *env) int {
	mustParse := f.zero == printZeroAlways
	if pos >= len(text) {
		if mustParse {
			return ^pos
		}
		return pos
	}

	if f.prefix != nil {
		next := f.prefix.parse(text, pos)
		if next < 0 {
			if mustParse {
				return next
			}
			return pos
		}
		pos = next
		mustParse = true
	}

	suffixPos := -1
	if f.suffix != nil && !mustParse {
		// Without the suffix somewhere ahead, this field is absent.
		suffixPos = f.suffix.scan(text, pos)
		if suffixPos < 0 {
			return pos
		}
		mustParse = true
	}

	if !mustParse && !slotSupported(mp.Type(), f.slot) {
		return pos
	}

	limit := len(text) - pos
	if suffixPos > 0 {
		limit = suffixPos - pos
	}
	limit = min(f.maxParsed, limit)

	length := 0
	fracPos := -1
	hasDigits := false
	negative := false
	for length < limit {
		c := text[pos+length]
		if length == 0 && (c == '-' || c == '+') && !f.rejectSigned {
			negative = c == '-'
			if length+1 >= limit {
				break
			}
			if next := text[pos+length+1]; next < '0' || next > '9' {
				break
			}
			if negative {
				length++
			} else {
				pos++
			}
			limit = min(limit+1, len(text)-pos)
			continue
		}
		if c >= '0' && c <= '9' {
			hasDigits = true
		} else if (c == '.' || c == ',') && f.combined() {
			if fracPos >= 0 {
				break
			}
			fracPos = pos + length + 1
			limit = min(limit+1, len(text)-pos)
		} else {
			break
		}
		length++
	}

	if !hasDigits {
		return ^pos
	}
	if suffixPos >= 0 && pos+length != suffixPos {
		// The suffix found belongs to a later field.
		return pos
	}

	if !f.setParsed(mp, text, pos, length, fracPos, negative) {
		return ^pos
	}
	pos += length
	if f.suffix != nil {
		pos = f.suffix.parse(text, pos)
	}
	return pos
}

// setParsed stores the digits at text[pos:pos+length] into mp.
func (f *fieldFormatter) setParsed(mp *MutablePeriod, text string, pos, length, fracPos int, negative bool) bool {
	if !f.combined() {
		v, ok := parseInt(text, pos, length)
		return ok && mp.Set(FieldKind(f.slot), v) == nil
	}

	if fracPos < 0 {
		secs, ok := parseInt(text, pos, length)
		return ok && mp.Set(SecondsField, secs) == nil && mp.Set(MillisField, 0) == nil
	}

	// A lone sign before the point, as in "-.5", is not a number.
	wholeLen := fracPos - pos - 1
	if wholeLen == 0 || (wholeLen == 1 && negative) {
		return false
	}
	secs, ok := parseInt(text, pos, wholeLen)
	if !ok {
		return false
	}
	var frac int32
	if fracLen := pos + length - fracPos; fracLen > 0 {
		if fracLen >= 3 {
			frac, ok = parseInt(text, fracPos, 3)
		} else {
			frac, ok = parseInt(text, fracPos, fracLen)
			if fracLen == 1 {
				frac *= 100
			} else {
				frac *= 10
			}
		}
		if !ok {
			return false
		}
		if negative || secs < 0 {
			frac = -frac
		}
	}
	return mp.Set(SecondsField, secs) == nil && mp.Set(MillisField, frac) == nil
}
