package period

import (
	"fmt"
	"strings"
)

// FieldKind is one of the eight canonical duration fields. The numeric value
// is the field's canonical index, largest unit first.
type FieldKind int

const (
	YearsField FieldKind = iota
	MonthsField
	WeeksField
	DaysField
	HoursField
	MinutesField
	SecondsField
	MillisField

	numFields = 8
)

// Millisecond lengths of the precise fields, as used by normalisation and the
// ToStandard* conversions.
const (
	MillisPerSecond int64 = 1000
	MillisPerMinute       = 60 * MillisPerSecond
	MillisPerHour         = 60 * MillisPerMinute
	MillisPerDay          = 24 * MillisPerHour
	MillisPerWeek         = 7 * MillisPerDay
)

var fieldNames = [numFields]string{
	"years", "months", "weeks", "days", "hours", "minutes", "seconds", "millis",
}

var fieldTags = [numFields]byte{'Y', 'M', 'W', 'D', 'H', 'M', 'S', 0}

// AllFields lists every kind in canonical order.
var AllFields = []FieldKind{
	YearsField, MonthsField, WeeksField, DaysField,
	HoursField, MinutesField, SecondsField, MillisField,
}

// Valid reports whether k is one of the canonical kinds.
func (k FieldKind) Valid() bool {
	return k >= 0 && k < numFields
}

// String returns the lower-case field name, e.g. "years".
func (k FieldKind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
	return fieldNames[k]
}

// DisplayName returns the capitalised field name, e.g. "Years".
func (k FieldKind) DisplayName() string {
	s := k.String()
	if !k.Valid() {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Tag returns the ISO-8601 designator letter, or 0 for millis.
func (k FieldKind) Tag() byte {
	if !k.Valid() {
		return 0
	}
	return fieldTags[k]
}

// Hash is the per-kind contribution to Period.Hash.
func (k FieldKind) Hash() int32 {
	return 1 << uint(k)
}

// UnitMillis returns the fixed millisecond length of the field, or 0 for
// years and months which have none.
func (k FieldKind) UnitMillis() int64 {
	switch k {
	case WeeksField:
		return MillisPerWeek
	case DaysField:
		return MillisPerDay
	case HoursField:
		return MillisPerHour
	case MinutesField:
		return MillisPerMinute
	case SecondsField:
		return MillisPerSecond
	case MillisField:
		return 1
	}
	return 0
}

// ParseFieldKind resolves a field name, case-insensitively. Singular forms
// ("year") and "milliseconds" are accepted too.
func ParseFieldKind(name string) (FieldKind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "milliseconds", "millisecond", "ms":
		return MillisField, nil
	}
	for i, f := range fieldNames {
		if n == f || n+"s" == f {
			return FieldKind(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown field %q", ErrInvalidArgument, name)
}

// ParseFieldKinds resolves a comma separated list of field names.
func ParseFieldKinds(list string) ([]FieldKind, error) {
	var kinds []FieldKind
	for _, part := range strings.Split(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		k, err := ParseFieldKind(part)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}
