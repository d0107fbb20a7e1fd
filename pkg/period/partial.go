package period

import (
	"fmt"
	"time"

	"github.com/lambdcalculus/periods/internal/safemath"
)

// DateFieldKind is a field of a local date or time, such as the month of the
// year. Each one counts in units of a duration FieldKind.
type DateFieldKind int

const (
	Year DateFieldKind = iota
	MonthOfYear
	WeekOfWeekyear
	DayOfMonth
	DayOfWeek
	HourOfDay
	MinuteOfHour
	SecondOfMinute
	MillisOfSecond
)

var dateFieldNames = [...]string{
	"year", "monthOfYear", "weekOfWeekyear", "dayOfMonth", "dayOfWeek",
	"hourOfDay", "minuteOfHour", "secondOfMinute", "millisOfSecond",
}

func (k DateFieldKind) String() string {
	if k < 0 || int(k) >= len(dateFieldNames) {
		return fmt.Sprintf("DateFieldKind(%d)", int(k))
	}
	return dateFieldNames[k]
}

// DurationKind returns the unit the field counts in.
func (k DateFieldKind) DurationKind() FieldKind {
	switch k {
	case Year:
		return YearsField
	case MonthOfYear:
		return MonthsField
	case WeekOfWeekyear:
		return WeeksField
	case DayOfMonth, DayOfWeek:
		return DaysField
	case HourOfDay:
		return HoursField
	case MinuteOfHour:
		return MinutesField
	case SecondOfMinute:
		return SecondsField
	case MillisOfSecond:
		return MillisField
	}
	return -1
}

// PartialField is one field of a Partial.
type PartialField struct {
	Kind  DateFieldKind
	Value int32
}

// A Partial is a local date or time that only holds some fields, e.g. a
// month-day like --12-25.
type Partial []PartialField

// PartialOf extracts kinds from t in its own location.
func PartialOf(t time.Time, kinds ...DateFieldKind) Partial {
	p := make(Partial, len(kinds))
	for i, k := range kinds {
		var v int
		switch k {
		case Year:
			v = t.Year()
		case MonthOfYear:
			v = int(t.Month())
		case WeekOfWeekyear:
			_, v = t.ISOWeek()
		case DayOfMonth:
			v = t.Day()
		case DayOfWeek:
			// ISO numbering: Monday is 1, Sunday is 7.
			v = int(t.Weekday())
			if v == 0 {
				v = 7
			}
		case HourOfDay:
			v = t.Hour()
		case MinuteOfHour:
			v = t.Minute()
		case SecondOfMinute:
			v = t.Second()
		case MillisOfSecond:
			v = t.Nanosecond() / int(time.Millisecond)
		}
		p[i] = PartialField{Kind: k, Value: int32(v)}
	}
	return p
}

// FieldDifference returns end minus start, field by field. Both partials must
// have the same field kinds in the same order, and no two fields may count in
// the same unit.
func FieldDifference(start, end Partial) (Period, error) {
	if len(start) == 0 || len(start) != len(end) {
		return Period{}, fmt.Errorf("%w: partials must be non-empty and the same size", ErrInvalidArgument)
	}
	kinds := make([]FieldKind, len(start))
	var seen fieldSet
	for i := range start {
		if start[i].Kind != end[i].Kind {
			return Period{}, fmt.Errorf("%w: partials must have the same field types (%s vs %s)",
				ErrInvalidArgument, start[i].Kind, end[i].Kind)
		}
		kind := start[i].Kind.DurationKind()
		if !kind.Valid() {
			return Period{}, fmt.Errorf("%w: unknown partial field %s", ErrInvalidArgument, start[i].Kind)
		}
		if seen.has(kind) {
			return Period{}, fmt.Errorf("%w: partial must not have overlapping fields (%s)",
				ErrInvalidArgument, start[i].Kind)
		}
		seen = seen.with(kind)
		kinds[i] = kind
	}

	pt, err := ForFields(kinds...)
	if err != nil {
		return Period{}, err
	}
	values := make([]int32, pt.Size())
	for i := range start {
		diff, err := safemath.Sub32(end[i].Value, start[i].Value)
		if err != nil {
			return Period{}, overflow(fmt.Sprintf("%s difference", start[i].Kind))
		}
		if err := pt.setValueAt(values, kinds[i], diff); err != nil {
			return Period{}, err
		}
	}
	return Period{typ: pt, values: values}, nil
}
