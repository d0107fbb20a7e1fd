package period

import (
	"fmt"
	"time"

	"github.com/lambdcalculus/periods/internal/safemath"
)

// A Chronology splits durations and intervals into period fields, and adds
// periods to instants. Instants are milliseconds since the Unix epoch.
type Chronology interface {
	// Decompose splits a duration into the precise fields of pt, largest
	// first. Imprecise fields are left at zero.
	Decompose(pt *PeriodType, durationMillis int64) ([]int32, error)
	// Between returns the fields of pt spanning start to end, using calendar
	// arithmetic.
	Between(pt *PeriodType, startMillis, endMillis int64) ([]int32, error)
	// Add adds p scalar times to instant, field by field.
	Add(p ReadablePeriod, instantMillis int64, scalar int) (int64, error)
}

// isoChronology is the proleptic Gregorian calendar of the time package.
type isoChronology struct {
	loc *time.Location
}

var isoUTC = isoChronology{loc: time.UTC}

// ISOUTC returns the ISO chronology in UTC, where weeks and days are precise.
func ISOUTC() Chronology {
	return isoUTC
}

// ISO returns the ISO chronology in loc. Outside UTC, days and weeks follow
// the wall clock and are not precise. A nil loc means UTC.
func ISO(loc *time.Location) Chronology {
	if loc == nil || loc == time.UTC {
		return isoUTC
	}
	return isoChronology{loc: loc}
}

// unitMillis returns the fixed length of kind, or 0 if it is not precise in
// this chronology.
func (c isoChronology) unitMillis(kind FieldKind) int64 {
	switch kind {
	case WeeksField, DaysField:
		if c.loc != time.UTC {
			return 0
		}
	}
	return kind.UnitMillis()
}

func (c isoChronology) Decompose(pt *PeriodType, durationMillis int64) ([]int32, error) {
	values := make([]int32, pt.Size())
	remaining := durationMillis
	for i, kind := range pt.kinds {
		unit := c.unitMillis(kind)
		if unit == 0 || remaining == 0 {
			continue
		}
		q := remaining / unit
		v, err := safemath.ToInt32(q)
		if err != nil {
			return nil, overflow(fmt.Sprintf("%d millis as %s", durationMillis, kind))
		}
		values[i] = v
		remaining -= q * unit
	}
	return values, nil
}

func (c isoChronology) Between(pt *PeriodType, startMillis, endMillis int64) ([]int32, error) {
	values := make([]int32, pt.Size())
	if startMillis == endMillis {
		return values, nil
	}
	start := time.UnixMilli(startMillis).In(c.loc)
	end := time.UnixMilli(endMillis).In(c.loc)
	for i, kind := range pt.kinds {
		n := c.difference(kind, start, end)
		v, err := safemath.ToInt32(n)
		if err != nil {
			return nil, overflow(fmt.Sprintf("%s between %s and %s", kind, start, end))
		}
		values[i] = v
		if n != 0 {
			if start, err = c.addField(kind, start, n); err != nil {
				return nil, err
			}
		}
	}
	return values, nil
}

func (c isoChronology) Add(p ReadablePeriod, instantMillis int64, scalar int) (int64, error) {
	t := time.UnixMilli(instantMillis).In(c.loc)
	for i := 0; i < p.Size(); i++ {
		v := p.Value(i)
		if v == 0 {
			continue
		}
		n, err := safemath.Mul64(int64(v), int64(scalar))
		if err != nil {
			return 0, overflow(fmt.Sprintf("%d %s times %d", v, p.FieldKind(i), scalar))
		}
		if t, err = c.addField(p.FieldKind(i), t, n); err != nil {
			return 0, err
		}
	}
	return t.UnixMilli(), nil
}

func (c isoChronology) addField(kind FieldKind, t time.Time, n int64) (time.Time, error) {
	switch kind {
	case YearsField:
		months, err := safemath.Mul64(n, 12)
		if err != nil {
			return time.Time{}, overflow(fmt.Sprintf("%d years", n))
		}
		return addMonths(t, months), nil
	case MonthsField:
		return addMonths(t, n), nil
	case WeeksField:
		return t.AddDate(0, 0, int(n)*7), nil
	case DaysField:
		return t.AddDate(0, 0, int(n)), nil
	}
	delta, err := safemath.Mul64(n, kind.UnitMillis())
	if err != nil {
		return time.Time{}, overflow(fmt.Sprintf("%d %s", n, kind))
	}
	ms, err := safemath.Add64(t.UnixMilli(), delta)
	if err != nil {
		return time.Time{}, overflow(fmt.Sprintf("%d %s", n, kind))
	}
	return time.UnixMilli(ms).In(t.Location()), nil
}

// difference returns the whole number of kind units from start to end,
// truncated towards zero.
func (c isoChronology) difference(kind FieldKind, start, end time.Time) int64 {
	switch kind {
	case YearsField:
		return monthsBetween(start, end) / 12
	case MonthsField:
		return monthsBetween(start, end)
	case WeeksField:
		return daysBetween(start, end) / 7
	case DaysField:
		return daysBetween(start, end)
	}
	return (end.UnixMilli() - start.UnixMilli()) / kind.UnitMillis()
}

// addMonths adds n months, clamping the day to the end of the target month.
func addMonths(t time.Time, n int64) time.Time {
	y, m, d := t.Date()
	total := int64(y)*12 + int64(m-1) + n
	ny, nm := total/12, total%12
	if nm < 0 {
		nm += 12
		ny--
	}
	if last := daysIn(int(ny), time.Month(nm+1)); d > last {
		d = last
	}
	return time.Date(int(ny), time.Month(nm+1), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func monthsBetween(start, end time.Time) int64 {
	sy, sm, _ := start.Date()
	ey, em, _ := end.Date()
	n := int64(ey-sy)*12 + int64(em-sm)
	if !end.Before(start) {
		for n > 0 && addMonths(start, n).After(end) {
			n--
		}
		return n
	}
	for n < 0 && addMonths(start, n).Before(end) {
		n++
	}
	return n
}

func daysBetween(start, end time.Time) int64 {
	n := (end.UnixMilli() - start.UnixMilli()) / MillisPerDay
	addDays := func(d int64) time.Time { return start.AddDate(0, 0, int(d)) }
	if !end.Before(start) {
		for !addDays(n + 1).After(end) {
			n++
		}
		for n > 0 && addDays(n).After(end) {
			n--
		}
		return n
	}
	for !addDays(n - 1).Before(end) {
		n--
	}
	for n < 0 && addDays(n).Before(end) {
		n++
	}
	return n
}
