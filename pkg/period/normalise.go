package period

import (
	"fmt"
	"time"

	"github.com/lambdcalculus/periods/internal/safemath"
)

// NormalizedStandard is NormalizedStandardTo(Standard).
func (p Period) NormalizedStandard() (Period, error) {
	return p.NormalizedStandardTo(Standard)
}

// NormalizedStandardTo normalises the period into the fields of pt, assuming
// 7-day weeks, 24-hour days, 60-minute hours and 60-second minutes. Years and
// months are folded together on a 12-month year and never mixed with days.
//
// If the period has a year/month amount that pt cannot hold, it fails with
// ErrUnsupportedOperation.
func (p Period) NormalizedStandardTo(pt *PeriodType) (Period, error) {
	pt = typeOrStandard(pt)
	millis, err := p.preciseMillis()
	if err != nil {
		return Period{}, err
	}
	result, err := FromDurationMillis(millis, pt, ISOUTC())
	if err != nil {
		return Period{}, err
	}

	years, months := p.Years(), p.Months()
	if years == 0 && months == 0 {
		return result, nil
	}
	totalMonths := int64(years)*12 + int64(months)
	if pt.IsSupported(YearsField) {
		y, err := safemath.ToInt32(totalMonths / 12)
		if err != nil {
			return Period{}, overflow("normalised years")
		}
		if err := pt.setValueAt(result.values, YearsField, y); err != nil {
			return Period{}, err
		}
		totalMonths -= int64(y) * 12
	}
	if pt.IsSupported(MonthsField) {
		m, err := safemath.ToInt32(totalMonths)
		if err != nil {
			return Period{}, overflow("normalised months")
		}
		if err := pt.setValueAt(result.values, MonthsField, m); err != nil {
			return Period{}, err
		}
		totalMonths -= int64(m)
	}
	if totalMonths != 0 {
		return Period{}, fmt.Errorf("%w: cannot normalize %s: period has a month/year amount but %s lacks year/month fields",
			ErrUnsupportedOperation, p, pt)
	}
	return result, nil
}

// preciseMillis sums weeks through millis into milliseconds.
func (p Period) preciseMillis() (int64, error) {
	var total int64
	for _, kind := range AllFields[WeeksField:] {
		v := p.Get(kind)
		if v == 0 {
			continue
		}
		part, err := safemath.Mul64(int64(v), kind.UnitMillis())
		if err != nil {
			return 0, overflow("period length in millis")
		}
		if total, err = safemath.Add64(total, part); err != nil {
			return 0, overflow("period length in millis")
		}
	}
	return total, nil
}

func (p Period) checkYearsAndMonths(dest string) error {
	if p.Years() != 0 || p.Months() != 0 {
		return fmt.Errorf("%w: cannot convert %s to %s: years and months vary in length",
			ErrUnsupportedOperation, p, dest)
	}
	return nil
}

// ToStandardDurationMillis returns the period's length in milliseconds. It fails
// with ErrUnsupportedOperation if years or months are nonzero.
func (p Period) ToStandardDurationMillis() (int64, error) {
	if err := p.checkYearsAndMonths("a duration"); err != nil {
		return 0, err
	}
	return p.preciseMillis()
}

// ToStandardDuration is ToStandardDurationMillis as a time.Duration.
func (p Period) ToStandardDuration() (time.Duration, error) {
	millis, err := p.ToStandardDurationMillis()
	if err != nil {
		return 0, err
	}
	nanos, err := safemath.Mul64(millis, int64(time.Millisecond))
	if err != nil {
		return 0, overflow("duration in nanoseconds")
	}
	return time.Duration(nanos), nil
}

func (p Period) toStandardUnit(kind FieldKind) (int32, error) {
	if err := p.checkYearsAndMonths(kind.String()); err != nil {
		return 0, err
	}
	millis, err := p.preciseMillis()
	if err != nil {
		return 0, err
	}
	n, err := safemath.ToInt32(millis / kind.UnitMillis())
	if err != nil {
		return 0, overflow("standard " + kind.String())
	}
	return n, nil
}

// ToStandardWeeks returns the whole number of 7-day weeks in the period.
func (p Period) ToStandardWeeks() (int32, error) { return p.toStandardUnit(WeeksField) }

// ToStandardDays returns the whole number of 24-hour days in the period.
func (p Period) ToStandardDays() (int32, error) { return p.toStandardUnit(DaysField) }

// ToStandardHours returns the whole number of hours in the period.
func (p Period) ToStandardHours() (int32, error) { return p.toStandardUnit(HoursField) }

// ToStandardMinutes returns the whole number of minutes in the period.
func (p Period) ToStandardMinutes() (int32, error) { return p.toStandardUnit(MinutesField) }

// ToStandardSeconds returns the whole number of seconds in the period.
func (p Period) ToStandardSeconds() (int32, error) { return p.toStandardUnit(SecondsField) }
