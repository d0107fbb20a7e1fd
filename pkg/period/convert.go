package period

import (
	"fmt"
	"time"
)

// Interval is the time from Start to End.
type Interval struct {
	Start, End time.Time
}

// Period returns the interval as a period of pt, in Start's location.
func (iv Interval) Period(pt *PeriodType) (Period, error) {
	return Between(iv.Start, iv.End, pt, nil)
}

// From converts v to a period of pt. v may be an ISO-8601 string, a
// ReadablePeriod, a time.Duration or an Interval. A nil pt means the type of
// v when it is a ReadablePeriod, and Standard otherwise.
func From(v any, pt *PeriodType) (Period, error) {
	switch v := v.(type) {
	case string:
		return ISOStandard().WithParseType(pt).ParsePeriod(v)
	case ReadablePeriod:
		if pt == nil {
			pt = v.Type()
		}
		mp := NewMutable(pt)
		if err := mp.SetPeriod(v); err != nil {
			return Period{}, err
		}
		return mp.ToPeriod(), nil
	case time.Duration:
		return FromDuration(v, pt, nil)
	case Interval:
		return v.Period(pt)
	case *Interval:
		if v != nil {
			return v.Period(pt)
		}
	}
	return Period{}, fmt.Errorf("%w: cannot convert %T to a period", ErrInvalidArgument, v)
}
