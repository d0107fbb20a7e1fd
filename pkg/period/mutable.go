package period

import (
	"fmt"
	"time"
)

// MutablePeriod is a period whose fields can be changed in place. It is the
// target of the parsers. A MutablePeriod is not safe for concurrent use.
//
// Multi-field writes validate everything first and leave the period untouched
// on error.
type MutablePeriod struct {
	typ    *PeriodType
	values []int32
}

var _ ReadablePeriod = (*MutablePeriod)(nil)

// NewMutable returns a zero period shaped by pt. A nil pt means Standard.
func NewMutable(pt *PeriodType) *MutablePeriod {
	pt = typeOrStandard(pt)
	return &MutablePeriod{typ: pt, values: make([]int32, pt.Size())}
}

func (mp *MutablePeriod) Type() *PeriodType         { return mp.typ }
func (mp *MutablePeriod) Size() int                 { return mp.typ.Size() }
func (mp *MutablePeriod) FieldKind(i int) FieldKind { return mp.typ.FieldKind(i) }
func (mp *MutablePeriod) Value(i int) int32         { return mp.values[i] }

// Get returns the value of kind, or zero if it is unsupported.
func (mp *MutablePeriod) Get(kind FieldKind) int32 {
	return mp.typ.valueAt(mp, kind)
}

// Set stores value in kind. Setting an unsupported kind to zero is a no-op.
func (mp *MutablePeriod) Set(kind FieldKind, value int32) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown field %v", ErrInvalidArgument, kind)
	}
	if value == 0 && !mp.typ.IsSupported(kind) {
		return nil
	}
	return mp.typ.setValueAt(mp.values, kind, value)
}

// Add adds value to kind.
func (mp *MutablePeriod) Add(kind FieldKind, value int32) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown field %v", ErrInvalidArgument, kind)
	}
	return mp.typ.addValueAt(mp.values, kind, value)
}

// SetValue stores value at position i.
func (mp *MutablePeriod) SetValue(i int, value int32) {
	mp.values[i] = value
}

func (mp *MutablePeriod) SetYears(n int32) error   { return mp.Set(YearsField, n) }
func (mp *MutablePeriod) SetMonths(n int32) error  { return mp.Set(MonthsField, n) }
func (mp *MutablePeriod) SetWeeks(n int32) error   { return mp.Set(WeeksField, n) }
func (mp *MutablePeriod) SetDays(n int32) error    { return mp.Set(DaysField, n) }
func (mp *MutablePeriod) SetHours(n int32) error   { return mp.Set(HoursField, n) }
func (mp *MutablePeriod) SetMinutes(n int32) error { return mp.Set(MinutesField, n) }
func (mp *MutablePeriod) SetSeconds(n int32) error { return mp.Set(SecondsField, n) }
func (mp *MutablePeriod) SetMillis(n int32) error  { return mp.Set(MillisField, n) }

func (mp *MutablePeriod) AddYears(n int32) error   { return mp.Add(YearsField, n) }
func (mp *MutablePeriod) AddMonths(n int32) error  { return mp.Add(MonthsField, n) }
func (mp *MutablePeriod) AddWeeks(n int32) error   { return mp.Add(WeeksField, n) }
func (mp *MutablePeriod) AddDays(n int32) error    { return mp.Add(DaysField, n) }
func (mp *MutablePeriod) AddHours(n int32) error   { return mp.Add(HoursField, n) }
func (mp *MutablePeriod) AddMinutes(n int32) error { return mp.Add(MinutesField, n) }
func (mp *MutablePeriod) AddSeconds(n int32) error { return mp.Add(SecondsField, n) }
func (mp *MutablePeriod) AddMillis(n int32) error  { return mp.Add(MillisField, n) }

// Clear sets every field to zero.
func (mp *MutablePeriod) Clear() {
	for i := range mp.values {
		mp.values[i] = 0
	}
}

// SetPeriod replaces every field with other's. Fields other lacks become
// zero. A nil other clears the period.
func (mp *MutablePeriod) SetPeriod(other ReadablePeriod) error {
	next := make([]int32, len(mp.values))
	if other != nil {
		if err := mp.copyInto(next, other); err != nil {
			return err
		}
	}
	copy(mp.values, next)
	return nil
}

// MergePeriod overwrites only the fields other supports.
func (mp *MutablePeriod) MergePeriod(other ReadablePeriod) error {
	if other == nil {
		return nil
	}
	next := append([]int32(nil), mp.values...)
	if err := mp.copyInto(next, other); err != nil {
		return err
	}
	copy(mp.values, next)
	return nil
}

func (mp *MutablePeriod) copyInto(values []int32, other ReadablePeriod) error {
	for i := 0; i < other.Size(); i++ {
		kind, v := other.FieldKind(i), other.Value(i)
		if v == 0 && !mp.typ.IsSupported(kind) {
			continue
		}
		if err := mp.typ.setValueAt(values, kind, v); err != nil {
			return err
		}
	}
	return nil
}

// AddPeriod adds other field by field.
func (mp *MutablePeriod) AddPeriod(other ReadablePeriod) error {
	if other == nil {
		return nil
	}
	next := append([]int32(nil), mp.values...)
	for i := 0; i < other.Size(); i++ {
		if err := mp.typ.addValueAt(next, other.FieldKind(i), other.Value(i)); err != nil {
			return err
		}
	}
	copy(mp.values, next)
	return nil
}

// SetDurationMillis replaces the fields with the precise split of millis
// under chrono. A nil chrono means ISOUTC.
func (mp *MutablePeriod) SetDurationMillis(millis int64, chrono Chronology) error {
	p, err := FromDurationMillis(millis, mp.typ, chrono)
	if err != nil {
		return err
	}
	copy(mp.values, p.values)
	return nil
}

// SetInterval replaces the fields with the period from start to end.
func (mp *MutablePeriod) SetInterval(start, end time.Time, chrono Chronology) error {
	p, err := Between(start, end, mp.typ, chrono)
	if err != nil {
		return err
	}
	copy(mp.values, p.values)
	return nil
}

// ToPeriod returns an immutable copy.
func (mp *MutablePeriod) ToPeriod() Period {
	return Period{typ: mp.typ, values: append([]int32(nil), mp.values...)}
}

// Copy returns an independent mutable copy.
func (mp *MutablePeriod) Copy() *MutablePeriod {
	return &MutablePeriod{typ: mp.typ, values: append([]int32(nil), mp.values...)}
}

// IsZero reports whether every field is zero.
func (mp *MutablePeriod) IsZero() bool { return isZero(mp) }

// Equal compares field kinds and values, like Period.Equal.
func (mp *MutablePeriod) Equal(other ReadablePeriod) bool { return equal(mp, other) }

// Hash is consistent with Period.Hash.
func (mp *MutablePeriod) Hash() int32 { return hash(mp) }

func (mp *MutablePeriod) String() string { return mp.ToPeriod().String() }
