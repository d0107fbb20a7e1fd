// Package `period` provides calendar-neutral periods of time: a set of
// independent duration fields (years, months, weeks, days, hours, minutes,
// seconds, millis) shaped by a PeriodType, and a builder for printers and
// parsers of their textual forms.
//
// Fields are never carried into each other implicitly: one day is not equal to
// 24 hours, and 90 seconds stays 90 seconds until NormalizedStandard is used.
package period

import (
	"fmt"
	"time"

	"github.com/lambdcalculus/periods/internal/safemath"
)

// ReadablePeriod is implemented by Period and *MutablePeriod.
type ReadablePeriod interface {
	// Type returns the fields the period supports.
	Type() *PeriodType
	// Size returns the number of supported fields.
	Size() int
	// FieldKind returns the kind at position i.
	FieldKind(i int) FieldKind
	// Value returns the value at position i.
	Value(i int) int32
	// Get returns the value of kind, or zero when it is unsupported.
	Get(kind FieldKind) int32
}

// Period is an immutable period of time. Every operation that looks like a
// mutation returns a new Period.
//
// The zero value is the zero Standard period.
type Period struct {
	typ    *PeriodType
	values []int32
}

// Zero is the Standard period with every field zero.
var Zero = Period{typ: Standard, values: make([]int32, numFields)}

var _ ReadablePeriod = Period{}

// New returns a Standard period with the given fields.
func New(years, months, weeks, days, hours, minutes, seconds, millis int32) Period {
	return Period{
		typ:    Standard,
		values: []int32{years, months, weeks, days, hours, minutes, seconds, millis},
	}
}

// NewTime returns a Standard period with only time fields set.
func NewTime(hours, minutes, seconds, millis int32) Period {
	return New(0, 0, 0, 0, hours, minutes, seconds, millis)
}

// NewOfType returns a period shaped by pt. A nonzero value for a field pt does
// not support fails with ErrUnsupportedField. A nil pt means Standard.
func NewOfType(pt *PeriodType, years, months, weeks, days, hours, minutes, seconds, millis int32) (Period, error) {
	pt = typeOrStandard(pt)
	all := [numFields]int32{years, months, weeks, days, hours, minutes, seconds, millis}
	values := make([]int32, pt.Size())
	for k, v := range all {
		if v == 0 {
			continue
		}
		if err := pt.setValueAt(values, FieldKind(k), v); err != nil {
			return Period{}, err
		}
	}
	return Period{typ: pt, values: values}, nil
}

func single(kind FieldKind, n int32) Period {
	return Period{typ: SingleFieldType(kind), values: []int32{n}}
}

// Years returns a period of n years, shaped by YearsType.
func Years(n int32) Period { return single(YearsField, n) }

// Months returns a period of n months, shaped by MonthsType.
func Months(n int32) Period { return single(MonthsField, n) }

// Weeks returns a period of n weeks, shaped by WeeksType.
func Weeks(n int32) Period { return single(WeeksField, n) }

// Days returns a period of n days, shaped by DaysType.
func Days(n int32) Period { return single(DaysField, n) }

// Hours returns a period of n hours, shaped by HoursType.
func Hours(n int32) Period { return single(HoursField, n) }

// Minutes returns a period of n minutes, shaped by MinutesType.
func Minutes(n int32) Period { return single(MinutesField, n) }

// Seconds returns a period of n seconds, shaped by SecondsType.
func Seconds(n int32) Period { return single(SecondsField, n) }

// Millis returns a period of n milliseconds, shaped by MillisType.
func Millis(n int32) Period { return single(MillisField, n) }

// FromDurationMillis splits a millisecond duration into the precise fields of
// pt using chrono. Nil arguments mean Standard and ISOUTC.
func FromDurationMillis(millis int64, pt *PeriodType, chrono Chronology) (Period, error) {
	pt = typeOrStandard(pt)
	if chrono == nil {
		chrono = ISOUTC()
	}
	values, err := chrono.Decompose(pt, millis)
	if err != nil {
		return Period{}, err
	}
	return Period{typ: pt, values: values}, nil
}

// FromDuration is FromDurationMillis for a time.Duration, truncated to
// milliseconds.
func FromDuration(d time.Duration, pt *PeriodType, chrono Chronology) (Period, error) {
	return FromDurationMillis(d.Milliseconds(), pt, chrono)
}

// Between returns the period from start to end in the fields of pt, using
// calendar arithmetic. A nil chrono means ISO in start's location.
func Between(start, end time.Time, pt *PeriodType, chrono Chronology) (Period, error) {
	pt = typeOrStandard(pt)
	if chrono == nil {
		chrono = ISO(start.Location())
	}
	values, err := chrono.Between(pt, start.UnixMilli(), end.UnixMilli())
	if err != nil {
		return Period{}, err
	}
	return Period{typ: pt, values: values}, nil
}

func typeOrStandard(pt *PeriodType) *PeriodType {
	if pt == nil {
		return Standard
	}
	return pt
}

// Type returns the period's type.
func (p Period) Type() *PeriodType {
	return typeOrStandard(p.typ)
}

// Size returns the number of supported fields.
func (p Period) Size() int {
	return p.Type().Size()
}

// FieldKind returns the kind at position i.
func (p Period) FieldKind(i int) FieldKind {
	return p.Type().FieldKind(i)
}

// Value returns the value at position i.
func (p Period) Value(i int) int32 {
	if i < len(p.values) {
		return p.values[i]
	}
	return 0
}

// Values returns a copy of the values, aligned with the type's kinds.
func (p Period) Values() []int32 {
	values := make([]int32, p.Size())
	copy(values, p.values)
	return values
}

// Get returns the value of kind, or zero if it is unsupported.
func (p Period) Get(kind FieldKind) int32 {
	return p.Type().valueAt(p, kind)
}

func (p Period) Years() int32   { return p.Get(YearsField) }
func (p Period) Months() int32  { return p.Get(MonthsField) }
func (p Period) Weeks() int32   { return p.Get(WeeksField) }
func (p Period) Days() int32    { return p.Get(DaysField) }
func (p Period) Hours() int32   { return p.Get(HoursField) }
func (p Period) Minutes() int32 { return p.Get(MinutesField) }
func (p Period) Seconds() int32 { return p.Get(SecondsField) }
func (p Period) Millis() int32  { return p.Get(MillisField) }

// IsZero reports whether every field is zero.
func (p Period) IsZero() bool {
	return isZero(p)
}

func isZero(p ReadablePeriod) bool {
	for i := 0; i < p.Size(); i++ {
		if p.Value(i) != 0 {
			return false
		}
	}
	return true
}

// Equal reports whether other has the same kinds with the same values.
// This is not a comparison of lengths: one day does not equal 24 hours.
func (p Period) Equal(other ReadablePeriod) bool {
	return equal(p, other)
}

func equal(a, b ReadablePeriod) bool {
	if b == nil || a.Size() != b.Size() {
		return false
	}
	for i := 0; i < a.Size(); i++ {
		if a.Value(i) != b.Value(i) || a.FieldKind(i) != b.FieldKind(i) {
			return false
		}
	}
	return true
}

// Hash returns a hash consistent with Equal.
func (p Period) Hash() int32 {
	return hash(p)
}

func hash(p ReadablePeriod) int32 {
	total := int32(17)
	for i := 0; i < p.Size(); i++ {
		total = 27*total + p.Value(i)
		total = 27*total + p.FieldKind(i).Hash()
	}
	return total
}

// String returns the ISO-8601 form, e.g. "PT6H3M7S".
func (p Period) String() string {
	s, err := ISOStandard().Print(p)
	if err != nil {
		return fmt.Sprintf("Period(%v)", p.values)
	}
	return s
}

// ToMutable returns a mutable copy of p.
func (p Period) ToMutable() *MutablePeriod {
	return &MutablePeriod{typ: p.Type(), values: p.Values()}
}

// AddTo adds the period scalar times to t, field by field, using ISO calendar
// arithmetic in t's location.
func (p Period) AddTo(t time.Time, scalar int) (time.Time, error) {
	if scalar == 0 || p.IsZero() {
		return t, nil
	}
	millis, err := ISO(t.Location()).Add(p, t.UnixMilli(), scalar)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(millis).In(t.Location()), nil
}

// WithType returns the period reshaped to pt. Fields pt lacks must be zero.
func (p Period) WithType(pt *PeriodType) (Period, error) {
	pt = typeOrStandard(pt)
	if pt.Equal(p.Type()) {
		return p, nil
	}
	values := make([]int32, pt.Size())
	for i := 0; i < p.Size(); i++ {
		v := p.Value(i)
		if v == 0 {
			continue
		}
		if err := pt.setValueAt(values, p.FieldKind(i), v); err != nil {
			return Period{}, err
		}
	}
	return Period{typ: pt, values: values}, nil
}

func (p Period) checkField(kind FieldKind) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown field %v", ErrInvalidArgument, kind)
	}
	if !p.Type().IsSupported(kind) {
		return fmt.Errorf("%w: %w: %s is not supported by %s",
			ErrInvalidArgument, ErrUnsupportedField, kind, p.Type())
	}
	return nil
}

// WithField returns a copy of p with kind set to value.
func (p Period) WithField(kind FieldKind, value int32) (Period, error) {
	if err := p.checkField(kind); err != nil {
		return Period{}, err
	}
	values := p.Values()
	if err := p.Type().setValueAt(values, kind, value); err != nil {
		return Period{}, err
	}
	return Period{typ: p.Type(), values: values}, nil
}

// WithFieldAdded returns a copy of p with value added to kind. Adding zero
// returns p.
func (p Period) WithFieldAdded(kind FieldKind, value int32) (Period, error) {
	if !kind.Valid() {
		return Period{}, fmt.Errorf("%w: unknown field %v", ErrInvalidArgument, kind)
	}
	if value == 0 {
		return p, nil
	}
	if err := p.checkField(kind); err != nil {
		return Period{}, err
	}
	values := p.Values()
	if err := p.Type().addValueAt(values, kind, value); err != nil {
		return Period{}, err
	}
	return Period{typ: p.Type(), values: values}, nil
}

// Plus adds other field by field, without carrying between fields. A nonzero
// field of other that p does not support fails with ErrUnsupportedField.
func (p Period) Plus(other ReadablePeriod) (Period, error) {
	return p.addScaled(other, 1)
}

// Minus subtracts other field by field.
func (p Period) Minus(other ReadablePeriod) (Period, error) {
	return p.addScaled(other, -1)
}

func (p Period) addScaled(other ReadablePeriod, sign int32) (Period, error) {
	if other == nil {
		return p, nil
	}
	pt := p.Type()
	values := p.Values()
	for _, kind := range AllFields {
		v := other.Get(kind)
		if sign < 0 {
			neg, err := safemath.Neg32(v)
			if err != nil {
				return Period{}, overflow(fmt.Sprintf("negating %d %s", v, kind))
			}
			v = neg
		}
		if err := pt.addValueAt(values, kind, v); err != nil {
			return Period{}, err
		}
	}
	return Period{typ: pt, values: values}, nil
}

// MultipliedBy multiplies every field by scalar.
func (p Period) MultipliedBy(scalar int32) (Period, error) {
	if scalar == 1 || p.IsZero() {
		return p, nil
	}
	values := p.Values()
	for i, v := range values {
		m, err := safemath.Mul32(v, scalar)
		if err != nil {
			return Period{}, overflow(fmt.Sprintf("multiplying %d %s by %d", v, p.FieldKind(i), scalar))
		}
		values[i] = m
	}
	return Period{typ: p.Type(), values: values}, nil
}

// Negated returns the period with every field's sign flipped.
func (p Period) Negated() (Period, error) {
	return p.MultipliedBy(-1)
}
