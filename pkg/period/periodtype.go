package period

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lambdcalculus/periods/internal/safemath"
)

// A PeriodType is the set of fields a period supports, in canonical order.
// Instances are immutable and shared; compare them with Equal, not ==.
type PeriodType struct {
	name  string
	kinds []FieldKind
	// index maps a canonical field index to its position in kinds, or -1.
	index [numFields]int
}

func newPeriodType(name string, kinds ...FieldKind) *PeriodType {
	pt := &PeriodType{name: name, kinds: kinds}
	for i := range pt.index {
		pt.index[i] = -1
	}
	for i, k := range kinds {
		pt.index[k] = i
	}
	return pt
}

// The stock types. ForFields returns these instances for matching field sets.
var (
	Standard = newPeriodType("Standard", AllFields...)

	YearMonthDayTime = newPeriodType("YearMonthDayTime",
		YearsField, MonthsField, DaysField, HoursField, MinutesField, SecondsField, MillisField)
	YearMonthDay = newPeriodType("YearMonthDay",
		YearsField, MonthsField, DaysField)
	YearWeekDayTime = newPeriodType("YearWeekDayTime",
		YearsField, WeeksField, DaysField, HoursField, MinutesField, SecondsField, MillisField)
	YearWeekDay = newPeriodType("YearWeekDay",
		YearsField, WeeksField, DaysField)
	YearDayTime = newPeriodType("YearDayTime",
		YearsField, DaysField, HoursField, MinutesField, SecondsField, MillisField)
	YearDay = newPeriodType("YearDay",
		YearsField, DaysField)
	DayTime = newPeriodType("DayTime",
		DaysField, HoursField, MinutesField, SecondsField, MillisField)
	Time = newPeriodType("Time",
		HoursField, MinutesField, SecondsField, MillisField)

	YearsType   = newPeriodType("Years", YearsField)
	MonthsType  = newPeriodType("Months", MonthsField)
	WeeksType   = newPeriodType("Weeks", WeeksField)
	DaysType    = newPeriodType("Days", DaysField)
	HoursType   = newPeriodType("Hours", HoursField)
	MinutesType = newPeriodType("Minutes", MinutesField)
	SecondsType = newPeriodType("Seconds", SecondsField)
	MillisType  = newPeriodType("Millis", MillisField)
)

// SingleFieldType returns the stock type supporting only kind.
func SingleFieldType(kind FieldKind) *PeriodType {
	switch kind {
	case YearsField:
		return YearsType
	case MonthsField:
		return MonthsType
	case WeeksField:
		return WeeksType
	case DaysField:
		return DaysType
	case HoursField:
		return HoursType
	case MinutesField:
		return MinutesType
	case SecondsField:
		return SecondsType
	case MillisField:
		return MillisType
	}
	return nil
}

// Name returns the type's name, e.g. "YearMonthDayTime".
func (pt *PeriodType) Name() string {
	return pt.name
}

// Size returns the number of supported fields.
func (pt *PeriodType) Size() int {
	return len(pt.kinds)
}

// FieldKind returns the kind at position i, 0 being the largest unit.
func (pt *PeriodType) FieldKind(i int) FieldKind {
	return pt.kinds[i]
}

// Kinds returns a copy of the supported kinds.
func (pt *PeriodType) Kinds() []FieldKind {
	return append([]FieldKind(nil), pt.kinds...)
}

// IsSupported reports whether kind is part of the type.
func (pt *PeriodType) IsSupported(kind FieldKind) bool {
	return pt.IndexOf(kind) >= 0
}

// IndexOf returns the position of kind within the type, or -1.
func (pt *PeriodType) IndexOf(kind FieldKind) int {
	if !kind.Valid() {
		return -1
	}
	return pt.index[kind]
}

// Equal reports whether both types support the same fields. Names are not
// compared.
func (pt *PeriodType) Equal(other *PeriodType) bool {
	if pt == other {
		return true
	}
	if pt == nil || other == nil {
		return false
	}
	return pt.set() == other.set()
}

func (pt *PeriodType) String() string {
	return "PeriodType[" + pt.name + "]"
}

// FieldNames returns the supported kinds as a comma separated list, the
// inverse of ParseFieldKinds.
func (pt *PeriodType) FieldNames() string {
	names := make([]string, len(pt.kinds))
	for i, k := range pt.kinds {
		names[i] = k.String()
	}
	return strings.Join(names, ",")
}

// WithoutField returns a type like pt but without kind. If kind is not
// supported, pt itself is returned.
func (pt *PeriodType) WithoutField(kind FieldKind) *PeriodType {
	if pt.IndexOf(kind) < 0 {
		return pt
	}
	kinds := make([]FieldKind, 0, len(pt.kinds)-1)
	for _, k := range pt.kinds {
		if k != kind {
			kinds = append(kinds, k)
		}
	}
	return newPeriodType(pt.name+"No"+kind.DisplayName(), kinds...)
}

func (pt *PeriodType) set() fieldSet {
	var s fieldSet
	for _, k := range pt.kinds {
		s = s.with(k)
	}
	return s
}

// valueAt reads kind from p, which must be shaped by pt. Unsupported kinds
// read as zero.
func (pt *PeriodType) valueAt(p ReadablePeriod, kind FieldKind) int32 {
	i := pt.IndexOf(kind)
	if i < 0 {
		return 0
	}
	return p.Value(i)
}

// setValueAt stores v for kind in values, which must be shaped by pt.
func (pt *PeriodType) setValueAt(values []int32, kind FieldKind, v int32) error {
	i := pt.IndexOf(kind)
	if i < 0 {
		return unsupportedField(kind, pt)
	}
	values[i] = v
	return nil
}

// addValueAt adds delta to kind in values. A zero delta is always accepted.
func (pt *PeriodType) addValueAt(values []int32, kind FieldKind, delta int32) error {
	if delta == 0 {
		return nil
	}
	i := pt.IndexOf(kind)
	if i < 0 {
		return unsupportedField(kind, pt)
	}
	sum, err := safemath.Add32(values[i], delta)
	if err != nil {
		return overflow(fmt.Sprintf("adding %d %s to %d", delta, kind, values[i]))
	}
	values[i] = sum
	return nil
}

// fieldSet is a bitmask of canonical field indices.
type fieldSet uint8

func (s fieldSet) with(k FieldKind) fieldSet { return s | 1<<uint(k) }
func (s fieldSet) has(k FieldKind) bool      { return s&(1<<uint(k)) != 0 }

// A Registry caches period types by field set, so that equal field
// combinations resolve to one shared instance. It is safe for concurrent use.
type Registry struct {
	mu    sync.Mutex
	types map[fieldSet]*PeriodType
}

// NewRegistry returns a registry seeded with the stock types.
func NewRegistry() *Registry {
	r := &Registry{types: make(map[fieldSet]*PeriodType)}
	for _, pt := range []*PeriodType{
		Standard, YearMonthDayTime, YearMonthDay, YearWeekDayTime, YearWeekDay,
		YearDayTime, YearDay, DayTime, Time,
		YearsType, MonthsType, WeeksType, DaysType, HoursType, MinutesType, SecondsType, MillisType,
	} {
		r.types[pt.set()] = pt
	}
	return r
}

var defaultRegistry = NewRegistry()

// ForFields resolves kinds, given in any order, through the default registry.
func ForFields(kinds ...FieldKind) (*PeriodType, error) {
	return defaultRegistry.ForFields(kinds...)
}

// ForFields returns the type supporting exactly kinds. It fails with
// ErrInvalidArgument when kinds is empty or holds duplicates or unknown kinds.
func (r *Registry) ForFields(kinds ...FieldKind) (*PeriodType, error) {
	if len(kinds) == 0 {
		return nil, fmt.Errorf("%w: field list must not be empty", ErrInvalidArgument)
	}
	var want fieldSet
	for _, k := range kinds {
		if !k.Valid() {
			return nil, fmt.Errorf("%w: unknown field %v", ErrInvalidArgument, k)
		}
		if want.has(k) {
			return nil, fmt.Errorf("%w: duplicate field %s", ErrInvalidArgument, k)
		}
		want = want.with(k)
	}
	if pt := r.lookup(want); pt != nil {
		return pt, nil
	}

	pt := Standard
	remaining := want
	for _, k := range AllFields {
		if remaining.has(k) {
			remaining &^= 1 << uint(k)
			continue
		}
		pt = pt.WithoutField(k)
	}
	if remaining != 0 {
		return nil, fmt.Errorf("%w: unsupported fields in %v", ErrInvalidArgument, kinds)
	}
	return r.publish(pt), nil
}

func (r *Registry) lookup(s fieldSet) *PeriodType {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.types[s]
}

// publish stores pt unless an equal type got there first, in which case the
// earlier instance wins.
func (r *Registry) publish(pt *PeriodType) *PeriodType {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.types[pt.set()]; ok {
		return existing
	}
	r.types[pt.set()] = pt
	return pt
}
