package period

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithoutField(t *testing.T) {
	assert.Same(t, Time, Time.WithoutField(YearsField))

	pt := Standard.WithoutField(MillisField)
	assert.NotSame(t, Standard, pt)
	assert.False(t, pt.IsSupported(MillisField))
	assert.True(t, pt.IsSupported(SecondsField))
	assert.Equal(t, "StandardNoMillis", pt.Name())
	assert.Equal(t, 7, pt.Size())
	assert.Equal(t, -1, pt.IndexOf(MillisField))
	assert.False(t, pt.Equal(Standard))
}

func TestStockTypes(t *testing.T) {
	assert.Equal(t, "PeriodType[Standard]", Standard.String())
	assert.Equal(t, "years,months,days", YearMonthDay.FieldNames())
	assert.Equal(t, -1, YearWeekDay.IndexOf(HoursField))
	assert.Equal(t, WeeksField, YearWeekDayTime.FieldKind(1))
	assert.Same(t, DaysType, SingleFieldType(DaysField))
	assert.Nil(t, SingleFieldType(FieldKind(-1)))
}

func TestForFields(t *testing.T) {
	tests := []struct {
		name  string
		kinds []FieldKind
		want  *PeriodType
	}{
		{"standard", AllFields, Standard},
		{"reordered", []FieldKind{DaysField, YearsField}, YearDay},
		{"time", []FieldKind{MillisField, SecondsField, HoursField, MinutesField}, Time},
		{"single", []FieldKind{WeeksField}, WeeksType},
		{"ymd", []FieldKind{MonthsField, DaysField, YearsField}, YearMonthDay},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ForFields(tt.kinds...)
			require.NoError(t, err)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestForFieldsCachesNewCombinations(t *testing.T) {
	a, err := ForFields(MonthsField, HoursField)
	require.NoError(t, err)
	b, err := ForFields(HoursField, MonthsField)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, []FieldKind{MonthsField, HoursField}, a.Kinds())
}

func TestForFieldsInvalid(t *testing.T) {
	_, err := ForFields()
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ForFields(DaysField, DaysField)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ForFields(DaysField, FieldKind(9))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRegistryConcurrentPublish(t *testing.T) {
	r := NewRegistry()
	const n = 16
	got := make([]*PeriodType, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pt, err := r.ForFields(WeeksField, MinutesField)
			if err == nil {
				got[i] = pt
			}
		}(i)
	}
	wg.Wait()
	for _, pt := range got {
		require.NotNil(t, pt)
		assert.Same(t, got[0], pt)
	}
}

func TestParseFieldKinds(t *testing.T) {
	kinds, err := ParseFieldKinds("Years, month,ms")
	require.NoError(t, err)
	assert.Equal(t, []FieldKind{YearsField, MonthsField, MillisField}, kinds)

	_, err = ParseFieldKind("fortnights")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}
