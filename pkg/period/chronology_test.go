package period

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d, h int, loc *time.Location) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, loc)
}

func TestBetween(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		pt         *PeriodType
		want       string
	}{
		{"month end clamps", date(2024, time.January, 31, 0, time.UTC), date(2024, time.March, 1, 0, time.UTC), nil, "P1M1D"},
		{"backwards", date(2024, time.March, 31, 0, time.UTC), date(2024, time.February, 29, 0, time.UTC), nil, "P-1M"},
		{"weeks", date(2024, time.May, 1, 0, time.UTC), date(2024, time.May, 20, 6, time.UTC), nil, "P2W5DT6H"},
		{"no weeks", date(2024, time.May, 1, 0, time.UTC), date(2024, time.May, 20, 6, time.UTC), YearMonthDayTime, "P19DT6H"},
		{"time only", date(2024, time.May, 1, 0, time.UTC), date(2024, time.May, 3, 1, time.UTC), Time, "PT49H"},
		{"equal", date(2024, time.May, 1, 0, time.UTC), date(2024, time.May, 1, 0, time.UTC), nil, "PT0S"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Between(tt.start, tt.end, tt.pt, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestBetweenAcrossDST(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	start := date(2024, time.March, 9, 12, ny)
	end := date(2024, time.March, 10, 12, ny)
	require.Equal(t, 23*time.Hour, end.Sub(start))

	p, err := Between(start, end, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "P1D", p.String(), "a wall-clock day")

	p, err = Between(start, end, nil, ISOUTC())
	require.NoError(t, err)
	assert.Equal(t, "PT23H", p.String())
}

func TestDecomposeOutsideUTC(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	p, err := FromDuration(50*time.Hour, nil, ISO(ny))
	require.NoError(t, err)
	assert.Equal(t, "PT50H", p.String(), "days are not precise")

	p, err = FromDuration(50*time.Hour, nil, ISO(nil))
	require.NoError(t, err)
	assert.Equal(t, "P2DT2H", p.String())
}

func TestAddTo(t *testing.T) {
	got, err := Months(1).AddTo(date(2024, time.January, 31, 9, time.UTC), 1)
	require.NoError(t, err)
	assert.WithinDuration(t, date(2024, time.February, 29, 9, time.UTC), got, 0)

	got, err = New(1, 0, 0, 0, 0, 0, 0, 0).AddTo(date(2024, time.February, 29, 0, time.UTC), -1)
	require.NoError(t, err)
	assert.WithinDuration(t, date(2023, time.February, 28, 0, time.UTC), got, 0)

	got, err = NewTime(1, 30, 0, 0).AddTo(date(2024, time.May, 1, 0, time.UTC), 2)
	require.NoError(t, err)
	assert.WithinDuration(t, date(2024, time.May, 1, 3, time.UTC), got, 0)

	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	got, err = Days(1).AddTo(date(2024, time.March, 9, 12, ny), 1)
	require.NoError(t, err)
	assert.WithinDuration(t, date(2024, time.March, 10, 12, ny), got, 0)
}
