package safemath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInt32Ops(t *testing.T) {
	tests := []struct {
		name    string
		op      func() (int32, error)
		want    int32
		wantErr bool
	}{
		{"add", func() (int32, error) { return Add32(2, 3) }, 5, false},
		{"add overflow", func() (int32, error) { return Add32(math.MaxInt32, 1) }, 0, true},
		{"add underflow", func() (int32, error) { return Add32(math.MinInt32, -1) }, 0, true},
		{"sub", func() (int32, error) { return Sub32(2, 3) }, -1, false},
		{"sub overflow", func() (int32, error) { return Sub32(math.MinInt32, 1) }, 0, true},
		{"mul", func() (int32, error) { return Mul32(-4, 5) }, -20, false},
		{"mul overflow", func() (int32, error) { return Mul32(math.MaxInt32, 2) }, 0, true},
		{"neg", func() (int32, error) { return Neg32(7) }, -7, false},
		{"neg min", func() (int32, error) { return Neg32(math.MinInt32) }, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOverflow)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInt64Ops(t *testing.T) {
	v, err := Add64(math.MaxInt64-1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), v)

	_, err = Add64(math.MaxInt64, 1)
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = Add64(math.MinInt64, -1)
	assert.ErrorIs(t, err, ErrOverflow)

	v, err = Mul64(3_600_000, 24)
	require.NoError(t, err)
	assert.Equal(t, int64(86_400_000), v)

	_, err = Mul64(math.MaxInt64/2+1, 2)
	assert.ErrorIs(t, err, ErrOverflow)
	_, err = Mul64(math.MinInt64, -1)
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = ToInt32(math.MaxInt32 + 1)
	assert.ErrorIs(t, err, ErrOverflow)
}
