package store

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/lambdcalculus/periods/pkg/period"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "periods.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoad(t *testing.T) {
	s := open(t)
	p, err := period.NewOfType(period.YearMonthDay, 1, 2, 0, 3, 0, 0, 0, 0)
	require.NoError(t, err)

	before := time.Now().Add(-time.Second)
	require.NoError(t, s.Save("billing", p))

	e, err := s.Load("billing")
	require.NoError(t, err)
	assert.Equal(t, "billing", e.Name)
	assert.Same(t, period.YearMonthDay, e.Period.Type(), "type survives the round trip")
	assert.True(t, e.Period.Equal(p))
	assert.False(t, e.Created.Before(before.Truncate(time.Second)))

	require.NoError(t, s.Save("billing", period.Hours(36)))
	e, err = s.Load("billing")
	require.NoError(t, err)
	assert.Equal(t, "PT36H", e.Period.String())
	assert.Same(t, period.HoursType, e.Period.Type())
}

func TestMissing(t *testing.T) {
	s := open(t)
	_, err := s.Load("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete("nope"), ErrNotFound)
	assert.Error(t, s.Save("", period.Zero))
}

func TestListAndDelete(t *testing.T) {
	s := open(t)
	require.NoError(t, s.Save("b", period.Days(2)))
	require.NoError(t, s.Save("a", period.NewTime(0, 0, 1, 500)))
	require.NoError(t, s.Save("c", period.Zero))

	entries, err := s.List()
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Name)
	assert.Equal(t, "PT1.500S", entries[0].Period.String())
	assert.Equal(t, "P2D", entries[1].Period.String())
	assert.Equal(t, "PT0S", entries[2].Period.String())

	require.NoError(t, s.Delete("b"))
	entries, err = s.List()
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSingleFieldRoundTrip(t *testing.T) {
	s := open(t)
	for name, p := range map[string]period.Period{
		"ms":      period.Millis(1500),
		"neg-ms":  period.Millis(-250),
		"seconds": period.Seconds(90),
	} {
		require.NoError(t, s.Save(name, p), name)
		e, err := s.Load(name)
		require.NoError(t, err, name)
		assert.Same(t, p.Type(), e.Period.Type(), name)
		assert.True(t, e.Period.Equal(p), "%s loaded as %v", name, e.Period.Values())
	}

	entries, err := s.List()
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "periods.sqlite")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err, "reopening the same version")
	_, err = s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", version+1))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(path)
	assert.ErrorIs(t, err, ErrVersion)
}
