package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for s, want := range map[string]LogLevel{
		"trace":   LevelTrace,
		"DEBUG":   LevelDebug,
		" info ":  LevelInfo,
		"warning": LevelWarning,
		"warn":    LevelWarning,
		"error":   LevelError,
		"fatal":   LevelFatal,
	} {
		got, err := ParseLevel(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, "warn", LevelWarning.String())
}

func TestLevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(PlainFmt, LevelWarning, &buf)
	log.Info("hidden")
	log.Debugf("hidden %d", 1)
	log.Warn("shown")
	log.Errorf("code %d", 7)
	assert.Equal(t, "warn: shown\nerror: code 7\n", buf.String())
}

func TestNamedSharesOutputs(t *testing.T) {
	var a, b bytes.Buffer
	log := NewLogger(PlainFmt, LevelTrace, &a, &b)
	store := log.Named("store")
	store.Info("opened\n")
	store.Named("sql").Trace("select")
	log.Info("root")

	want := "info: [store] opened\ntrace: [store.sql] select\ninfo: root\n"
	assert.Equal(t, want, a.String())
	assert.Equal(t, want, b.String())
}

func TestDefaultFmt(t *testing.T) {
	line := DefaultFmt("hello\n", LevelError)
	assert.Contains(t, line, "ERROR")
	assert.True(t, bytes.HasSuffix([]byte(line), []byte(": hello\n")))
}

func TestSetLogger(t *testing.T) {
	prev := Current()
	defer SetLogger(prev)

	var buf bytes.Buffer
	SetLogger(NewLogger(PlainFmt, LevelTrace, &buf))
	Trace("t")
	Infof("n=%d", 2)
	assert.Equal(t, "trace: t\ninfo: n=2\n", buf.String())
}
