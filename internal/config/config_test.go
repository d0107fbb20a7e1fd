package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lambdcalculus/periods/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[server]
name = "test"
max_clients = 4
read_timeout = "1m30s"
log_level = "debug"
auth_hash = "$2a$10$abc"

[[format]]
name = "hm"
lang = "en"
parse_fields = "hours,minutes"

  [[format.step]]
  kind = "field"
  field = "hours"

  [[format.step]]
  kind = "suffix"
  text = " hour"
  plural = " hours"

  [[format.step]]
  kind = "separator"
  text = ", "
  final = " and "
  variants = [" "]
`

func TestDecode(t *testing.T) {
	conf, err := Decode(sample)
	require.NoError(t, err)

	assert.Equal(t, "test", conf.Server.Name)
	assert.Equal(t, 4, conf.Server.MaxClients)
	assert.Equal(t, 90*time.Second, conf.Server.ReadTimeout.Std())
	assert.Equal(t, 10*time.Second, conf.Server.WriteTimeout.Std(), "default kept")
	assert.Equal(t, 8080, conf.Server.PortWS, "default kept")
	lvl, err := conf.Server.Level()
	require.NoError(t, err)
	assert.Equal(t, logger.LevelDebug, lvl)

	require.Len(t, conf.Formats, 1)
	f := conf.Formats[0]
	assert.Equal(t, "hm", f.Name)
	assert.Equal(t, "hours,minutes", f.ParseFields)
	require.Len(t, f.Steps, 3)
	assert.Equal(t, " hours", f.Steps[1].Plural)
	assert.Equal(t, []string{" "}, f.Steps[2].Variants)
}

func TestDecodeErrors(t *testing.T) {
	tests := map[string]string{
		"unknown key":    "[server]\nport = 1\n",
		"bad level":      "[server]\nlog_level = \"loud\"\n",
		"bad duration":   "[server]\nread_timeout = \"2mo\"\n",
		"no clients":     "[server]\nmax_clients = 0\n",
		"unnamed format": "[[format]]\nlang = \"en\"\n",
		"duplicate":      "[[format]]\nname = \"a\"\n[[format]]\nname = \"a\"\n",
		"not toml":       "[server",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(data)
			assert.Error(t, err)
		})
	}
}

func TestRead(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(file, []byte(sample), 0o600))
	conf, err := Read(file)
	require.NoError(t, err)
	assert.Equal(t, "test", conf.Server.Name)

	conf, err = Read(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
	assert.Equal(t, ServerDefault().Name, conf.Server.Name, "defaults on failure")
}

func TestResolve(t *testing.T) {
	p, err := Resolve("/var/lib/periods.sqlite")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/periods.sqlite", p)

	p, err = Resolve("db.sqlite")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(p))
}
