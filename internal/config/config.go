// Package config reads the TOML configuration of periodd and periodctl.
package config

import (
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lambdcalculus/periods/pkg/duration"
	"github.com/lambdcalculus/periods/pkg/logger"
)

type Server struct {
	Name       string `toml:"name"`
	Desc       string `toml:"description"`
	MaxClients int    `toml:"max_clients"`
	PortWS     int    `toml:"ws_port"`

	ReadTimeout  duration.Duration `toml:"read_timeout"`
	WriteTimeout duration.Duration `toml:"write_timeout"`

	LevelString string   `toml:"log_level"`
	LogOutputs  []string `toml:"log_outputs"`

	// Path of the SQLite database. Relative paths are relative to the executable.
	Database string `toml:"database"`
	// Bcrypt hash of the token clients must send in their hello. Empty
	// disables authentication.
	AuthHash string `toml:"auth_hash"`
	// Language of the "words" format when a request names none.
	DefaultLang string `toml:"default_lang"`
}

func ServerDefault() *Server {
	return &Server{
		Name:         "Unnamed Server",
		Desc:         "An unconfigured period server.",
		MaxClients:   100,
		PortWS:       8080,
		ReadTimeout:  duration.Duration(10 * time.Second),
		WriteTimeout: duration.Duration(10 * time.Second),
		LevelString:  "info",
		LogOutputs:   []string{"stdout", "log/server.log"},
		Database:     "database.sqlite",
		DefaultLang:  "en",
	}
}

// Level returns the configured log level.
func (s *Server) Level() (logger.LogLevel, error) {
	lvl, err := logger.ParseLevel(s.LevelString)
	if err != nil {
		return lvl, fmt.Errorf("config: Bad log_level (%w).", err)
	}
	return lvl, nil
}

// A Step is one builder call of a user-defined format. Kind selects the call:
//
//	literal        text
//	prefix         text, plural
//	suffix         text, plural
//	field          field ("years" ... "millis", "seconds_millis",
//	               "seconds_optional_millis", "millis3")
//	separator      text, final, variants, when ("", "after", "before")
//	min_digits     digits
//	max_digits     digits
//	reject_signed  reject
//	zero           policy ("rarely_last", "rarely_first", "if_supported",
//	               "always", "never")
type Step struct {
	Kind     string   `toml:"kind"`
	Text     string   `toml:"text"`
	Plural   string   `toml:"plural"`
	Final    string   `toml:"final"`
	Variants []string `toml:"variants"`
	When     string   `toml:"when"`
	Field    string   `toml:"field"`
	Digits   int      `toml:"digits"`
	Reject   bool     `toml:"reject"`
	Policy   string   `toml:"policy"`
}

// Format is a named layout built from steps.
type Format struct {
	Name string `toml:"name"`
	Lang string `toml:"lang"`
	// Fields parsed text is shaped into, e.g. "days,hours". Empty means all.
	ParseFields string `toml:"parse_fields"`
	Steps       []Step `toml:"step"`
}

// File is the whole of config.toml.
type File struct {
	Server  Server   `toml:"server"`
	Formats []Format `toml:"format"`
}

func Default() *File {
	return &File{Server: *ServerDefault()}
}

// Path returns the default location of config.toml, in the config
// directory next to the executable.
func Path() (string, error) {
	execDir, err := ExecDir()
	if err != nil {
		return "", fmt.Errorf("config: Couldn't find executable location (%w). Can't read configs.", err)
	}
	return path.Join(execDir, "config", "config.toml"), nil
}

// Read attempts to read the configuration at `file`, or at [Path] if `file`
// is empty. Returns the default settings along with the error if it fails.
func Read(file string) (*File, error) {
	if file == "" {
		p, err := Path()
		if err != nil {
			return Default(), err
		}
		file = p
	}

	conf := Default()
	md, err := toml.DecodeFile(file, conf)
	if err != nil {
		return Default(), fmt.Errorf("config: Couldn't read %v (%w).", file, err)
	}
	if err := check(md, conf); err != nil {
		return Default(), fmt.Errorf("config: Bad config in %v (%w).", file, err)
	}
	return conf, nil
}

// Decode reads configuration from a TOML document.
func Decode(data string) (*File, error) {
	conf := Default()
	md, err := toml.Decode(data, conf)
	if err != nil {
		return nil, fmt.Errorf("config: Couldn't decode config (%w).", err)
	}
	if err := check(md, conf); err != nil {
		return nil, fmt.Errorf("config: Bad config (%w).", err)
	}
	return conf, nil
}

func check(md toml.MetaData, conf *File) error {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %v", strings.Join(keys, ", "))
	}
	if conf.Server.MaxClients <= 0 {
		return fmt.Errorf("max_clients must be positive, got %v", conf.Server.MaxClients)
	}
	if _, err := conf.Server.Level(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(conf.Formats))
	for i, f := range conf.Formats {
		if f.Name == "" {
			return fmt.Errorf("format #%v has no name", i+1)
		}
		if seen[f.Name] {
			return fmt.Errorf("format %q defined twice", f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}

// Resolve returns `p` as an absolute path, taking relative paths as relative
// to the executable's directory.
func Resolve(p string) (string, error) {
	if path.IsAbs(p) {
		return p, nil
	}
	execDir, err := ExecDir()
	if err != nil {
		return "", fmt.Errorf("config: Couldn't resolve %v (%w).", p, err)
	}
	return path.Join(execDir, p), nil
}

// Returns the absolute path to the executable's directory, if it doesn't fail.
func ExecDir() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", err
	}
	return path.Dir(execPath), nil
}
