// Package duration reads and writes short human durations such as "3d12h",
// "90s" or "1.5s", through the compact period format.
package duration

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lambdcalculus/periods/pkg/period"
)

const (
	Day  = 24 * time.Hour
	Week = 7 * Day
)

// ErrIndeterminate is returned for years and months, which have no fixed length.
var ErrIndeterminate = errors.New("duration: years and months have no fixed length")

// ParseDuration parses a compact duration. Unlike [time.ParseDuration], it
// accepts "d" for days and "w" for weeks, and reads "1.5s" but not "1.5h".
// An empty string or "0" is zero.
func ParseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "0" {
		return 0, nil
	}
	p, err := period.Compact().ParsePeriod(s)
	if err != nil {
		return 0, fmt.Errorf("duration: Couldn't parse %q (%w).", s, err)
	}
	d, err := p.ToStandardDuration()
	if errors.Is(err, period.ErrUnsupportedOperation) {
		return 0, fmt.Errorf("%w: %q", ErrIndeterminate, s)
	}
	if err != nil {
		return 0, fmt.Errorf("duration: %q is out of range (%w).", s, err)
	}
	return d, nil
}

// String formats d with weeks as the largest unit, dropping anything below
// a millisecond. Zero is "0s".
func String(d time.Duration) string {
	p, err := period.FromDuration(d, nil, nil)
	if err != nil {
		// Only the weeks field can overflow, and a time.Duration is too short for that.
		return d.String()
	}
	s, _ := period.Compact().Print(p)
	return s
}

// Duration is a time.Duration that reads and writes the compact form, for
// config files.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return String(time.Duration(d))
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}
